package kernel

import (
	"fmt"

	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating the zero UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID or ParseUUID")

// UUID is an immutable identifier value object wrapping github.com/google/uuid.
//
// The zero value is invalid; build one with NewUUID (random, version 4) or
// ParseUUID when rehydrating from storage or from an inbound payload:
//
//	owner, err := kernel.ParseUUID(record.UserID)
//	if err != nil {
//	    return fmt.Errorf("invalid order owner: %w", err)
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// ParseUUID accepts the textual forms understood by uuid.Parse. The nil UUID is rejected.
func ParseUUID(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("%q: %w", s, err))
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromGoogle adapts a github.com/google/uuid value read by a repository.
func UUIDFromGoogle(id uuid.UUID) (UUID, error) {
	u := UUID{id: id}
	if err := u.Validate(); err != nil {
		return UUID{}, err
	}
	return u, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Google exposes the wrapped value for persistence adapters.
func (u UUID) Google() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
