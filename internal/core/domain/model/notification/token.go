package notification

import (
	"errors"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrTokenIsNotConstructed is returned when a Token was not built by NewToken or RestoreToken.
var ErrTokenIsNotConstructed = errors.New("Token must be created via NewToken or RestoreToken")

// DeviceInfo is best-effort client metadata (user agent, platform, language).
// It is informational only and never used for routing.
type DeviceInfo map[string]any

// Token is a push registration.
type Token struct {
	id         kernel.UUID
	value      string
	userID     kernel.UUID
	deviceInfo DeviceInfo
	updatedAt  time.Time

	isConstructed bool
}

// NewToken creates a registration for value owned by userID.
func NewToken(value string, userID kernel.UUID, deviceInfo DeviceInfo, now time.Time) (*Token, error) {
	return RestoreToken(kernel.NewUUID(), value, userID, deviceInfo, now)
}

// RestoreToken rebuilds a persisted registration.
func RestoreToken(id kernel.UUID, value string, userID kernel.UUID, deviceInfo DeviceInfo, updatedAt time.Time) (*Token, error) {
	t := &Token{updatedAt: updatedAt}

	if err := errors.Join(
		id.Validate(),
		t.setValue(value),
		t.setUser(userID),
	); err != nil {
		return nil, err
	}

	t.id = id
	t.deviceInfo = copyDeviceInfo(deviceInfo)
	t.isConstructed = true
	return t, nil
}

func (t *Token) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTokenIsNotConstructed
	}
	return nil
}

func (t *Token) ID() kernel.UUID {
	return t.id
}

func (t *Token) Value() string {
	return t.value
}

func (t *Token) UserID() kernel.UUID {
	return t.userID
}

func (t *Token) DeviceInfo() DeviceInfo {
	return copyDeviceInfo(t.deviceInfo)
}

func (t *Token) UpdatedAt() time.Time {
	return t.updatedAt
}

// Refresh records a re-registration of the same token value, possibly by a
// different user or device.
func (t *Token) Refresh(userID kernel.UUID, deviceInfo DeviceInfo, now time.Time) error {
	if err := t.setUser(userID); err != nil {
		return err
	}
	t.deviceInfo = copyDeviceInfo(deviceInfo)
	t.updatedAt = now
	return nil
}

func (t *Token) setValue(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError("token")
	}
	t.value = value
	return nil
}

func (t *Token) setUser(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user id", err)
	}
	t.userID = userID
	return nil
}

func copyDeviceInfo(in DeviceInfo) DeviceInfo {
	if in == nil {
		return DeviceInfo{}
	}
	out := make(DeviceInfo, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Shorten returns the first 20 characters of a token value, enough to
// correlate log lines without writing full registrations to logs.
func Shorten(value string) string {
	const keep = 20
	if len(value) <= keep {
		return value
	}
	return value[:keep] + "..."
}
