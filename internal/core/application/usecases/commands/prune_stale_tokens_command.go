package commands

import (
	"errors"
	"time"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrPruneStaleTokensCommandIsNotConstructed = errors.New(
	"PruneStaleTokensCommand must be created via NewPruneStaleTokensCommand constructor",
)

// PruneStaleTokensCommand removes registrations that were not refreshed for
// olderThan. Devices re-register on every app start, so a long silence means
// the installation is gone.
type PruneStaleTokensCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration

	guard guard.ConstructorGuard
}

func NewPruneStaleTokensCommand(olderThan time.Duration) (PruneStaleTokensCommand, error) {
	if olderThan <= 0 {
		return PruneStaleTokensCommand{}, errs.NewValueIsOutOfRangeError("olderThan", olderThan, "1ns", "∞")
	}

	return PruneStaleTokensCommand{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PruneStaleTokensCommand) Validate() error {
	return c.guard.Validate(ErrPruneStaleTokensCommandIsNotConstructed)
}

func (c PruneStaleTokensCommand) OlderThan() time.Duration {
	return c.olderThan
}
