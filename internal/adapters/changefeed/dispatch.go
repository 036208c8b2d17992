package changefeed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/ports"
)

// DefaultDispatchTimeout bounds one dispatch, sends and cleanup included.
const DefaultDispatchTimeout = 30 * time.Second

// Dispatcher is the change dispatcher as seen by the trigger adapters.
type Dispatcher interface {
	Handle(ctx context.Context, cmd commands.DispatchOrderChangeCommand) (commands.DispatchResult, error)
}

// Dispatch runs one decoded change through the dispatcher.
func Dispatch(ctx context.Context, d Dispatcher, change ports.OrderChange) (commands.DispatchResult, error) {
	cmd, err := commands.NewDispatchOrderChangeCommandFromChange(change)
	if err != nil {
		return commands.DispatchResult{}, err
	}
	return d.Handle(ctx, cmd)
}

// HandlePayload decodes and dispatches one raw payload. Ignored change kinds
// are not errors; decode and dispatch errors are returned for the caller to
// log with its own context.
func HandlePayload(ctx context.Context, d Dispatcher, logger *slog.Logger, payload []byte) (commands.DispatchResult, error) {
	change, err := Decode(payload)
	if errors.Is(err, ErrIgnoredChange) {
		logger.Debug("Ignoring change", "reason", err)
		return commands.DispatchResult{}, nil
	}
	if err != nil {
		return commands.DispatchResult{}, err
	}

	result, err := Dispatch(ctx, d, change)
	if err != nil {
		return result, fmt.Errorf("dispatch change of order %s: %w", change.After.ID(), err)
	}

	if result.Notified {
		logger.Info("Change dispatched", "order_id", change.After.ID(), "message", result.Message())
	}
	return result, nil
}
