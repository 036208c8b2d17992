// Package inprocess runs the change dispatcher in the same process as the
// order writer, off the request path.
package inprocess

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"orderflow/internal/adapters/changefeed"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/ports"
)

// Notifier implements ports.ChangeNotifier by dispatching each change on its
// own goroutine with a fresh deadline. Notify returns as soon as the change
// is validated; Wait blocks until in-flight dispatches finish.
type Notifier struct {
	dispatcher changefeed.Dispatcher
	timeout    time.Duration
	logger     *slog.Logger

	wg sync.WaitGroup
}

func NewNotifier(dispatcher changefeed.Dispatcher, timeout time.Duration, logger *slog.Logger) *Notifier {
	if timeout <= 0 {
		timeout = changefeed.DefaultDispatchTimeout
	}
	return &Notifier{
		dispatcher: dispatcher,
		timeout:    timeout,
		logger:     logger.With("component", "inprocess_notifier"),
	}
}

func (n *Notifier) Notify(ctx context.Context, change ports.OrderChange) error {
	cmd, err := commands.NewDispatchOrderChangeCommandFromChange(change)
	if err != nil {
		return err
	}

	// The request context ends with the request; the dispatch must not.
	dispatchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer cancel()

		result, err := n.dispatcher.Handle(dispatchCtx, cmd)
		if err != nil {
			n.logger.Error("Change dispatch failed", "order_id", cmd.After().ID(), "error", err)
			return
		}
		if result.Notified {
			n.logger.Info("Change dispatched", "order_id", cmd.After().ID(), "message", result.Message())
		}
	}()

	return nil
}

// Wait blocks until every started dispatch returns or ctx is done.
func (n *Notifier) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
