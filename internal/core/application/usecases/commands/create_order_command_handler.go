package commands

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// CreateOrderCommandHandler persists a new order and, once committed, hands the
// insert to the change notifier. A notifier failure is logged and does not
// undo the write.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, notifier, logger)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.ChangeNotifier
	logger     *slog.Logger
	now        func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// notifier may be nil when changes are captured by the database instead.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.ChangeNotifier, logger *slog.Logger) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "create_order"),
		now:        time.Now,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	rec := cmd.Record()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = h.now().UTC()
	}
	created, err := order.Restore(rec)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notifyChange(ctx, h.notifier, h.logger, ports.OrderChange{
		ID:    kernel.NewUUID().String(),
		Type:  ports.ChangeInsert,
		After: created.Clone(),
	})

	return created, nil
}

func notifyChange(ctx context.Context, notifier ports.ChangeNotifier, logger *slog.Logger, change ports.OrderChange) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(ctx, change); err != nil {
		logger.Error("Failed to publish order change",
			"order_id", change.After.ID(),
			"type", change.Type,
			"error", err,
		)
	}
}
