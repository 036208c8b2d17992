package commands

import (
	"context"
	"log/slog"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// UpdateOrderCommandHandler applies a patch under a row lock so that the
// before image handed to the change notifier is the state this write replaced.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.ChangeNotifier
	logger     *slog.Logger
}

func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.ChangeNotifier, logger *slog.Logger) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "update_order"),
	}
}

func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	current, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	before := current.Clone()
	if err = cmd.Apply(current); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, current); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notifyChange(ctx, h.notifier, h.logger, ports.OrderChange{
		ID:     kernel.NewUUID().String(),
		Type:   ports.ChangeUpdate,
		Before: before,
		After:  current.Clone(),
	})

	return current, nil
}
