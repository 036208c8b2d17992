package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/notification"
)

type RegisterTokenCommandHandler struct {
	uowFactory TokenUoWFactory
	now        func() time.Time
}

func NewRegisterTokenCommandHandler(uowFactory TokenUoWFactory) RegisterTokenCommandHandler {
	return RegisterTokenCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle upserts the registration keyed by token value.
func (h *RegisterTokenCommandHandler) Handle(ctx context.Context, cmd RegisterTokenCommand) (*notification.Token, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	token, err := notification.NewToken(cmd.Token(), cmd.UserID(), cmd.DeviceInfo(), h.now().UTC())
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

	if err = uow.TokenRepository().Upsert(ctx, token); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return token, nil
}
