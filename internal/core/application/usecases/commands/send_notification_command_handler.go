package commands

import (
	"context"
	"fmt"
	"log/slog"

	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/ports"
)

// SendNotificationCommandHandler delivers a direct message to one user's
// devices with the same fan-out and cleanup rules as stage notifications.
type SendNotificationCommandHandler struct {
	tokens   ports.TokenRepository
	sender   ports.PushSender
	metrics  ports.DispatchMetrics
	settings DispatchSettings
	logger   *slog.Logger
}

func NewSendNotificationCommandHandler(
	tokens ports.TokenRepository,
	sender ports.PushSender,
	metrics ports.DispatchMetrics,
	settings DispatchSettings,
	logger *slog.Logger,
) SendNotificationCommandHandler {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return SendNotificationCommandHandler{
		tokens:   tokens,
		sender:   sender,
		metrics:  metrics,
		settings: settings.withDefaults(),
		logger:   logger.With("component", "direct_notifier"),
	}
}

func (h *SendNotificationCommandHandler) Handle(ctx context.Context, cmd SendNotificationCommand) (DeliveryReport, error) {
	if err := cmd.Validate(); err != nil {
		return DeliveryReport{}, err
	}
	if h.sender == nil {
		return DeliveryReport{}, ErrPushTransportNotConfigured
	}

	tokens, err := h.tokens.ListByUser(ctx, cmd.UserID())
	if err != nil {
		return DeliveryReport{}, fmt.Errorf("list notification tokens: %w", err)
	}
	if len(tokens) == 0 {
		h.logger.Info("No tokens found for user", "user_id", cmd.UserID().String())
		return DeliveryReport{}, nil
	}

	msg := notification.Message{
		Title: cmd.Title(),
		Body:  cmd.Body(),
		Icon:  cmd.Icon(),
		Badge: cmd.Badge(),
		Data:  cmd.Data(),
		TTL:   h.settings.TTL,
	}
	if msg.Icon == "" {
		msg.Icon = h.settings.Icon
	}
	if msg.Badge == "" {
		msg.Badge = h.settings.Badge
	}

	f := fanOut{
		sender:      h.sender,
		tokens:      h.tokens,
		metrics:     h.metrics,
		maxInFlight: h.settings.MaxInFlight,
		logger:      h.logger.With("user_id", cmd.UserID().String()),
	}
	report, err := f.run(ctx, tokenValues(tokens), msg)
	if err != nil {
		return report, err
	}

	h.logger.Info("Direct notification sent",
		"user_id", cmd.UserID().String(),
		"delivered", report.Delivered,
		"failed", report.Failed,
	)
	return report, nil
}
