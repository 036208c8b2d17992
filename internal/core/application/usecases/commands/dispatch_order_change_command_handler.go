package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "orderflow/commands"

// releaseTimeout bounds dropping a dedupe claim once the invocation context
// may already be done.
const releaseTimeout = 5 * time.Second

// DispatchResult is what one dispatcher invocation observed. A zero Event
// means the write touched no tracked field and nobody was contacted.
type DispatchResult struct {
	Event     services.StageEvent
	Notified  bool
	Duplicate bool
	DeliveryReport
}

// Message is the human readable summary, "<title> - <body>".
func (r DispatchResult) Message() string {
	if !r.Notified {
		return "no relevant changes"
	}
	return fmt.Sprintf("%s - %s", r.Event.Title, r.Event.Body)
}

// DispatchOption configures optional collaborators of the dispatcher.
type DispatchOption func(*DispatchOrderChangeCommandHandler)

// WithDeduper suppresses redeliveries of a change that carries an ID.
func WithDeduper(d ports.TransitionDeduper) DispatchOption {
	return func(h *DispatchOrderChangeCommandHandler) {
		h.deduper = d
	}
}

func WithDispatchMetrics(m ports.DispatchMetrics) DispatchOption {
	return func(h *DispatchOrderChangeCommandHandler) {
		if m != nil {
			h.metrics = m
		}
	}
}

// DispatchOrderChangeCommandHandler turns one order write into at most one
// push notification per registered recipient.
//
// Steps: detect the highest priority field that became set, resolve
// recipients, fan out concurrently, then prune the tokens the transport
// rejected as permanently invalid. Sends are never rolled back; a registry
// failure after sending is reported as an error with the partial result.
type DispatchOrderChangeCommandHandler struct {
	detector services.TransitionDetector
	tokens   ports.TokenRepository
	sender   ports.PushSender
	deduper  ports.TransitionDeduper
	metrics  ports.DispatchMetrics
	settings DispatchSettings
	logger   *slog.Logger
}

// NewDispatchOrderChangeCommandHandler wires the dispatcher. sender may be nil
// when no push credentials are configured; every invocation then fails with
// ErrPushTransportNotConfigured.
func NewDispatchOrderChangeCommandHandler(
	tokens ports.TokenRepository,
	sender ports.PushSender,
	settings DispatchSettings,
	logger *slog.Logger,
	opts ...DispatchOption,
) DispatchOrderChangeCommandHandler {
	h := DispatchOrderChangeCommandHandler{
		detector: services.NewTransitionDetector(),
		tokens:   tokens,
		sender:   sender,
		metrics:  noopMetrics{},
		settings: settings.withDefaults(),
		logger:   logger.With("component", "change_dispatcher"),
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

func (h *DispatchOrderChangeCommandHandler) Handle(ctx context.Context, cmd DispatchOrderChangeCommand) (DispatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchResult{}, err
	}
	if h.sender == nil {
		return DispatchResult{}, ErrPushTransportNotConfigured
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "DispatchOrderChange")
	defer span.End()
	span.SetAttributes(
		attribute.String("order.id", cmd.After().ID().String()),
		attribute.String("change.type", string(cmd.ChangeType())),
	)

	event, ok := h.detector.Detect(cmd.Before(), cmd.After())
	if !ok {
		h.logger.Debug("No relevant changes", "order_id", cmd.After().ID())
		return DispatchResult{}, nil
	}
	span.SetAttributes(attribute.String("event.field", event.Field.String()))

	result := DispatchResult{Event: event, Notified: true}
	started := time.Now()
	defer func() {
		h.metrics.ObserveDispatch(event.Field.String(), time.Since(started))
	}()

	claim, duplicate := h.claim(ctx, cmd, event)
	if duplicate {
		result.Duplicate = true
		return result, nil
	}

	recipients, err := h.recipients(ctx, cmd.After())
	if err != nil {
		h.release(ctx, claim)
		span.RecordError(err)
		span.SetStatus(codes.Error, "list recipients")
		return result, fmt.Errorf("list notification tokens: %w", err)
	}
	if len(recipients) == 0 {
		h.logger.Info("No tokens found", "order_id", event.OrderID, "field", event.Field)
		return result, nil
	}

	msg := h.message(event)
	f := fanOut{
		sender:      h.sender,
		tokens:      h.tokens,
		metrics:     h.metrics,
		maxInFlight: h.settings.MaxInFlight,
		logger:      h.logger.With("order_id", event.OrderID, "field", event.Field.String()),
	}
	report, err := f.run(ctx, recipients, msg)
	result.DeliveryReport = report
	span.SetAttributes(
		attribute.Int("recipients", report.Recipients),
		attribute.Int("delivered", report.Delivered),
		attribute.Int("invalid", report.Invalid),
	)
	if err != nil {
		// A failed prune keeps the claim: every send already completed.
		if errors.Is(err, ErrDispatchIncomplete) {
			h.release(ctx, claim)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "fan-out")
		return result, err
	}

	h.logger.Info("Notifications dispatched",
		"order_id", event.OrderID,
		"title", event.Title,
		"recipients", report.Recipients,
		"delivered", report.Delivered,
		"failed", report.Failed,
		"pruned", report.Pruned,
	)

	return result, nil
}

func (h *DispatchOrderChangeCommandHandler) recipients(ctx context.Context, after *order.Order) ([]string, error) {
	if h.settings.Scope == ScopeOwner {
		owner := after.Owner()
		if owner == nil {
			return nil, nil
		}
		tokens, err := h.tokens.ListByUser(ctx, *owner)
		if err != nil {
			return nil, err
		}
		return tokenValues(tokens), nil
	}

	tokens, err := h.tokens.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return tokenValues(tokens), nil
}

func (h *DispatchOrderChangeCommandHandler) message(event services.StageEvent) notification.Message {
	return notification.Message{
		Title: event.Title,
		Body:  event.Body,
		Icon:  h.settings.Icon,
		Badge: h.settings.Badge,
		Data: map[string]string{
			"url":           h.settings.DeepLink,
			"pedido_id":     event.OrderID.String(),
			"numero_pedido": event.GroupKey,
		},
		TTL: h.settings.TTL,
	}
}

// claim reserves the change for this invocation. It returns the claimed key,
// empty when nothing was claimed, and whether the change was already handled.
// Changes without an ID are never deduplicated: identical row images can stem
// from distinct writes. A deduper failure lets the dispatch through.
func (h *DispatchOrderChangeCommandHandler) claim(
	ctx context.Context,
	cmd DispatchOrderChangeCommand,
	event services.StageEvent,
) (string, bool) {
	if h.deduper == nil || cmd.ChangeID() == "" {
		return "", false
	}

	key := dedupeKey(event, cmd.ChangeID())
	claimed, err := h.deduper.Claim(ctx, key)
	switch {
	case err != nil:
		h.logger.Warn("Transition dedupe unavailable, dispatching anyway", "order_id", event.OrderID, "error", err)
		return "", false
	case !claimed:
		h.logger.Info("Change already dispatched",
			"order_id", event.OrderID,
			"field", event.Field,
			"change_id", cmd.ChangeID(),
		)
		return "", true
	}
	return key, false
}

// release drops a claim so that a redelivery of an unfinished dispatch is
// handled again.
func (h *DispatchOrderChangeCommandHandler) release(ctx context.Context, key string) {
	if key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	if err := h.deduper.Release(ctx, key); err != nil {
		h.logger.Warn("Failed to release transition claim", "key", key, "error", err)
	}
}

func dedupeKey(event services.StageEvent, changeID string) string {
	return fmt.Sprintf("%s:%s:%s", event.OrderID, event.Field, changeID)
}
