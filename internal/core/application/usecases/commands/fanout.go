package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrPushTransportNotConfigured aborts an invocation before any recipient is contacted.
	ErrPushTransportNotConfigured = errors.New("push transport is not configured")

	// ErrDispatchIncomplete is returned when the invocation deadline expired
	// before every send reported an outcome. Cleanup is skipped.
	ErrDispatchIncomplete = errors.New("dispatch did not complete before its deadline")
)

// DefaultMaxInFlight bounds concurrent sends per invocation.
const DefaultMaxInFlight = 256

// RecipientScope decides who receives stage notifications.
type RecipientScope string

const (
	// ScopeBroadcast sends every stage notification to every registered token.
	ScopeBroadcast RecipientScope = "broadcast"
	// ScopeOwner sends only to the tokens of the order's owner.
	ScopeOwner RecipientScope = "owner"
)

func ParseRecipientScope(s string) (RecipientScope, error) {
	switch RecipientScope(s) {
	case "", ScopeBroadcast:
		return ScopeBroadcast, nil
	case ScopeOwner:
		return ScopeOwner, nil
	default:
		return "", fmt.Errorf("unknown recipient scope %q", s)
	}
}

// DispatchSettings carries the presentation and fan-out knobs shared by the
// stage dispatcher and direct notifications. Zero fields fall back to defaults.
type DispatchSettings struct {
	Scope       RecipientScope
	MaxInFlight int
	Icon        string
	Badge       string
	DeepLink    string
	TTL         time.Duration
}

func DefaultDispatchSettings() DispatchSettings {
	return DispatchSettings{
		Scope:       ScopeBroadcast,
		MaxInFlight: DefaultMaxInFlight,
		Icon:        "/pwa-192x192.png",
		Badge:       "/favicon.ico",
		DeepLink:    "/kanban",
		TTL:         notification.DefaultTTL,
	}
}

func (s DispatchSettings) withDefaults() DispatchSettings {
	d := DefaultDispatchSettings()
	if s.Scope != "" {
		d.Scope = s.Scope
	}
	if s.MaxInFlight > 0 {
		d.MaxInFlight = s.MaxInFlight
	}
	if s.Icon != "" {
		d.Icon = s.Icon
	}
	if s.Badge != "" {
		d.Badge = s.Badge
	}
	if s.DeepLink != "" {
		d.DeepLink = s.DeepLink
	}
	if s.TTL > 0 {
		d.TTL = s.TTL
	}
	return d
}

// DeliveryReport summarizes one fan-out. Failed includes Invalid.
type DeliveryReport struct {
	Recipients int
	Delivered  int
	Failed     int
	Invalid    int
	Pruned     int64
	TimedOut   bool
}

// fanOut sends one message to many tokens, then prunes the permanently
// invalid ones in a single registry call.
type fanOut struct {
	sender      ports.PushSender
	tokens      ports.TokenRepository
	metrics     ports.DispatchMetrics
	maxInFlight int
	logger      *slog.Logger
}

func (f fanOut) run(ctx context.Context, recipients []string, msg notification.Message) (DeliveryReport, error) {
	report := DeliveryReport{Recipients: len(recipients)}
	if len(recipients) == 0 {
		return report, nil
	}

	deliveries := f.deliver(ctx, recipients, msg)
	tally := notification.CountDeliveries(deliveries)
	report.Delivered = tally.Delivered
	report.Failed = tally.Failed
	report.Invalid = tally.Invalid

	// Partial outcome sets never drive deletions.
	if err := ctx.Err(); err != nil {
		report.TimedOut = true
		return report, fmt.Errorf("%w: %w", ErrDispatchIncomplete, err)
	}

	invalid := notification.InvalidTokens(deliveries)
	if len(invalid) == 0 {
		return report, nil
	}

	pruned, err := f.tokens.DeleteByTokens(ctx, invalid)
	if err != nil {
		return report, fmt.Errorf("prune invalid tokens: %w", err)
	}
	report.Pruned = pruned
	f.metrics.ObservePruned(int(pruned))
	f.logger.Info("Pruned invalid tokens", "requested", len(invalid), "deleted", pruned)

	return report, nil
}

func (f fanOut) deliver(ctx context.Context, recipients []string, msg notification.Message) []notification.Delivery {
	deliveries := make([]notification.Delivery, len(recipients))

	var g errgroup.Group
	g.SetLimit(f.maxInFlight)
	for i, token := range recipients {
		g.Go(func() error {
			deliveries[i] = f.sendOne(ctx, token, msg)
			return nil
		})
	}
	_ = g.Wait()

	return deliveries
}

func (f fanOut) sendOne(ctx context.Context, token string, msg notification.Message) notification.Delivery {
	d := notification.Delivery{Token: token}

	if err := ctx.Err(); err != nil {
		d.Outcome, d.Cause = notification.TransientFailure, err
	} else {
		d.Outcome, d.Cause = f.sender.Send(ctx, token, msg)
	}

	if d.Outcome == notification.OutcomeUnknown {
		d.Outcome = notification.Delivered
		if d.Cause != nil {
			d.Outcome = notification.TransientFailure
		}
	}

	f.metrics.ObserveDelivery(d.Outcome)
	switch d.Outcome {
	case notification.Delivered:
		f.logger.Debug("Notification sent", "token", notification.Shorten(token))
	case notification.PermanentlyInvalid:
		f.logger.Info("Token is no longer valid", "token", notification.Shorten(token), "error", d.Cause)
	default:
		f.logger.Warn("Failed to send notification", "token", notification.Shorten(token), "error", d.Cause)
	}

	return d
}

func tokenValues(tokens []*notification.Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Value())
	}
	return out
}

type noopMetrics struct{}

func (noopMetrics) ObserveDelivery(notification.Outcome)  {}
func (noopMetrics) ObservePruned(int)                     {}
func (noopMetrics) ObserveDispatch(string, time.Duration) {}
