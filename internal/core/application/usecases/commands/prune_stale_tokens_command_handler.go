package commands

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/ports"
)

type PruneStaleTokensCommandHandler struct {
	tokens  ports.TokenRepository
	metrics ports.DispatchMetrics
	logger  *slog.Logger
	now     func() time.Time
}

func NewPruneStaleTokensCommandHandler(tokens ports.TokenRepository, metrics ports.DispatchMetrics, logger *slog.Logger) PruneStaleTokensCommandHandler {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return PruneStaleTokensCommandHandler{
		tokens:  tokens,
		metrics: metrics,
		logger:  logger.With("component", "token_sweeper"),
		now:     time.Now,
	}
}

// Handle returns the number of removed registrations.
func (h *PruneStaleTokensCommandHandler) Handle(ctx context.Context, cmd PruneStaleTokensCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	cutoff := h.now().UTC().Add(-cmd.OlderThan())
	deleted, err := h.tokens.DeleteUpdatedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	h.metrics.ObservePruned(int(deleted))
	h.logger.Info("Stale tokens pruned", "cutoff", cutoff, "deleted", deleted)
	return deleted, nil
}
