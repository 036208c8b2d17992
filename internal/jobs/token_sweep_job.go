package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultTokenSweepSchedule runs the sweep once a day at 03:00.
const DefaultTokenSweepSchedule = "0 0 3 * * *"

type pruneStaleTokensHandler interface {
	Handle(ctx context.Context, cmd commands.PruneStaleTokensCommand) (int64, error)
}

// TokenSweepJob deletes registrations that were not refreshed within the
// retention window. Browsers re-register on every app start, so a token
// silent for that long is very likely gone.
type TokenSweepJob struct {
	handler   pruneStaleTokensHandler
	schedule  string
	retention time.Duration
	timeout   time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewTokenSweepJob creates the sweep job. schedule is a six field cron
// expression with seconds.
func NewTokenSweepJob(handler pruneStaleTokensHandler, schedule string, retention time.Duration, logger *slog.Logger) *TokenSweepJob {
	if schedule == "" {
		schedule = DefaultTokenSweepSchedule
	}
	return &TokenSweepJob{
		handler:   handler,
		schedule:  schedule,
		retention: retention,
		timeout:   time.Minute,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "token_sweep_job"),
	}
}

func (j *TokenSweepJob) Start() error {
	cmd, err := commands.NewPruneStaleTokensCommand(j.retention)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() { j.run(cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Token sweep job started",
		"schedule", j.schedule, "retention", j.retention)
	return nil
}

func (j *TokenSweepJob) run(cmd commands.PruneStaleTokensCommand) {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	deleted, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Token sweep job failed", "error", err)
		return
	}
	j.logger.InfoContext(ctx, "Token sweep finished", "deleted", deleted)
}

// Stop stops the scheduler and waits for a running sweep.
func (j *TokenSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Token sweep job stopped")
}
