// Package pglisten receives order changes from the pedidos trigger over
// Postgres LISTEN/NOTIFY. Notifications sent while the listener is
// disconnected are lost; use the Kafka feed where that matters.
package pglisten

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/adapters/changefeed"

	"github.com/lib/pq"
)

const pingInterval = 90 * time.Second

type listener interface {
	Listen(channel string) error
	Ping() error
	Close() error
	NotificationChannel() <-chan *pq.Notification
}

// ChangeListener dispatches every notification of one channel in arrival
// order. Each dispatch gets its own deadline.
type ChangeListener struct {
	listener   listener
	channel    string
	dispatcher changefeed.Dispatcher
	timeout    time.Duration
	logger     *slog.Logger
}

func NewChangeListener(dsn, channel string, dispatcher changefeed.Dispatcher, timeout time.Duration, logger *slog.Logger) *ChangeListener {
	logger = logger.With("component", "pg_change_listener", "channel", channel)
	l := pq.NewListener(dsn, time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("Listener connection event", "event", ev, "error", err)
		}
	})
	return newChangeListener(l, channel, dispatcher, timeout, logger)
}

func newChangeListener(l listener, channel string, dispatcher changefeed.Dispatcher, timeout time.Duration, logger *slog.Logger) *ChangeListener {
	if timeout <= 0 {
		timeout = changefeed.DefaultDispatchTimeout
	}
	return &ChangeListener{
		listener:   l,
		channel:    channel,
		dispatcher: dispatcher,
		timeout:    timeout,
		logger:     logger,
	}
}

// Run listens until ctx is done and closes the connection on return.
func (l *ChangeListener) Run(ctx context.Context) error {
	if err := l.listener.Listen(l.channel); err != nil {
		return err
	}
	defer func() {
		_ = l.listener.Close()
	}()
	l.logger.Info("Listening for order changes")

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	notifications := l.listener.NotificationChannel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case n, ok := <-notifications:
			if !ok {
				return nil
			}
			// nil after a reconnect: anything sent meanwhile is gone.
			if n == nil {
				l.logger.Warn("Listener reconnected, notifications may have been missed")
				continue
			}
			l.handle(ctx, n.Extra)
		case <-ticker.C:
			if err := l.listener.Ping(); err != nil {
				l.logger.Warn("Listener ping failed", "error", err)
			}
		}
	}
}

func (l *ChangeListener) handle(ctx context.Context, payload string) {
	dispatchCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	if _, err := changefeed.HandlePayload(dispatchCtx, l.dispatcher, l.logger, []byte(payload)); err != nil {
		l.logger.Error("Failed to process order change", "payload_bytes", len(payload), "error", err)
	}
}
