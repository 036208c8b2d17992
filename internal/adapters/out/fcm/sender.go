// Package fcm is the Firebase Cloud Messaging push transport.
package fcm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"orderflow/internal/core/domain/model/notification"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/errorutils"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type messagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Sender implements ports.PushSender over the FCM HTTP v1 API.
type Sender struct {
	client messagingClient
	logger *slog.Logger
}

// NewSender authenticates with a service account file. An empty
// credentialsFile falls back to application default credentials. Extra
// client options are passed through to the Firebase app.
func NewSender(ctx context.Context, credentialsFile, projectID string, logger *slog.Logger, opts ...option.ClientOption) (*Sender, error) {
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase messaging: %w", err)
	}

	return NewSenderWithClient(client, logger), nil
}

func NewSenderWithClient(client messagingClient, logger *slog.Logger) *Sender {
	return &Sender{
		client: client,
		logger: logger.With("component", "fcm_sender"),
	}
}

func (s *Sender) Send(ctx context.Context, token string, msg notification.Message) (notification.Outcome, error) {
	if err := msg.Validate(); err != nil {
		return notification.TransientFailure, err
	}

	id, err := s.client.Send(ctx, buildMessage(token, msg))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return notification.TransientFailure, errors.Join(ctxErr, err)
		}
		if isInvalidRegistration(err) {
			return notification.PermanentlyInvalid, err
		}
		return notification.TransientFailure, err
	}

	s.logger.Debug("Message accepted", "message_id", id, "token", notification.Shorten(token))
	return notification.Delivered, nil
}

func buildMessage(token string, msg notification.Message) *messaging.Message {
	m := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: msg.Title,
				Body:  msg.Body,
				Icon:  msg.Icon,
				Badge: msg.Badge,
			},
			Data: msg.Data,
		},
	}

	ttl := msg.TTL
	if ttl <= 0 {
		ttl = notification.DefaultTTL
	}
	m.Webpush.Headers = map[string]string{
		"TTL": strconv.FormatInt(int64(ttl.Seconds()), 10),
	}

	return m
}

// isInvalidRegistration covers the "registration not found or invalid" class:
// unregistered tokens and tokens of another sender. INVALID_ARGUMENT is also
// returned for payload faults (oversized message, reserved data key), so it
// only counts when FCM names the registration token as the bad argument.
func isInvalidRegistration(err error) bool {
	if messaging.IsUnregistered(err) || messaging.IsSenderIDMismatch(err) {
		return true
	}
	return errorutils.IsInvalidArgument(err) &&
		strings.Contains(strings.ToLower(err.Error()), "registration token")
}
