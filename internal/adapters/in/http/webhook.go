package http

import (
	"crypto/subtle"
	"errors"
	"io"
	"net/http"

	"orderflow/internal/adapters/changefeed"

	"github.com/labstack/echo/v4"
)

// WebhookSecretHeader carries the shared secret of the change webhook.
const WebhookSecretHeader = "X-Webhook-Secret"

const maxWebhookBody = 1 << 20

func (s *Server) requireWebhookSecret(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.webhookSecret == "" {
			return next(c)
		}
		got := c.Request().Header.Get(WebhookSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.webhookSecret)) != 1 {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "Invalid webhook secret",
			})
		}
		return next(c)
	}
}

// HandleOrderChange godoc
//
//	@Summary		Order store change webhook
//	@Description	Receives one INSERT or UPDATE of the pedidos table and notifies subscribers of the transition it carries.
//	@Tags			hooks
//	@Accept			json
//	@Produce		json
//	@Param			change	body		object	true	"database webhook payload: type, record, old_record"
//	@Success		200		{object}	DispatchResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/hooks/order-changes [post]
func (s *Server) HandleOrderChange(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return badRequest(c, "Invalid request body")
	}

	change, err := changefeed.Decode(payload)
	if errors.Is(err, changefeed.ErrIgnoredChange) {
		return c.JSON(http.StatusOK, DispatchResponse{Success: true, Message: "ignored"})
	}
	if err != nil {
		return s.fail(c, err, "Invalid change payload")
	}

	result, err := changefeed.Dispatch(c.Request().Context(), s.handlers.Dispatch, change)
	if err != nil {
		return s.fail(c, err, "Failed to dispatch change")
	}
	return c.JSON(http.StatusOK, newDispatchResponse(result))
}
