package notification_test

import (
	"errors"
	"testing"

	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountDeliveries(t *testing.T) {
	deliveries := []notification.Delivery{
		{Token: "a", Outcome: notification.Delivered},
		{Token: "b", Outcome: notification.TransientFailure, Cause: errors.New("unavailable")},
		{Token: "c", Outcome: notification.PermanentlyInvalid},
		{Token: "d", Outcome: notification.Delivered},
		{Token: "e", Outcome: notification.OutcomeUnknown},
	}

	tally := notification.CountDeliveries(deliveries)

	assert.Equal(t, notification.Tally{Delivered: 2, Failed: 3, Invalid: 1}, tally)
	assert.Equal(t, []string{"c"}, notification.InvalidTokens(deliveries))
}

func TestInvalidTokens_NoneInvalid(t *testing.T) {
	assert.Empty(t, notification.InvalidTokens([]notification.Delivery{{Token: "a", Outcome: notification.Delivered}}))
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "delivered", notification.Delivered.String())
	assert.Equal(t, "transient_failure", notification.TransientFailure.String())
	assert.Equal(t, "permanently_invalid", notification.PermanentlyInvalid.String())
	assert.Equal(t, "unknown", notification.OutcomeUnknown.String())
}

func TestMessage_Validate(t *testing.T) {
	require.NoError(t, notification.Message{Title: "Pedido #42", Body: "Foi despachado! 🚚"}.Validate())
	require.ErrorIs(t, notification.Message{Body: "x"}.Validate(), errs.ErrValueIsRequired)
	require.ErrorIs(t, notification.Message{Title: "x"}.Validate(), errs.ErrValueIsRequired)
}
