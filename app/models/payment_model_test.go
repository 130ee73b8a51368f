package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaymentEvent_Complete(t *testing.T) {
	res := PaymentStatusResult{Status: GatewayStatusComplete, RefID: "0001AB", TotalAmount: 1130}

	event, err := ResolvePaymentEvent(res, 1130)
	require.NoError(t, err)
	assert.Equal(t, EventPaymentConfirmed, event)
}

func TestResolvePaymentEvent_AmountMismatch(t *testing.T) {
	res := PaymentStatusResult{Status: GatewayStatusComplete, TotalAmount: 500}

	event, err := ResolvePaymentEvent(res, 1130)
	require.ErrorIs(t, err, ErrAmountMismatch)
	assert.Empty(t, event)
}

func TestResolvePaymentEvent_FailedAndCanceled(t *testing.T) {
	for _, status := range []string{GatewayStatusFailed, GatewayStatusCanceled} {
		event, err := ResolvePaymentEvent(PaymentStatusResult{Status: status}, 1130)
		require.NoError(t, err)
		assert.Equal(t, EventPaymentFailed, event, status)
	}
}

func TestResolvePaymentEvent_UnknownStatusesYieldNoEvent(t *testing.T) {
	for _, status := range []string{GatewayStatusPending, GatewayStatusNotFound, GatewayStatusAmbiguous, "SOMETHING_NEW"} {
		event, err := ResolvePaymentEvent(PaymentStatusResult{Status: status, TotalAmount: 1130}, 1130)
		require.NoError(t, err, status)
		assert.Empty(t, event, status)
	}
}
