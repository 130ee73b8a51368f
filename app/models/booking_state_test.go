package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBooking(bs BookingStatus, ps PaymentStatus) Booking {
	return Booking{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		ServiceID:     uuid.New(),
		ScheduledDate: time.Now().Add(24 * time.Hour),
		BookedAt:      time.Now(),
		BookingStatus: bs,
		PaymentStatus: ps,
		Amount:        1000,
		Address:       "Baneshwor, Kathmandu",
	}
}

func TestApplyBookingEvent_LegalEdges(t *testing.T) {
	tests := []struct {
		name        string
		from        Booking
		event       BookingEvent
		wantBooking BookingStatus
		wantPayment PaymentStatus
	}{
		{"provider accept", newTestBooking(BookingStatusPending, PaymentStatusUnpaid), EventProviderAccept, BookingStatusConfirmed, PaymentStatusUnpaid},
		{"provider reject", newTestBooking(BookingStatusPending, PaymentStatusUnpaid), EventProviderReject, BookingStatusRejected, PaymentStatusUnpaid},
		{"provider complete", newTestBooking(BookingStatusConfirmed, PaymentStatusPaid), EventProviderComplete, BookingStatusCompleted, PaymentStatusPaid},
		{"user cancel pending", newTestBooking(BookingStatusPending, PaymentStatusUnpaid), EventUserCancel, BookingStatusCancelled, PaymentStatusUnpaid},
		{"user cancel confirmed", newTestBooking(BookingStatusConfirmed, PaymentStatusUnpaid), EventUserCancel, BookingStatusCancelled, PaymentStatusUnpaid},
		{"payment initiated", newTestBooking(BookingStatusPending, PaymentStatusUnpaid), EventPaymentInitiated, BookingStatusPending, PaymentStatusPending},
		{"payment confirmed", newTestBooking(BookingStatusPending, PaymentStatusPending), EventPaymentConfirmed, BookingStatusPending, PaymentStatusPaid},
		{"payment failed reverts to unpaid", newTestBooking(BookingStatusPending, PaymentStatusPending), EventPaymentFailed, BookingStatusPending, PaymentStatusUnpaid},
		{"refund", newTestBooking(BookingStatusConfirmed, PaymentStatusPaid), EventPaymentRefunded, BookingStatusConfirmed, PaymentStatusRefunded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyBookingEvent(tt.from, tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBooking, got.BookingStatus)
			assert.Equal(t, tt.wantPayment, got.PaymentStatus)
		})
	}
}

func TestApplyBookingEvent_IllegalEdges(t *testing.T) {
	tests := []struct {
		name  string
		from  Booking
		event BookingEvent
	}{
		{"accept a confirmed booking", newTestBooking(BookingStatusConfirmed, PaymentStatusUnpaid), EventProviderAccept},
		{"reject a confirmed booking", newTestBooking(BookingStatusConfirmed, PaymentStatusUnpaid), EventProviderReject},
		{"complete a pending booking", newTestBooking(BookingStatusPending, PaymentStatusUnpaid), EventProviderComplete},
		{"cancel a completed booking", newTestBooking(BookingStatusCompleted, PaymentStatusPaid), EventUserCancel},
		{"accept a cancelled booking", newTestBooking(BookingStatusCancelled, PaymentStatusUnpaid), EventProviderAccept},
		{"reject a rejected booking", newTestBooking(BookingStatusRejected, PaymentStatusUnpaid), EventProviderReject},
		{"initiate payment while pending", newTestBooking(BookingStatusPending, PaymentStatusPending), EventPaymentInitiated},
		{"initiate payment when paid", newTestBooking(BookingStatusPending, PaymentStatusPaid), EventPaymentInitiated},
		{"confirm unpaid payment", newTestBooking(BookingStatusPending, PaymentStatusUnpaid), EventPaymentConfirmed},
		{"confirm payment on cancelled booking", newTestBooking(BookingStatusCancelled, PaymentStatusPending), EventPaymentConfirmed},
		{"fail an already paid payment", newTestBooking(BookingStatusPending, PaymentStatusPaid), EventPaymentFailed},
		{"refund an unpaid booking", newTestBooking(BookingStatusConfirmed, PaymentStatusUnpaid), EventPaymentRefunded},
		{"unknown event", newTestBooking(BookingStatusPending, PaymentStatusUnpaid), BookingEvent("NO_SUCH_EVENT")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyBookingEvent(tt.from, tt.event)
			require.ErrorIs(t, err, ErrIllegalTransition)
			// A rejected event must leave the record untouched.
			assert.Equal(t, tt.from, got)
		})
	}
}

func TestApplyBookingEvent_RefundOnTerminalBooking(t *testing.T) {
	// The refund edge is the single exception to the terminal-booking
	// guard: a cancelled but paid booking must stay refundable.
	b := newTestBooking(BookingStatusCancelled, PaymentStatusPaid)

	got, err := ApplyBookingEvent(b, EventPaymentRefunded)
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusRefunded, got.PaymentStatus)
	assert.Equal(t, BookingStatusCancelled, got.BookingStatus)

	// And refunded is terminal on the payment axis.
	_, err = ApplyBookingEvent(got, EventPaymentRefunded)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestApplyBookingEvent_PaymentConfirmedKeepsBookingPending(t *testing.T) {
	b := newTestBooking(BookingStatusPending, PaymentStatusPending)

	got, err := ApplyBookingEvent(b, EventPaymentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPaid, got.PaymentStatus)
	// Payment and provider acceptance are orthogonal axes.
	assert.Equal(t, BookingStatusPending, got.BookingStatus)
}

func TestApplyBookingEvent_AcceptThenRejectFails(t *testing.T) {
	b := newTestBooking(BookingStatusPending, PaymentStatusUnpaid)

	confirmed, err := ApplyBookingEvent(b, EventProviderAccept)
	require.NoError(t, err)
	assert.Equal(t, BookingStatusConfirmed, confirmed.BookingStatus)

	rejected, err := ApplyBookingEvent(confirmed, EventProviderReject)
	require.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, confirmed, rejected)
}

func TestApplyBookingEvent_RetryAfterFailure(t *testing.T) {
	b := newTestBooking(BookingStatusPending, PaymentStatusPending)

	failed, err := ApplyBookingEvent(b, EventPaymentFailed)
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusUnpaid, failed.PaymentStatus)

	// A failed attempt frees the booking for a new checkout.
	retried, err := ApplyBookingEvent(failed, EventPaymentInitiated)
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPending, retried.PaymentStatus)
}
