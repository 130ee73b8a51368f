package models

type BookingEvent string

const (
	EventProviderAccept   BookingEvent = "PROVIDER_ACCEPT"
	EventProviderReject   BookingEvent = "PROVIDER_REJECT"
	EventProviderComplete BookingEvent = "PROVIDER_COMPLETE"
	EventUserCancel       BookingEvent = "USER_CANCEL"
	EventPaymentInitiated BookingEvent = "PAYMENT_INITIATED"
	EventPaymentConfirmed BookingEvent = "PAYMENT_CONFIRMED"
	EventPaymentFailed    BookingEvent = "PAYMENT_FAILED"
	EventPaymentRefunded  BookingEvent = "PAYMENT_REFUNDED"
)

// IsTerminal reports whether no further booking-status transitions are
// permitted from s.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusRejected || s == BookingStatusCancelled
}

// ApplyBookingEvent applies event to a copy of b and returns the updated
// booking. On ErrIllegalTransition the returned booking equals the input
// unchanged. The terminal-state guard lives here and only here: handlers
// must never pre-check statuses themselves. The one exception to the guard
// is PAYMENT_REFUNDED, since a cancelled or rejected booking that was paid
// must remain refundable.
func ApplyBookingEvent(b Booking, event BookingEvent) (Booking, error) {
	if b.BookingStatus.IsTerminal() && event != EventPaymentRefunded {
		return b, ErrIllegalTransition
	}

	switch event {
	case EventProviderAccept:
		if b.BookingStatus != BookingStatusPending {
			return b, ErrIllegalTransition
		}
		b.BookingStatus = BookingStatusConfirmed
	case EventProviderReject:
		if b.BookingStatus != BookingStatusPending {
			return b, ErrIllegalTransition
		}
		b.BookingStatus = BookingStatusRejected
	case EventProviderComplete:
		if b.BookingStatus != BookingStatusConfirmed {
			return b, ErrIllegalTransition
		}
		b.BookingStatus = BookingStatusCompleted
	case EventUserCancel:
		if b.BookingStatus != BookingStatusPending && b.BookingStatus != BookingStatusConfirmed {
			return b, ErrIllegalTransition
		}
		b.BookingStatus = BookingStatusCancelled
	case EventPaymentInitiated:
		if b.PaymentStatus != PaymentStatusUnpaid {
			return b, ErrIllegalTransition
		}
		b.PaymentStatus = PaymentStatusPending
	case EventPaymentConfirmed:
		if b.PaymentStatus != PaymentStatusPending {
			return b, ErrIllegalTransition
		}
		b.PaymentStatus = PaymentStatusPaid
	case EventPaymentFailed:
		if b.PaymentStatus != PaymentStatusPending {
			return b, ErrIllegalTransition
		}
		b.PaymentStatus = PaymentStatusUnpaid
	case EventPaymentRefunded:
		if b.PaymentStatus != PaymentStatusPaid {
			return b, ErrIllegalTransition
		}
		b.PaymentStatus = PaymentStatusRefunded
	default:
		return b, ErrIllegalTransition
	}

	return b, nil
}
