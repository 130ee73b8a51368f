package models

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrPaymentNotFound = errors.New("payment transaction not found")
)

var (
	ErrValidation         = errors.New("validation error")
	ErrIllegalTransition  = errors.New("illegal booking transition")
	ErrSignatureMismatch  = errors.New("payment response signature mismatch")
	ErrGatewayUnreachable = errors.New("payment gateway unreachable")
	ErrAmountMismatch     = errors.New("payment amount mismatch")
)

var (
	ErrEmailTaken        = errors.New("email already registered")
	ErrPaymentInProgress = errors.New("a payment attempt for this booking is already in progress")
	ErrAlreadyPaid       = errors.New("booking is already paid")
)
