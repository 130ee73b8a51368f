package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Gateway transaction statuses as reported by eSewa's status endpoint.
const (
	GatewayStatusPending   = "PENDING"
	GatewayStatusComplete  = "COMPLETE"
	GatewayStatusFailed    = "FAILED"
	GatewayStatusCanceled  = "CANCELED"
	GatewayStatusNotFound  = "NOT_FOUND"
	GatewayStatusAmbiguous = "AMBIGUOUS"
)

type PaymentTransaction struct {
	ID              uuid.UUID `json:"id" db:"id"`
	BookingID       uuid.UUID `json:"booking_id" db:"booking_id"`
	TransactionUUID string    `json:"transaction_uuid" db:"transaction_uuid"`
	ProductCode     string    `json:"product_code" db:"product_code"`
	BaseAmount      float64   `json:"base_amount" db:"base_amount"`
	TaxAmount       float64   `json:"tax_amount" db:"tax_amount"`
	TotalAmount     float64   `json:"total_amount" db:"total_amount"`
	Signature       string    `json:"signature" db:"signature"`
	Status          string    `json:"status" db:"status"`
	RefID           string    `json:"ref_id,omitempty" db:"ref_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// PaymentStatusResult is the normalized shape of the gateway's status
// endpoint response, regardless of which of its response variants came back.
type PaymentStatusResult struct {
	Status      string  `json:"status"`
	RefID       string  `json:"ref_id,omitempty"`
	TotalAmount float64 `json:"total_amount,omitempty"`
	Message     string  `json:"message,omitempty"`
}

type CheckoutRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
}

// EsewaPaymentForm carries every field the gateway's hosted checkout form
// expects, plus the URL the client must POST it to.
type EsewaPaymentForm struct {
	FormURL               string `json:"form_url"`
	Amount                string `json:"amount"`
	TaxAmount             string `json:"tax_amount"`
	TotalAmount           string `json:"total_amount"`
	TransactionUUID       string `json:"transaction_uuid"`
	ProductCode           string `json:"product_code"`
	ProductServiceCharge  string `json:"product_service_charge"`
	ProductDeliveryCharge string `json:"product_delivery_charge"`
	SuccessURL            string `json:"success_url"`
	FailureURL            string `json:"failure_url"`
	SignedFieldNames      string `json:"signed_field_names"`
	Signature             string `json:"signature"`
}

// ResolvePaymentEvent maps an authoritative status-check result onto the
// booking event to apply, if any. A zero event with nil error means the
// outcome is still unknown and no transition may be made. COMPLETE with a
// total that disagrees with the locally recorded amount is a hard failure:
// no event, ErrAmountMismatch.
func ResolvePaymentEvent(res PaymentStatusResult, expectedTotal float64) (BookingEvent, error) {
	switch res.Status {
	case GatewayStatusComplete:
		if math.Abs(res.TotalAmount-expectedTotal) > 0.01 {
			return "", ErrAmountMismatch
		}
		return EventPaymentConfirmed, nil
	case GatewayStatusFailed, GatewayStatusCanceled:
		return EventPaymentFailed, nil
	default:
		// PENDING, NOT_FOUND, AMBIGUOUS: unknown, retry later.
		return "", nil
	}
}
