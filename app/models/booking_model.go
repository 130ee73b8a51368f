package models

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Booking struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	UserID        uuid.UUID     `json:"user_id" db:"user_id"`
	ProviderID    uuid.NullUUID `json:"provider_id,omitempty" db:"provider_id"`
	ServiceID     uuid.UUID     `json:"service_id" db:"service_id"`
	ScheduledDate time.Time     `json:"scheduled_date" db:"scheduled_date"`
	BookedAt      time.Time     `json:"booked_at" db:"booked_at"`
	BookingStatus BookingStatus `json:"booking_status" db:"booking_status"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	Amount        float64       `json:"amount" db:"amount"`
	Address       string        `json:"address,omitempty" db:"address"`
	City          string        `json:"city,omitempty" db:"city"`
	Lat           float64       `json:"lat,omitempty" db:"lat"`
	Lon           float64       `json:"lon,omitempty" db:"lon"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

type CreateBookingRequest struct {
	ServiceID     string  `json:"service_id" validate:"required,uuid"`
	ProviderID    string  `json:"provider_id,omitempty"`
	ScheduledDate string  `json:"scheduled_date" validate:"required"`
	Address       string  `json:"address" validate:"required"`
	City          string  `json:"city,omitempty"`
	Lat           float64 `json:"lat,omitempty"`
	Lon           float64 `json:"lon,omitempty"`
}

type CreateBookingResponse struct {
	ID            uuid.UUID     `json:"id"`
	BookingStatus BookingStatus `json:"booking_status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Amount        float64       `json:"amount"`
}
