package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"uid"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	PasswordHash string    `json:"-"`
	UserRole     string    `json:"user_role"`

	// Provider profile, populated once a user is promoted.
	Category string  `json:"category,omitempty"`
	City     string  `json:"city,omitempty"`
	Rating   float64 `json:"rating,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PromoteProviderRequest struct {
	Category string `json:"category" validate:"required,lte=100"`
	City     string `json:"city" validate:"omitempty,lte=100"`
}

type UpdateUserRequest struct {
	Username    *string `json:"username"`
	PhoneNumber *string `json:"phone_number"`
	Avatar      *string `json:"avatar"`
	City        *string `json:"city"`
}
