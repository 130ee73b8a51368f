package models

type SignUp struct {
	Email    string `json:"email" validate:"required,email,lte=255"`
	Username string `json:"username" validate:"required,lte=255"`
	Phone    string `json:"phone" validate:"omitempty,lte=20"`
	Password string `json:"password" validate:"required,gte=8,lte=255"`
	UserRole string `json:"user_role,omitempty" validate:"omitempty,oneof=user provider"`
}

type SignIn struct {
	Email    string `json:"email" validate:"required,email,lte=255"`
	Password string `json:"password" validate:"required,lte=255"`
}
