package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already in use")
)

type Image struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url,omitempty"`
}

type Preferences struct {
	Currency      string `json:"currency"`
	Language      string `json:"language"`
	Notifications bool   `json:"notifications"`
}

type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"` // never expose hash in JSON
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	Avatar       Image       `json:"avatar"`
	Role         string      `json:"role"`
	Preferences  Preferences `json:"preferences"`

	IsEmailVerified        bool       `json:"isEmailVerified"`
	VerificationCodeHash   string     `json:"-"`
	VerificationCodeExpiry *time.Time `json:"-"`

	ResetCodeHash     string     `json:"-"`
	ResetCodeExpiry   *time.Time `json:"-"`
	ResetCodeVerified bool       `json:"-"`

	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Currency:      "USD",
		Language:      "en",
		Notifications: true,
	}
}

type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required,min=2,max=50"`
	LastName  string `json:"lastName" binding:"required,min=2,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyResetCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Code     string `json:"code" binding:"required,len=6"`
	Password string `json:"password" binding:"required,min=8"`
}

type UpdateDetailsRequest struct {
	FirstName string `json:"firstName" binding:"omitempty,min=2,max=50"`
	LastName  string `json:"lastName" binding:"omitempty,min=2,max=50"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

type UpdatePreferencesRequest struct {
	Currency      *string `json:"currency" binding:"omitempty,len=3"`
	Language      *string `json:"language" binding:"omitempty,min=2,max=5"`
	Notifications *bool   `json:"notifications"`
}

// AdminUpdateRequest is the admin-only user mutation surface.
type AdminUpdateRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,min=2,max=50"`
	LastName  *string `json:"lastName" binding:"omitempty,min=2,max=50"`
	Role      *string `json:"role" binding:"omitempty,oneof=user admin"`
	IsActive  *bool   `json:"isActive"`
}
