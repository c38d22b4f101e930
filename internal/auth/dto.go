package auth

import "github.com/foodgo/food-go-backend/internal/users"

// SignInRequest captures the credentials sent to the sign-in endpoint.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignInResponse contains the token and user produced by a successful sign-in.
// The mobile client decodes its identity straight out of the token claims.
type SignInResponse struct {
	Token string         `json:"token"`
	User  *users.UserDTO `json:"user"`
}

// SignUpRequest contains the payload required to create an account.
type SignUpRequest struct {
	FullName        string  `json:"fullName" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=8"`
	PhoneNumber     *string `json:"phoneNumber,omitempty"`
	DeliveryAddress *string `json:"deliveryAddress,omitempty"`
}

// ForgotPasswordRequest starts a password reset for the given account.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RestorePasswordRequest checks a reset code before the client shows the new
// password form.
type RestorePasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// ResetPasswordRequest redeems a reset code for a new password.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}
