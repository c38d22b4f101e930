package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/foodgo/food-go-backend/pkg/db/models"
)

// UserDTO is the transport shape that omits sensitive credentials. The JSON
// keys match what the mobile client decodes out of its token claims.
type UserDTO struct {
	ID              uuid.UUID  `json:"userId"`
	Email           string     `json:"email"`
	FullName        string     `json:"fullName"`
	PhoneNumber     *string    `json:"phoneNumber,omitempty"`
	DeliveryAddress *string    `json:"deliveryAddress,omitempty"`
	ImageURL        *string    `json:"imageUrl,omitempty"`
	IsActive        bool       `json:"isActive"`
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email           string
	PasswordHash    string
	FullName        string
	PhoneNumber     *string
	DeliveryAddress *string
	ImageURL        *string
	IsActive        *bool
}

// UpdateProfileDTO carries the editable profile fields. Nil means "leave as is".
type UpdateProfileDTO struct {
	FullName        *string
	PhoneNumber     *string
	DeliveryAddress *string
	ImageURL        *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:              u.ID,
		Email:           u.Email,
		FullName:        u.FullName,
		PhoneNumber:     u.Phone,
		DeliveryAddress: u.DeliveryAddress,
		ImageURL:        u.ImageURL,
		IsActive:        u.IsActive,
		LastLoginAt:     u.LastLoginAt,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	return &models.User{
		Email:           c.Email,
		PasswordHash:    c.PasswordHash,
		FullName:        c.FullName,
		Phone:           c.PhoneNumber,
		DeliveryAddress: c.DeliveryAddress,
		ImageURL:        c.ImageURL,
		IsActive:        isActive,
	}
}
