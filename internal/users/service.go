package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/foodgo/food-go-backend/pkg/db/models"
	pkgerrors "github.com/foodgo/food-go-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpdateProfileRequest carries the editable profile fields from the client.
type UpdateProfileRequest struct {
	FullName        *string `json:"fullName,omitempty" validate:"omitempty,min=1"`
	PhoneNumber     *string `json:"phoneNumber,omitempty"`
	DeliveryAddress *string `json:"deliveryAddress,omitempty"`
	ImageURL        *string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// Service defines the behavior needed by the profile controller.
type Service interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*UserDTO, error)
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, dto UpdateProfileDTO) error
}

type service struct {
	users userRepository
}

// ServiceParams bundles the dependencies required to build a profile service.
type ServiceParams struct {
	UserRepo userRepository
}

// NewService constructs a profile service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{users: params.UserRepo}, nil
}

func (s *service) GetProfile(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*UserDTO, error) {
	if req.FullName != nil && strings.TrimSpace(*req.FullName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name must not be blank")
	}

	if _, err := s.findUser(ctx, id); err != nil {
		return nil, err
	}

	err := s.users.UpdateProfile(ctx, id, UpdateProfileDTO{
		FullName:        req.FullName,
		PhoneNumber:     req.PhoneNumber,
		DeliveryAddress: req.DeliveryAddress,
		ImageURL:        req.ImageURL,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func (s *service) findUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return user, nil
}
