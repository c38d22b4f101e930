package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/foodgo/food-go-backend/pkg/config"
	"github.com/foodgo/food-go-backend/pkg/db/models"
	pkgerrors "github.com/foodgo/food-go-backend/pkg/errors"
	redisclient "github.com/foodgo/food-go-backend/pkg/redis"
	"github.com/foodgo/food-go-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const invalidResetCodeMessage = "invalid or expired reset code"

// codeStore is the slice of the redis client the reset flow needs. Codes are
// single-use: redemption deletes the key.
type codeStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	ResetCodeKey(code string) string
}

// PasswordResetService drives the forgot / restore / reset flow.
type PasswordResetService interface {
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	RestorePassword(ctx context.Context, req RestorePasswordRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

// PasswordResetParams packages the dependencies for the reset flow.
type PasswordResetParams struct {
	UserRepo       userRepository
	Codes          codeStore
	ResetConfig    config.PasswordResetConfig
	PasswordConfig config.PasswordConfig
}

type passwordResetService struct {
	users       userRepository
	codes       codeStore
	resetCfg    config.PasswordResetConfig
	passwordCfg config.PasswordConfig
}

// NewPasswordResetService builds the reset service with the provided dependencies.
func NewPasswordResetService(params PasswordResetParams) (PasswordResetService, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Codes == nil {
		return nil, fmt.Errorf("code store is required")
	}
	return &passwordResetService{
		users:       params.UserRepo,
		codes:       params.Codes,
		resetCfg:    params.ResetConfig,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// ForgotPassword mints a short-lived numeric code bound to the account. In a
// full deployment the code goes out by email; here it lives only in the code
// store until it expires or is redeemed.
func (s *passwordResetService) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error {
	user, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	// Retry on the rare code collision with another in-flight reset.
	for attempt := 0; attempt < 3; attempt++ {
		code, err := security.GenerateResetCode(s.resetCfg.CodeLength)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reset code")
		}
		stored, err := s.codes.SetNX(ctx, s.codes.ResetCodeKey(code), user.ID.String(), s.resetCfg.CodeTTL)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store reset code")
		}
		if stored {
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeInternal, "could not allocate a reset code")
}

// RestorePassword checks that a code is live and belongs to the account,
// without consuming it.
func (s *passwordResetService) RestorePassword(ctx context.Context, req RestorePasswordRequest) error {
	_, err := s.redeemable(ctx, req.Email, req.Code)
	return err
}

// ResetPassword redeems a code for a new credential. The code is deleted on
// success so it cannot be replayed.
func (s *passwordResetService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	user, err := s.redeemable(ctx, req.Email, req.Code)
	if err != nil {
		return err
	}

	hash, err := security.HashPassword(req.NewPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}
	if err := s.codes.Del(ctx, s.codes.ResetCodeKey(req.Code)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume reset code")
	}
	return nil
}

func (s *passwordResetService) redeemable(ctx context.Context, email, code string) (*models.User, error) {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	stored, err := s.codes.Get(ctx, s.codes.ResetCodeKey(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidResetCodeMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read reset code")
	}

	ownerID, err := uuid.Parse(stored)
	if err != nil || ownerID != user.ID {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidResetCodeMessage)
	}
	return user, nil
}

func (s *passwordResetService) findByEmail(ctx context.Context, email string) (*models.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return user, nil
}
