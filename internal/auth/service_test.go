package auth

import (
	"context"
	"testing"
	"time"

	pkgauth "github.com/foodgo/food-go-backend/pkg/auth"
	"github.com/foodgo/food-go-backend/pkg/config"
	"github.com/foodgo/food-go-backend/pkg/db/models"
	pkgerrors "github.com/foodgo/food-go-backend/pkg/errors"
	"github.com/foodgo/food-go-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	user          *models.User
	lastLoginSet  bool
	passwordHash  string
	hashUpdatedTo string
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.user
	return &copied, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.user
	return &copied, nil
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.lastLoginSet = true
	return nil
}

func (s *stubUserRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	s.hashUpdatedTo = hash
	return nil
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "foodgo",
		ExpirationMinutes: 30,
	}
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func strPtr(s string) *string { return &s }

func activeUser(t *testing.T, password string) *models.User {
	t.Helper()
	return &models.User{
		ID:              uuid.New(),
		Email:           "ada@example.com",
		PasswordHash:    mustHashPassword(t, password),
		FullName:        "Ada Vance",
		Phone:           strPtr("+15550100"),
		DeliveryAddress: strPtr("12 Market St"),
		IsActive:        true,
	}
}

func TestServiceSignInMintsIdentityClaims(t *testing.T) {
	password := "hunter-two-2"
	repo := &stubUserRepo{user: activeUser(t, password)}
	cfg := testJWTConfig()

	svc, err := NewService(ServiceParams{UserRepo: repo, JWTConfig: cfg})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	resp, err := svc.SignIn(context.Background(), SignInRequest{
		Email:    "Ada@Example.com ",
		Password: password,
	})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if !repo.lastLoginSet {
		t.Fatal("last login not recorded")
	}

	claims, err := pkgauth.ParseAccessToken(cfg, resp.Token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != repo.user.ID {
		t.Fatalf("userId claim = %s", claims.UserID)
	}
	if claims.FullName != "Ada Vance" || claims.Email != "ada@example.com" {
		t.Fatalf("identity claims = %q %q", claims.FullName, claims.Email)
	}
	if claims.PhoneNumber != "+15550100" || claims.DeliveryAddress != "12 Market St" {
		t.Fatalf("contact claims = %q %q", claims.PhoneNumber, claims.DeliveryAddress)
	}
	if resp.User == nil || resp.User.Email != "ada@example.com" {
		t.Fatalf("response user = %+v", resp.User)
	}
}

func TestServiceSignInRejectsBadCredentials(t *testing.T) {
	repo := &stubUserRepo{user: activeUser(t, "right-password")}
	svc, err := NewService(ServiceParams{UserRepo: repo, JWTConfig: testJWTConfig()})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	cases := []SignInRequest{
		{Email: "ada@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "right-password"},
		{Email: "   ", Password: "right-password"},
	}
	for _, req := range cases {
		_, err := svc.SignIn(context.Background(), req)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("req %+v: expected unauthorized, got %v", req, err)
		}
	}
}

func TestServiceSignInRejectsInactiveUser(t *testing.T) {
	password := "right-password"
	user := activeUser(t, password)
	user.IsActive = false
	svc, err := NewService(ServiceParams{UserRepo: &stubUserRepo{user: user}, JWTConfig: testJWTConfig()})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.SignIn(context.Background(), SignInRequest{Email: user.Email, Password: password})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for inactive user, got %v", err)
	}
}
