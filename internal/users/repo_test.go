package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  full_name TEXT NOT NULL,
  phone TEXT,
  delivery_address TEXT,
  image_url TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func createTestUser(t *testing.T, repo *Repository, email string) *uuid.UUID {
	t.Helper()
	user := CreateUserDTO{
		Email:        email,
		PasswordHash: "argon2id$hash",
		FullName:     "Ada Vance",
	}.ToModel()
	user.ID = uuid.New()
	require.NoError(t, repo.db.WithContext(context.Background()).Create(user).Error)
	return &user.ID
}

func TestRepositoryFindByEmail(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	ctx := context.Background()

	createTestUser(t, repo, "ada@example.com")

	user, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada Vance", user.FullName)
	assert.True(t, user.IsActive)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryUpdateProfileAppliesOnlySetFields(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	ctx := context.Background()

	id := createTestUser(t, repo, "ada@example.com")

	address := "12 Market St"
	require.NoError(t, repo.UpdateProfile(ctx, *id, UpdateProfileDTO{
		DeliveryAddress: &address,
	}))

	user, err := repo.FindByID(ctx, *id)
	require.NoError(t, err)
	require.NotNil(t, user.DeliveryAddress)
	assert.Equal(t, address, *user.DeliveryAddress)
	assert.Equal(t, "Ada Vance", user.FullName, "unset field changed")

	require.NoError(t, repo.UpdateProfile(ctx, *id, UpdateProfileDTO{}))
}

func TestRepositoryUpdateLastLoginAndPassword(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	ctx := context.Background()

	id := createTestUser(t, repo, "ada@example.com")

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.UpdateLastLogin(ctx, *id, at))
	require.NoError(t, repo.UpdatePasswordHash(ctx, *id, "argon2id$newhash"))

	user, err := repo.FindByID(ctx, *id)
	require.NoError(t, err)
	require.NotNil(t, user.LastLoginAt)
	assert.Equal(t, "argon2id$newhash", user.PasswordHash)
}
