package paymentcards

import (
	"context"

	"github.com/foodgo/food-go-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes card-on-file persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cards repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a card and returns the persisted model.
func (r *Repository) Create(ctx context.Context, card *models.PaymentCard) (*models.PaymentCard, error) {
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		return nil, err
	}
	return card, nil
}

// ListByUser returns the user's cards, default card first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PaymentCard, error) {
	var cards []models.PaymentCard
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at ASC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// FindByID loads a card scoped to its owner.
func (r *Repository) FindByID(ctx context.Context, userID, cardID uuid.UUID) (*models.PaymentCard, error) {
	var card models.PaymentCard
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, cardID).
		First(&card).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// Delete removes a card scoped to its owner and reports whether a row went away.
func (r *Repository) Delete(ctx context.Context, userID, cardID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, cardID).
		Delete(&models.PaymentCard{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ClearDefault unsets the default flag on all of the user's cards.
func (r *Repository) ClearDefault(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.PaymentCard{}).
		Where("user_id = ?", userID).
		UpdateColumn("is_default", false).Error
}
