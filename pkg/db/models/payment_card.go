package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/foodgo/food-go-backend/pkg/enums"
)

// PaymentCard is a card-on-file record. Only the masked number is persisted;
// vaulting with a payment gateway happens outside this system.
type PaymentCard struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index"`
	CardNumber string         `gorm:"column:card_number;not null"`
	CardType   enums.CardType `gorm:"column:card_type;not null"`
	IsDefault  bool           `gorm:"column:is_default;not null;default:false"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
