package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/foodgo/food-go-backend/pkg/enums"
)

// Order is a placed order snapshot, looked up by the customer's email for the
// order-history screen.
type Order struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           uuid.UUID         `gorm:"column:user_id;type:uuid;not null"`
	Email            string            `gorm:"column:email;not null;index"`
	Status           enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	Subtotal         decimal.Decimal   `gorm:"column:subtotal;type:numeric;not null"`
	DeliveryFee      decimal.Decimal   `gorm:"column:delivery_fee;type:numeric;not null"`
	Tax              decimal.Decimal   `gorm:"column:tax;type:numeric;not null"`
	Total            decimal.Decimal   `gorm:"column:total;type:numeric;not null"`
	EstimatedMinutes int               `gorm:"column:estimated_minutes;not null;default:0"`
	PlacedAt         time.Time         `gorm:"column:placed_at;not null"`
	Items            []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
