package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderLineItem persists product-level snapshots tied to an Order.
type OrderLineItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID       `gorm:"column:order_id;type:uuid;not null"`
	ProductID   string          `gorm:"column:product_id;not null"`
	Name        string          `gorm:"column:name;not null"`
	ImageURL    string          `gorm:"column:image_url"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric;not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	SpicyLevel  int             `gorm:"column:spicy_level;not null;default:0"`
	Toppings    pq.StringArray  `gorm:"column:toppings;type:text[]"`
	SideOptions pq.StringArray  `gorm:"column:side_options;type:text[]"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
