package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/foodgo/food-go-backend/pkg/db/models"
	"github.com/foodgo/food-go-backend/pkg/enums"
)

// OrderDTO is the transport shape of one placed order.
type OrderDTO struct {
	ID               uuid.UUID         `json:"id"`
	Status           enums.OrderStatus `json:"status"`
	Subtotal         decimal.Decimal   `json:"subtotal"`
	DeliveryFee      decimal.Decimal   `json:"deliveryFee"`
	Tax              decimal.Decimal   `json:"tax"`
	Total            decimal.Decimal   `json:"total"`
	EstimatedMinutes int               `json:"estimatedMinutes"`
	PlacedAt         time.Time         `json:"placedAt"`
	Items            []OrderItemDTO    `json:"items"`
}

// OrderItemDTO is one product line inside an order.
type OrderItemDTO struct {
	ProductID   string          `json:"id"`
	Name        string          `json:"name"`
	ImageURL    string          `json:"imageUrl"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	SpicyLevel  int             `json:"spicyLevel"`
	Toppings    []string        `json:"toppings"`
	SideOptions []string        `json:"sideOptions"`
}

func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemDTO{
			ProductID:   item.ProductID,
			Name:        item.Name,
			ImageURL:    item.ImageURL,
			Price:       item.UnitPrice,
			Quantity:    item.Quantity,
			SpicyLevel:  item.SpicyLevel,
			Toppings:    append([]string(nil), item.Toppings...),
			SideOptions: append([]string(nil), item.SideOptions...),
		})
	}
	return &OrderDTO{
		ID:               o.ID,
		Status:           o.Status,
		Subtotal:         o.Subtotal,
		DeliveryFee:      o.DeliveryFee,
		Tax:              o.Tax,
		Total:            o.Total,
		EstimatedMinutes: o.EstimatedMinutes,
		PlacedAt:         o.PlacedAt,
		Items:            items,
	}
}

func fromModels(orders []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, *FromModel(&orders[i]))
	}
	return out
}
