package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/foodgo/food-go-backend/internal/cart"
	"github.com/foodgo/food-go-backend/pkg/db/models"
	"github.com/foodgo/food-go-backend/pkg/enums"
	pkgerrors "github.com/foodgo/food-go-backend/pkg/errors"
	"github.com/google/uuid"
)

// PlaceOrderParams snapshots everything an order needs at checkout time.
type PlaceOrderParams struct {
	UserID   uuid.UUID
	Email    string
	Snapshot cart.Snapshot
	Totals   cart.Totals
}

// Service defines the behavior needed by the order controller.
type Service interface {
	History(ctx context.Context, email string) ([]OrderDTO, error)
	PlaceOrder(ctx context.Context, params PlaceOrderParams) (*OrderDTO, error)
}

type orderRepository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	ListByEmail(ctx context.Context, email string) ([]models.Order, error)
}

type service struct {
	orders orderRepository
}

// ServiceParams bundles the dependencies required to build an order service.
type ServiceParams struct {
	OrderRepo orderRepository
}

// NewService constructs an order service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.OrderRepo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	return &service{orders: params.OrderRepo}, nil
}

func (s *service) History(ctx context.Context, email string) ([]OrderDTO, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	orders, err := s.orders.ListByEmail(ctx, normalized)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return fromModels(orders), nil
}

func (s *service) PlaceOrder(ctx context.Context, params PlaceOrderParams) (*OrderDTO, error) {
	if params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to place an order")
	}
	if params.Snapshot.Empty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	items := make([]models.OrderLineItem, 0, len(params.Snapshot.Items))
	for _, item := range params.Snapshot.Items {
		items = append(items, models.OrderLineItem{
			ProductID:   item.ID,
			Name:        item.Name,
			ImageURL:    item.ImageURL,
			UnitPrice:   item.Price,
			Quantity:    item.Quantity,
			SpicyLevel:  item.SpicyLevel,
			Toppings:    item.Toppings,
			SideOptions: item.SideOptions,
		})
	}

	order, err := s.orders.Create(ctx, &models.Order{
		UserID:           params.UserID,
		Email:            strings.ToLower(strings.TrimSpace(params.Email)),
		Status:           enums.OrderStatusPending,
		Subtotal:         params.Totals.Subtotal,
		DeliveryFee:      params.Totals.DeliveryFee,
		Tax:              params.Totals.Tax,
		Total:            params.Totals.Total,
		EstimatedMinutes: params.Totals.EstimatedMinutes,
		PlacedAt:         time.Now().UTC(),
		Items:            items,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
	}
	return FromModel(order), nil
}
