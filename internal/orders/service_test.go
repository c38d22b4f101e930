package orders

import (
	"context"
	"testing"

	"github.com/foodgo/food-go-backend/internal/cart"
	"github.com/foodgo/food-go-backend/pkg/db/models"
	pkgerrors "github.com/foodgo/food-go-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type stubOrderRepo struct {
	created *models.Order
	listed  []models.Order
}

func (s *stubOrderRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	order.ID = uuid.New()
	s.created = order
	return order, nil
}

func (s *stubOrderRepo) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	return s.listed, nil
}

func buildOrderService(t *testing.T, repo *stubOrderRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{OrderRepo: repo})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestServicePlaceOrderSnapshotsCart(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := buildOrderService(t, repo)

	snap := cart.Snapshot{
		Items: []cart.LineItem{
			{
				ID:       "burger-1",
				Name:     "Smash Burger",
				Price:    decimal.RequireFromString("4.12"),
				Quantity: 2,
				Toppings: []string{"cheese"},
			},
		},
		DeliveryFee: decimal.RequireFromString("1.50"),
		Tax:         decimal.RequireFromString("0.30"),
	}
	totals := cart.ComputeTotals(snap, cart.Pricing{EstimatedMinutes: 15})

	order, err := svc.PlaceOrder(context.Background(), PlaceOrderParams{
		UserID:   uuid.New(),
		Email:    " Ada@Example.com",
		Snapshot: snap,
		Totals:   totals,
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if !order.Total.Equal(decimal.RequireFromString("10.04")) {
		t.Fatalf("total = %s", order.Total)
	}
	if repo.created.Email != "ada@example.com" {
		t.Fatalf("email = %q", repo.created.Email)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Fatalf("items = %+v", order.Items)
	}
}

func TestServicePlaceOrderRejectsEmptyCartAndAnonymous(t *testing.T) {
	svc := buildOrderService(t, &stubOrderRepo{})

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderParams{
		UserID: uuid.New(),
		Email:  "ada@example.com",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for empty cart, got %v", err)
	}

	_, err = svc.PlaceOrder(context.Background(), PlaceOrderParams{Email: "ada@example.com"})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for anonymous checkout, got %v", err)
	}
}

func TestServiceHistoryValidatesEmail(t *testing.T) {
	svc := buildOrderService(t, &stubOrderRepo{})

	_, err := svc.History(context.Background(), "   ")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
