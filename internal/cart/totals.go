package cart

import (
	"fmt"

	"github.com/foodgo/food-go-backend/pkg/config"
	"github.com/foodgo/food-go-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

func parseMoney(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, errors.New(errors.CodeValidation, "amount must be a decimal number")
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, errors.New(errors.CodeValidation, "amount must not be negative")
	}
	return amount, nil
}

// Pricing holds the flat charges applied to any non-empty cart. The fee and
// tax do not scale with order size.
type Pricing struct {
	DeliveryFee      decimal.Decimal
	Tax              decimal.Decimal
	EstimatedMinutes int
}

// PricingFromConfig parses the configured money strings.
func PricingFromConfig(cfg config.PricingConfig) (Pricing, error) {
	fee, err := decimal.NewFromString(cfg.DeliveryFee)
	if err != nil {
		return Pricing{}, fmt.Errorf("delivery fee %q: %w", cfg.DeliveryFee, err)
	}
	tax, err := decimal.NewFromString(cfg.Tax)
	if err != nil {
		return Pricing{}, fmt.Errorf("tax %q: %w", cfg.Tax, err)
	}
	if fee.IsNegative() || tax.IsNegative() {
		return Pricing{}, fmt.Errorf("delivery fee and tax must not be negative")
	}
	if cfg.EstimatedDeliveryMinutes <= 0 {
		return Pricing{}, fmt.Errorf("estimated delivery minutes must be positive")
	}
	return Pricing{
		DeliveryFee:      fee,
		Tax:              tax,
		EstimatedMinutes: cfg.EstimatedDeliveryMinutes,
	}, nil
}

// charges returns the fee and tax a snapshot with the given items should
// carry: the flat charges when any item is present, zero otherwise.
func (p Pricing) charges(items []LineItem) (fee, tax decimal.Decimal) {
	if len(items) == 0 {
		return decimal.Zero, decimal.Zero
	}
	return p.DeliveryFee, p.Tax
}

// Totals is the derived view of a snapshot. Every figure recomputes from the
// items; nothing here is stored.
type Totals struct {
	Subtotal         decimal.Decimal `json:"subtotal"`
	DeliveryFee      decimal.Decimal `json:"deliveryFee"`
	Tax              decimal.Decimal `json:"tax"`
	Total            decimal.Decimal `json:"total"`
	ItemCount        int             `json:"itemCount"`
	EstimatedMinutes int             `json:"estimatedMinutes"`
}

// ComputeTotals derives the money view of a snapshot. An empty cart totals
// zero across the board, whatever fee or tax the snapshot carries.
func ComputeTotals(snap Snapshot, pricing Pricing) Totals {
	if snap.Empty() {
		return Totals{
			Subtotal:    decimal.Zero,
			DeliveryFee: decimal.Zero,
			Tax:         decimal.Zero,
			Total:       decimal.Zero,
		}
	}

	subtotal := decimal.Zero
	count := 0
	for _, item := range snap.Items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		count += item.Quantity
	}
	return Totals{
		Subtotal:         subtotal,
		DeliveryFee:      snap.DeliveryFee,
		Tax:              snap.Tax,
		Total:            subtotal.Add(snap.DeliveryFee).Add(snap.Tax),
		ItemCount:        count,
		EstimatedMinutes: pricing.EstimatedMinutes,
	}
}
