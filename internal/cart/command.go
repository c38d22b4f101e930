package cart

import (
	"strings"

	"github.com/foodgo/food-go-backend/pkg/errors"
)

// Command is one cart mutation. The closed set of variants below is the only
// way a snapshot changes; Apply is the single transition function over them.
type Command interface {
	isCommand()
}

// AddItem puts a product in the cart. When the product is already present its
// quantity goes up by exactly one; any quantity on Item is ignored. A new
// product enters with quantity one.
type AddItem struct {
	Item LineItem
}

// RemoveItem drops the whole entry for a product, whatever its quantity.
type RemoveItem struct {
	ProductID string
}

// UpdateQuantity sets a product's quantity outright. Zero removes the entry;
// a negative quantity is rejected.
type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

// Clear empties the cart.
type Clear struct{}

// SetDeliveryFee overrides the stored fee without touching the items.
type SetDeliveryFee struct {
	Fee string
}

func (AddItem) isCommand()        {}
func (RemoveItem) isCommand()     {}
func (UpdateQuantity) isCommand() {}
func (Clear) isCommand()          {}
func (SetDeliveryFee) isCommand() {}

// Apply computes the snapshot that follows cmd. It never mutates snap. Item
// mutations re-align the stored fee and tax with the pricing policy in the
// same step, so a cart that empties out also drops its charges.
func Apply(snap Snapshot, cmd Command, pricing Pricing) (Snapshot, error) {
	switch c := cmd.(type) {
	case AddItem:
		return applyAdd(snap, c, pricing)
	case RemoveItem:
		return applyRemove(snap, c, pricing)
	case UpdateQuantity:
		return applyUpdateQuantity(snap, c, pricing)
	case Clear:
		return Snapshot{}, nil
	case SetDeliveryFee:
		return applySetFee(snap, c)
	default:
		return Snapshot{}, errors.New(errors.CodeValidation, "unknown cart command")
	}
}

func applyAdd(snap Snapshot, cmd AddItem, pricing Pricing) (Snapshot, error) {
	if strings.TrimSpace(cmd.Item.ID) == "" {
		return Snapshot{}, errors.New(errors.CodeValidation, "item id is required")
	}
	if cmd.Item.Price.IsNegative() {
		return Snapshot{}, errors.New(errors.CodeValidation, "item price must not be negative")
	}

	next := snap.clone()
	if i := next.indexOf(cmd.Item.ID); i >= 0 {
		next.Items[i].Quantity++
	} else {
		item := cmd.Item
		item.Quantity = 1
		next.Items = append(next.Items, item)
	}
	next.DeliveryFee, next.Tax = pricing.charges(next.Items)
	return next, nil
}

// applyRemove drops the line with the given id. Removing an id the cart does
// not hold is a no-op, so repeated removes are idempotent.
func applyRemove(snap Snapshot, cmd RemoveItem, pricing Pricing) (Snapshot, error) {
	next := snap.clone()
	i := next.indexOf(cmd.ProductID)
	if i < 0 {
		return next, nil
	}
	next.Items = append(next.Items[:i], next.Items[i+1:]...)
	next.DeliveryFee, next.Tax = pricing.charges(next.Items)
	return next, nil
}

func applyUpdateQuantity(snap Snapshot, cmd UpdateQuantity, pricing Pricing) (Snapshot, error) {
	if cmd.Quantity < 0 {
		return Snapshot{}, errors.New(errors.CodeValidation, "quantity must not be negative")
	}
	if cmd.Quantity == 0 {
		return applyRemove(snap, RemoveItem{ProductID: cmd.ProductID}, pricing)
	}

	next := snap.clone()
	i := next.indexOf(cmd.ProductID)
	if i < 0 {
		return Snapshot{}, errors.New(errors.CodeNotFound, "item is not in the cart")
	}
	next.Items[i].Quantity = cmd.Quantity
	next.DeliveryFee, next.Tax = pricing.charges(next.Items)
	return next, nil
}

func applySetFee(snap Snapshot, cmd SetDeliveryFee) (Snapshot, error) {
	fee, err := parseMoney(cmd.Fee)
	if err != nil {
		return Snapshot{}, err
	}
	next := snap.clone()
	next.DeliveryFee = fee
	return next, nil
}
