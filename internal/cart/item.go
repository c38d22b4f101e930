package cart

import "github.com/shopspring/decimal"

// LineItem is one product entry in a cart. A cart never holds two entries
// with the same ID; quantity tracks repetition instead.
type LineItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	ImageURL    string          `json:"imageUrl"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	SpicyLevel  int             `json:"spicyLevel"`
	Toppings    []string        `json:"toppings"`
	SideOptions []string        `json:"sideOptions"`
}

// Snapshot is the full persisted cart state: the items plus the fee and tax
// that were current when it was last written.
type Snapshot struct {
	Items       []LineItem      `json:"items"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Tax         decimal.Decimal `json:"tax"`
}

// Empty reports whether the snapshot holds no items.
func (s Snapshot) Empty() bool {
	return len(s.Items) == 0
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Items = append([]LineItem(nil), s.Items...)
	return out
}

func (s Snapshot) indexOf(productID string) int {
	for i, item := range s.Items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}
