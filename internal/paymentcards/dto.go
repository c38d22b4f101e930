package paymentcards

import (
	"time"

	"github.com/google/uuid"

	"github.com/foodgo/food-go-backend/pkg/db/models"
	"github.com/foodgo/food-go-backend/pkg/enums"
)

// CardDTO is the transport shape for a stored card. Only the masked number
// ever leaves the service.
type CardDTO struct {
	ID         uuid.UUID      `json:"id"`
	CardNumber string         `json:"cardNumber"`
	CardType   enums.CardType `json:"cardType"`
	IsDefault  bool           `json:"isDefault"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// AddCardRequest carries the raw card details from the client. The number is
// masked before it touches storage.
type AddCardRequest struct {
	CardNumber string `json:"cardNumber" validate:"required,numeric,min=12,max=19"`
	IsDefault  bool   `json:"isDefault"`
}

func FromModel(c *models.PaymentCard) *CardDTO {
	if c == nil {
		return nil
	}
	return &CardDTO{
		ID:         c.ID,
		CardNumber: c.CardNumber,
		CardType:   c.CardType,
		IsDefault:  c.IsDefault,
		CreatedAt:  c.CreatedAt,
	}
}

func fromModels(cards []models.PaymentCard) []CardDTO {
	out := make([]CardDTO, 0, len(cards))
	for i := range cards {
		out = append(out, *FromModel(&cards[i]))
	}
	return out
}
