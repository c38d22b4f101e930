package paymentcards

import (
	"context"
	"fmt"
	"strings"

	"github.com/foodgo/food-go-backend/pkg/db/models"
	"github.com/foodgo/food-go-backend/pkg/enums"
	pkgerrors "github.com/foodgo/food-go-backend/pkg/errors"
	"github.com/google/uuid"
)

// Service defines the behavior needed by the payment card controller.
type Service interface {
	ListCards(ctx context.Context, userID uuid.UUID) ([]CardDTO, error)
	AddCard(ctx context.Context, userID uuid.UUID, req AddCardRequest) (*CardDTO, error)
	DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error
}

type cardRepository interface {
	Create(ctx context.Context, card *models.PaymentCard) (*models.PaymentCard, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PaymentCard, error)
	Delete(ctx context.Context, userID, cardID uuid.UUID) (bool, error)
	ClearDefault(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	cards cardRepository
}

// ServiceParams bundles the dependencies required to build a card service.
type ServiceParams struct {
	CardRepo cardRepository
}

// NewService constructs a card service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CardRepo == nil {
		return nil, fmt.Errorf("card repository is required")
	}
	return &service{cards: params.CardRepo}, nil
}

func (s *service) ListCards(ctx context.Context, userID uuid.UUID) ([]CardDTO, error) {
	cards, err := s.cards.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cards")
	}
	return fromModels(cards), nil
}

func (s *service) AddCard(ctx context.Context, userID uuid.UUID, req AddCardRequest) (*CardDTO, error) {
	number := strings.ReplaceAll(strings.TrimSpace(req.CardNumber), " ", "")
	cardType, err := enums.CardTypeForNumber(number)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported card number")
	}

	if req.IsDefault {
		if err := s.cards.ClearDefault(ctx, userID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear default card")
		}
	}

	card, err := s.cards.Create(ctx, &models.PaymentCard{
		UserID:     userID,
		CardNumber: MaskNumber(number),
		CardType:   cardType,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store card")
	}
	return FromModel(card), nil
}

func (s *service) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	deleted, err := s.cards.Delete(ctx, userID, cardID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete card")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "card not found")
	}
	return nil
}

// MaskNumber keeps the last four digits and blanks the rest.
func MaskNumber(number string) string {
	if len(number) <= 4 {
		return number
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}
