package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foodgo/food-go-backend/api/middleware"
	"github.com/foodgo/food-go-backend/api/responses"
	"github.com/foodgo/food-go-backend/api/validators"
	"github.com/foodgo/food-go-backend/internal/paymentcards"
	pkgerrors "github.com/foodgo/food-go-backend/pkg/errors"
	"github.com/foodgo/food-go-backend/pkg/logger"
	"github.com/google/uuid"
)

// PaymentCardsList returns the user's stored cards.
func PaymentCardsList(svc paymentcards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ownCardOwnerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cards, err := svc.ListCards(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cards)
	}
}

// PaymentCardsAdd stores a new card with a masked number.
func PaymentCardsAdd(svc paymentcards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ownCardOwnerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body paymentcards.AddCardRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		card, err := svc.AddCard(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, card)
	}
}

// PaymentCardsDelete removes one of the user's cards.
func PaymentCardsDelete(svc paymentcards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ownCardOwnerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cardID, err := validators.ParseUUIDParam(chi.URLParam(r, "cardId"), "cardId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteCard(r.Context(), userID, cardID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func ownCardOwnerID(r *http.Request) (uuid.UUID, error) {
	id, err := validators.ParseUUIDParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		return uuid.Nil, err
	}
	if middleware.UserIDFromContext(r.Context()) != id.String() {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "cards belong to another user")
	}
	return id, nil
}
