package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/foodgo/food-go-backend/api/middleware"
	"github.com/foodgo/food-go-backend/api/responses"
	"github.com/foodgo/food-go-backend/api/validators"
	"github.com/foodgo/food-go-backend/internal/orders"
	pkgerrors "github.com/foodgo/food-go-backend/pkg/errors"
	"github.com/foodgo/food-go-backend/pkg/logger"
)

// OrderHistory returns the caller's placed orders, newest first. The address
// in the path must match the token's email claim.
func OrderHistory(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, err := validators.RequireParam(chi.URLParam(r, "email"), "email")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		claimed := middleware.EmailFromContext(r.Context())
		if !strings.EqualFold(claimed, email) {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeForbidden, "order history belongs to another user"))
			return
		}

		history, err := svc.History(r.Context(), email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, history)
	}
}
