package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foodgo/food-go-backend/api/middleware"
	"github.com/foodgo/food-go-backend/api/responses"
	"github.com/foodgo/food-go-backend/api/validators"
	"github.com/foodgo/food-go-backend/internal/users"
	pkgerrors "github.com/foodgo/food-go-backend/pkg/errors"
	"github.com/foodgo/food-go-backend/pkg/logger"
	"github.com/google/uuid"
)

// ProfileGet returns one user's profile. Callers can only read their own.
func ProfileGet(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ownProfileID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.GetProfile(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// ProfileUpdate patches the editable profile fields.
func ProfileUpdate(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ownProfileID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body users.UpdateProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.UpdateProfile(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// ownProfileID parses the path id and checks it against the token subject.
func ownProfileID(r *http.Request) (uuid.UUID, error) {
	id, err := validators.ParseUUIDParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		return uuid.Nil, err
	}
	if middleware.UserIDFromContext(r.Context()) != id.String() {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "profile belongs to another user")
	}
	return id, nil
}
