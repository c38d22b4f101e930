package controllers

import (
	"net/http"

	"github.com/foodgo/food-go-backend/api/middleware"
	"github.com/foodgo/food-go-backend/api/responses"
	"github.com/foodgo/food-go-backend/api/validators"
	"github.com/foodgo/food-go-backend/internal/auth"
	"github.com/foodgo/food-go-backend/internal/devices"
	"github.com/foodgo/food-go-backend/internal/session"
	pkgerrors "github.com/foodgo/food-go-backend/pkg/errors"
	"github.com/foodgo/food-go-backend/pkg/logger"
)

// AuthSignIn wires the sign-in endpoint into the HTTP layer. On success the
// caller's device session store picks up the identity, so a later restore on
// the same device comes back signed in.
func AuthSignIn(svc auth.Service, deviceMgr *devices.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.SignInRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SignIn(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if deviceMgr != nil {
			if deviceID := middleware.DeviceIDFromContext(r.Context()); deviceID != "" {
				device, err := deviceMgr.ForDevice(r.Context(), deviceID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "device stores"))
					return
				}
				device.Session.SignIn(r.Context(), identityFromUser(result))
			}
		}

		responses.WriteSuccess(w, result)
	}
}

func identityFromUser(result *auth.SignInResponse) session.Identity {
	identity := session.Identity{
		UserID:   result.User.ID,
		FullName: result.User.FullName,
		Email:    result.User.Email,
	}
	if result.User.ImageURL != nil {
		identity.ImageURL = *result.User.ImageURL
	}
	if result.User.PhoneNumber != nil {
		identity.PhoneNumber = *result.User.PhoneNumber
	}
	if result.User.DeliveryAddress != nil {
		identity.DeliveryAddress = *result.User.DeliveryAddress
	}
	return identity
}

// AuthSignUp creates an account and signs it in so the client gets a token in
// one round trip.
func AuthSignUp(registerSvc auth.RegisterService, signInSvc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if registerSvc == nil || signInSvc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.SignUpRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := registerSvc.SignUp(r.Context(), body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := signInSvc.SignIn(r.Context(), auth.SignInRequest{
			Email:    body.Email,
			Password: body.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AuthForgotPassword starts the reset flow.
func AuthForgotPassword(svc auth.PasswordResetService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.ForgotPasswordRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ForgotPassword(r.Context(), body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "code sent"})
	}
}

// AuthRestorePassword checks a reset code without consuming it.
func AuthRestorePassword(svc auth.PasswordResetService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.RestorePasswordRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RestorePassword(r.Context(), body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "code valid"})
	}
}

// AuthResetPassword redeems a reset code for a new password.
func AuthResetPassword(svc auth.PasswordResetService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.ResetPasswordRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ResetPassword(r.Context(), body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "password updated"})
	}
}
