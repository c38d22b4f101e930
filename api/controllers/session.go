package controllers

import (
	"net/http"

	"github.com/foodgo/food-go-backend/api/middleware"
	"github.com/foodgo/food-go-backend/api/responses"
	"github.com/foodgo/food-go-backend/internal/devices"
	"github.com/foodgo/food-go-backend/internal/session"
	pkgerrors "github.com/foodgo/food-go-backend/pkg/errors"
	"github.com/foodgo/food-go-backend/pkg/logger"
)

type sessionPayload struct {
	SignedIn bool              `json:"signedIn"`
	User     *session.Identity `json:"user,omitempty"`
	CartKey  string            `json:"cartKey"`
}

// SessionGet reports the device's restored session state: the identity when
// one is persisted, signed-out otherwise.
func SessionGet(deviceMgr *devices.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		device, err := deviceForRequest(deviceMgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := sessionPayload{CartKey: device.Session.CartKey()}
		if identity, ok := device.Session.Current(); ok {
			payload.SignedIn = true
			payload.User = &identity
		}
		responses.WriteSuccess(w, payload)
	}
}

// SessionSignOut drops the device's identity and clears that identity's cart.
func SessionSignOut(deviceMgr *devices.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		device, err := deviceForRequest(deviceMgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// Clear the signed-in identity's cart before the key flips back to
		// anonymous.
		if device.Session.SignedIn() {
			store, err := device.ActiveCart(r.Context())
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cart store"))
				return
			}
			if _, err := store.Clear(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		device.Session.SignOut(r.Context())
		responses.WriteSuccess(w, sessionPayload{CartKey: device.Session.CartKey()})
	}
}

func deviceForRequest(deviceMgr *devices.Manager, r *http.Request) (*devices.Device, error) {
	if deviceMgr == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "device stores unavailable")
	}
	deviceID := middleware.DeviceIDFromContext(r.Context())
	if deviceID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing device id header")
	}
	device, err := deviceMgr.ForDevice(r.Context(), deviceID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "device stores")
	}
	return device, nil
}
