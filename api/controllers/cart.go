package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foodgo/food-go-backend/api/responses"
	"github.com/foodgo/food-go-backend/api/validators"
	"github.com/foodgo/food-go-backend/internal/cart"
	"github.com/foodgo/food-go-backend/internal/devices"
	"github.com/foodgo/food-go-backend/internal/orders"
	pkgerrors "github.com/foodgo/food-go-backend/pkg/errors"
	"github.com/foodgo/food-go-backend/pkg/logger"
)

type cartPayload struct {
	Items  []cart.LineItem `json:"items"`
	Totals cart.Totals     `json:"totals"`
}

func cartPayloadFor(store *cart.Store) cartPayload {
	snap := store.Snapshot()
	items := snap.Items
	if items == nil {
		items = []cart.LineItem{}
	}
	return cartPayload{Items: items, Totals: store.Totals()}
}

// CartGet returns the device's active cart with derived totals.
func CartGet(deviceMgr *devices.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := activeCart(deviceMgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartPayloadFor(store))
	}
}

// CartAddItem adds a product to the active cart. An item already in the cart
// gains exactly one unit, whatever quantity the body carries.
func CartAddItem(deviceMgr *devices.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := activeCart(deviceMgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body cart.LineItem
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := store.AddItem(r.Context(), body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartPayloadFor(store))
	}
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartUpdateQuantity sets an item's quantity outright; zero removes it.
func CartUpdateQuantity(deviceMgr *devices.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := activeCart(deviceMgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.RequireParam(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := store.UpdateQuantity(r.Context(), productID, body.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartPayloadFor(store))
	}
}

// CartRemoveItem drops an item's whole entry.
func CartRemoveItem(deviceMgr *devices.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := activeCart(deviceMgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.RequireParam(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := store.RemoveItem(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartPayloadFor(store))
	}
}

// CartClear empties the active cart and removes its storage entry.
func CartClear(deviceMgr *devices.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := activeCart(deviceMgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := store.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartPayloadFor(store))
	}
}

// CartCheckout turns the signed-in identity's cart into a placed order and
// clears the cart.
func CartCheckout(deviceMgr *devices.Manager, orderSvc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		device, err := deviceForRequest(deviceMgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		identity, ok := device.Session.Current()
		if !ok {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to place an order"))
			return
		}

		store, err := device.ActiveCart(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cart store"))
			return
		}

		order, err := orderSvc.PlaceOrder(r.Context(), orders.PlaceOrderParams{
			UserID:   identity.UserID,
			Email:    identity.Email,
			Snapshot: store.Snapshot(),
			Totals:   store.Totals(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := store.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func activeCart(deviceMgr *devices.Manager, r *http.Request) (*cart.Store, error) {
	device, err := deviceForRequest(deviceMgr, r)
	if err != nil {
		return nil, err
	}
	store, err := device.ActiveCart(r.Context())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cart store")
	}
	return store, nil
}
