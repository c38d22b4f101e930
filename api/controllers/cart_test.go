package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/foodgo/food-go-backend/api/middleware"
	"github.com/foodgo/food-go-backend/internal/cart"
	"github.com/foodgo/food-go-backend/internal/devices"
	"github.com/foodgo/food-go-backend/internal/storage"
	"github.com/shopspring/decimal"
)

func newCartTestRouter(t *testing.T) (chi.Router, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	mgr, err := devices.NewManager(devices.ManagerParams{
		KV:    mem,
		Keyer: mem,
		Pricing: cart.Pricing{
			DeliveryFee:      decimal.RequireFromString("1.50"),
			Tax:              decimal.RequireFromString("0.30"),
			EstimatedMinutes: 15,
		},
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}

	r := chi.NewRouter()
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(middleware.Device(nil))
		r.Get("/", CartGet(mgr, nil))
		r.Delete("/", CartClear(mgr, nil))
		r.Post("/items", CartAddItem(mgr, nil))
		r.Patch("/items/{productId}", CartUpdateQuantity(mgr, nil))
		r.Delete("/items/{productId}", CartRemoveItem(mgr, nil))
	})
	return r, mem
}

type cartEnvelope struct {
	Data struct {
		Items  []cart.LineItem `json:"items"`
		Totals struct {
			Subtotal    string `json:"subtotal"`
			DeliveryFee string `json:"deliveryFee"`
			Tax         string `json:"tax"`
			Total       string `json:"total"`
			ItemCount   int    `json:"itemCount"`
		} `json:"totals"`
	} `json:"data"`
}

func doCart(t *testing.T, r chi.Router, method, path string, body any) (*httptest.ResponseRecorder, cartEnvelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("X-Device-Id", "device-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var envelope cartEnvelope
	if rec.Code < 300 {
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, envelope
}

func TestCartEndpointsWalkthrough(t *testing.T) {
	r, mem := newCartTestRouter(t)

	item := map[string]any{
		"id":       "burger-1",
		"name":     "Smash Burger",
		"imageUrl": "",
		"price":    "4.12",
		"quantity": 9,
	}

	rec, envelope := doCart(t, r, http.MethodPost, "/api/cart/items", item)
	if rec.Code != http.StatusOK {
		t.Fatalf("add item: %d %s", rec.Code, rec.Body.String())
	}
	if len(envelope.Data.Items) != 1 || envelope.Data.Items[0].Quantity != 1 {
		t.Fatalf("first add: %+v", envelope.Data.Items)
	}

	rec, envelope = doCart(t, r, http.MethodPost, "/api/cart/items", item)
	if rec.Code != http.StatusOK {
		t.Fatalf("add item again: %d", rec.Code)
	}
	if envelope.Data.Items[0].Quantity != 2 {
		t.Fatalf("second add quantity = %d", envelope.Data.Items[0].Quantity)
	}
	if envelope.Data.Totals.Total != "10.04" {
		t.Fatalf("total = %s", envelope.Data.Totals.Total)
	}

	rec, envelope = doCart(t, r, http.MethodPatch, "/api/cart/items/burger-1", map[string]int{"quantity": 4})
	if rec.Code != http.StatusOK {
		t.Fatalf("update quantity: %d", rec.Code)
	}
	if envelope.Data.Totals.Total != "18.28" {
		t.Fatalf("total after update = %s", envelope.Data.Totals.Total)
	}

	if _, err := mem.Get(context.Background(), mem.CartKey("anonymous")); err != nil {
		t.Fatalf("cart not persisted: %v", err)
	}

	rec, envelope = doCart(t, r, http.MethodDelete, "/api/cart", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear: %d", rec.Code)
	}
	if len(envelope.Data.Items) != 0 || envelope.Data.Totals.Total != "0" {
		t.Fatalf("cart not zeroed: %+v", envelope.Data)
	}
}

func TestCartEndpointsRequireDeviceHeader(t *testing.T) {
	r, _ := newCartTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without device header, got %d", rec.Code)
	}
}

func TestCartRemoveUnknownItemLeavesCartUntouched(t *testing.T) {
	r, _ := newCartTestRouter(t)

	item := map[string]any{
		"id":    "burger-1",
		"name":  "Smash Burger",
		"price": "4.12",
	}
	rec, _ := doCart(t, r, http.MethodPost, "/api/cart/items", item)
	if rec.Code != http.StatusOK {
		t.Fatalf("add item: %d", rec.Code)
	}

	rec, envelope := doCart(t, r, http.MethodDelete, "/api/cart/items/unknown", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("absent-id removal should no-op, got %d %s", rec.Code, rec.Body.String())
	}
	if len(envelope.Data.Items) != 1 || envelope.Data.Items[0].Quantity != 1 {
		t.Fatalf("absent-id removal changed the cart: %+v", envelope.Data.Items)
	}
	if envelope.Data.Totals.Total != "5.92" {
		t.Fatalf("total = %s", envelope.Data.Totals.Total)
	}
}

func TestCartUpdateQuantityUnknownItemIs404(t *testing.T) {
	r, _ := newCartTestRouter(t)

	rec, _ := doCart(t, r, http.MethodPatch, "/api/cart/items/unknown", map[string]int{"quantity": 2})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
