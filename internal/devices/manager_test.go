package devices

import (
	"context"
	"testing"

	"github.com/foodgo/food-go-backend/internal/cart"
	"github.com/foodgo/food-go-backend/internal/session"
	"github.com/foodgo/food-go-backend/internal/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newTestManager(t *testing.T, mem *storage.Memory) *Manager {
	t.Helper()
	mgr, err := NewManager(ManagerParams{
		KV:    mem,
		Keyer: mem,
		Pricing: cart.Pricing{
			DeliveryFee:      decimal.RequireFromString("1.50"),
			Tax:              decimal.RequireFromString("0.30"),
			EstimatedMinutes: 15,
		},
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return mgr
}

func TestManagerReturnsSameDeviceStores(t *testing.T) {
	mgr := newTestManager(t, storage.NewMemory())
	ctx := context.Background()

	first, err := mgr.ForDevice(ctx, "device-1")
	if err != nil {
		t.Fatalf("ForDevice: %v", err)
	}
	second, err := mgr.ForDevice(ctx, "device-1")
	if err != nil {
		t.Fatalf("ForDevice: %v", err)
	}
	if first != second {
		t.Fatal("same device id produced different store pairs")
	}

	other, err := mgr.ForDevice(ctx, "device-2")
	if err != nil {
		t.Fatalf("ForDevice: %v", err)
	}
	if other == first {
		t.Fatal("different devices share a store pair")
	}

	if _, err := mgr.ForDevice(ctx, "  "); err == nil {
		t.Fatal("blank device id accepted")
	}
}

func TestManagerActiveCartFollowsSession(t *testing.T) {
	mem := storage.NewMemory()
	mgr := newTestManager(t, mem)
	ctx := context.Background()

	device, err := mgr.ForDevice(ctx, "device-1")
	if err != nil {
		t.Fatalf("ForDevice: %v", err)
	}

	anonCart, err := device.ActiveCart(ctx)
	if err != nil {
		t.Fatalf("ActiveCart: %v", err)
	}
	if anonCart.Key() != session.AnonymousCartKey {
		t.Fatalf("anonymous cart key = %q", anonCart.Key())
	}

	userID := uuid.New()
	device.Session.SignIn(ctx, session.Identity{UserID: userID, Email: "ada@example.com"})

	userCart, err := device.ActiveCart(ctx)
	if err != nil {
		t.Fatalf("ActiveCart: %v", err)
	}
	if userCart.Key() != userID.String() {
		t.Fatalf("signed-in cart key = %q", userCart.Key())
	}
	if userCart == anonCart {
		t.Fatal("signed-in cart is the anonymous cart")
	}

	device.Session.SignOut(ctx)
	backToAnon, err := device.ActiveCart(ctx)
	if err != nil {
		t.Fatalf("ActiveCart: %v", err)
	}
	if backToAnon != anonCart {
		t.Fatal("sign-out did not switch back to the anonymous cart")
	}
}

func TestManagerRestoresSessionOnFirstUse(t *testing.T) {
	mem := storage.NewMemory()
	mgr := newTestManager(t, mem)
	ctx := context.Background()

	device, err := mgr.ForDevice(ctx, "device-1")
	if err != nil {
		t.Fatalf("ForDevice: %v", err)
	}
	device.Session.SignIn(ctx, session.Identity{UserID: uuid.New(), Email: "ada@example.com"})

	fresh := newTestManager(t, mem)
	restored, err := fresh.ForDevice(ctx, "device-1")
	if err != nil {
		t.Fatalf("ForDevice: %v", err)
	}
	if !restored.Session.SignedIn() {
		t.Fatal("session not restored from storage")
	}
}
