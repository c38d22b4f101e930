package devices

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/foodgo/food-go-backend/internal/cart"
	"github.com/foodgo/food-go-backend/internal/session"
	"github.com/foodgo/food-go-backend/internal/storage"
	"github.com/foodgo/food-go-backend/pkg/logger"
)

// Manager hands out the per-device store pair. Each device gets one session
// store plus a cart store per cart key it touches; both are materialized on
// first use and rehydrated from durable storage.
type Manager struct {
	kv      storage.KV
	keys    storage.Keyer
	pricing cart.Pricing
	logg    *logger.Logger

	mu      sync.Mutex
	devices map[string]*Device
}

// Device bundles the stores backing one mobile install.
type Device struct {
	ID      string
	Session *session.Store

	manager *Manager
	mu      sync.Mutex
	carts   map[string]*cart.Store
}

// ManagerParams bundles the dependencies required to build a manager.
type ManagerParams struct {
	KV      storage.KV
	Keyer   storage.Keyer
	Pricing cart.Pricing
	Logger  *logger.Logger
}

// NewManager builds a device store manager.
func NewManager(params ManagerParams) (*Manager, error) {
	if params.KV == nil {
		return nil, fmt.Errorf("storage is required")
	}
	if params.Keyer == nil {
		return nil, fmt.Errorf("keyer is required")
	}
	return &Manager{
		kv:      params.KV,
		keys:    params.Keyer,
		pricing: params.Pricing,
		logg:    params.Logger,
		devices: make(map[string]*Device),
	}, nil
}

// ForDevice returns the device's stores, restoring the session on first use.
func (m *Manager) ForDevice(ctx context.Context, deviceID string) (*Device, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, fmt.Errorf("device id is required")
	}

	m.mu.Lock()
	if device, ok := m.devices[deviceID]; ok {
		m.mu.Unlock()
		return device, nil
	}
	m.mu.Unlock()

	// Build outside the lock; session restore hits storage.
	sessionStore, err := session.NewStore(m.kv, m.keys, deviceID, m.logg)
	if err != nil {
		return nil, err
	}
	sessionStore.Restore(ctx)

	device := &Device{
		ID:      deviceID,
		Session: sessionStore,
		manager: m,
		carts:   make(map[string]*cart.Store),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.devices[deviceID]; ok {
		return existing, nil
	}
	m.devices[deviceID] = device
	return device, nil
}

// ActiveCart returns the cart store for the device's current cart key: the
// signed-in identity's cart, or the anonymous one. The store is loaded from
// durable storage the first time the key is seen.
func (d *Device) ActiveCart(ctx context.Context) (*cart.Store, error) {
	return d.CartFor(ctx, d.Session.CartKey())
}

// CartFor returns the cart store bound to an explicit cart key.
func (d *Device) CartFor(ctx context.Context, cartKey string) (*cart.Store, error) {
	d.mu.Lock()
	if store, ok := d.carts[cartKey]; ok {
		d.mu.Unlock()
		return store, nil
	}
	d.mu.Unlock()

	store, err := cart.NewStore(d.manager.kv, d.manager.keys, cartKey, d.manager.pricing, d.manager.logg)
	if err != nil {
		return nil, err
	}
	store.Load(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if existing, ok := d.carts[cartKey]; ok {
		return existing, nil
	}
	d.carts[cartKey] = store
	return store, nil
}
