package cart

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/foodgo/food-go-backend/internal/storage"
	"github.com/foodgo/food-go-backend/pkg/logger"
)

// Store owns one cart keyspace entry, either an identity's or the anonymous
// one. In-memory state is authoritative: every mutation applies to memory
// first, then a durable write is attempted. A failed write is logged and
// reported to the persist hook but never undoes the mutation. The storage
// entry is removed only by an explicit Clear.
type Store struct {
	mu      sync.Mutex
	kv      storage.KV
	keys    storage.Keyer
	cartKey string
	pricing Pricing
	logg    *logger.Logger

	snap        Snapshot
	subscribers []func(Snapshot)
	persistHook func(error)
}

// Option tweaks store construction.
type Option func(*Store)

// WithPersistHook registers a callback observing every persistence outcome.
// The hook receives nil on success.
func WithPersistHook(fn func(error)) Option {
	return func(s *Store) {
		s.persistHook = fn
	}
}

// NewStore builds a cart store bound to one cart key.
func NewStore(kv storage.KV, keys storage.Keyer, cartKey string, pricing Pricing, logg *logger.Logger, opts ...Option) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("storage is required")
	}
	if keys == nil {
		return nil, fmt.Errorf("keyer is required")
	}
	if strings.TrimSpace(cartKey) == "" {
		return nil, fmt.Errorf("cart key is required")
	}
	store := &Store{
		kv:      kv,
		keys:    keys,
		cartKey: cartKey,
		pricing: pricing,
		logg:    logg,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// Key returns the cart key this store is bound to.
func (s *Store) Key() string {
	return s.cartKey
}

// Load rehydrates the cart from durable storage. A missing entry means an
// empty cart; a corrupt one is logged and treated the same. Load never fails.
func (s *Store) Load(ctx context.Context) {
	raw, err := s.kv.Get(ctx, s.storageKey())
	if err != nil {
		if !stderrors.Is(err, storage.ErrNotFound) && s.logg != nil {
			s.logg.Warn(s.logg.WithCartKey(ctx, s.cartKey), "cart load read failed: "+err.Error())
		}
		return
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithCartKey(ctx, s.cartKey), "stored cart is corrupt, starting empty")
		}
		return
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	s.notify()
}

// Dispatch runs one command through the transition function and persists the
// result. The returned snapshot is the post-command state; a command error
// leaves both memory and storage untouched.
func (s *Store) Dispatch(ctx context.Context, cmd Command) (Snapshot, error) {
	s.mu.Lock()
	next, err := Apply(s.snap, cmd, s.pricing)
	if err != nil {
		s.mu.Unlock()
		return Snapshot{}, err
	}
	s.snap = next
	s.mu.Unlock()
	s.notify()

	if _, cleared := cmd.(Clear); cleared {
		s.persistDelete(ctx)
	} else {
		s.persistWrite(ctx, next)
	}
	return next, nil
}

// AddItem adds a product, incrementing an existing entry's quantity by one.
func (s *Store) AddItem(ctx context.Context, item LineItem) (Snapshot, error) {
	return s.Dispatch(ctx, AddItem{Item: item})
}

// RemoveItem drops a product's entry entirely.
func (s *Store) RemoveItem(ctx context.Context, productID string) (Snapshot, error) {
	return s.Dispatch(ctx, RemoveItem{ProductID: productID})
}

// UpdateQuantity sets a product's quantity; zero removes the entry.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) (Snapshot, error) {
	return s.Dispatch(ctx, UpdateQuantity{ProductID: productID, Quantity: quantity})
}

// Clear empties the cart and removes its storage entry.
func (s *Store) Clear(ctx context.Context) (Snapshot, error) {
	return s.Dispatch(ctx, Clear{})
}

// SetDeliveryFee overrides the stored fee.
func (s *Store) SetDeliveryFee(ctx context.Context, fee string) (Snapshot, error) {
	return s.Dispatch(ctx, SetDeliveryFee{Fee: fee})
}

// Snapshot returns a copy of the current cart state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.clone()
}

// Totals derives the current money view.
func (s *Store) Totals() Totals {
	return ComputeTotals(s.Snapshot(), s.pricing)
}

// Subscribe registers fn to run after every state change with the new snapshot.
func (s *Store) Subscribe(fn func(Snapshot)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := slices.Clone(s.subscribers)
	snap := s.snap.clone()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (s *Store) persistWrite(ctx context.Context, snap Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		s.persistFailed(ctx, "encode cart", err)
		return
	}
	if err := s.kv.Set(ctx, s.storageKey(), string(payload)); err != nil {
		s.persistFailed(ctx, "persist cart", err)
		return
	}
	if s.persistHook != nil {
		s.persistHook(nil)
	}
}

func (s *Store) persistDelete(ctx context.Context) {
	if err := s.kv.Del(ctx, s.storageKey()); err != nil {
		s.persistFailed(ctx, "remove persisted cart", err)
		return
	}
	if s.persistHook != nil {
		s.persistHook(nil)
	}
}

func (s *Store) persistFailed(ctx context.Context, step string, err error) {
	if s.logg != nil {
		s.logg.Error(s.logg.WithCartKey(ctx, s.cartKey), "cart store: "+step, err)
	}
	if s.persistHook != nil {
		s.persistHook(err)
	}
}

func (s *Store) storageKey() string {
	return s.keys.CartKey(s.cartKey)
}
