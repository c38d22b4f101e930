package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/foodgo/food-go-backend/internal/storage"
	"github.com/foodgo/food-go-backend/pkg/logger"
)

// Storage slot names within a device's keyspace. The identity and the
// signed-in flag live under fixed keys, one pair per device.
const (
	slotIdentity = "user"
	slotSignedIn = "isLoggedIn"
)

// Store is the single source of truth for "who is signed in" on one device.
// It has two states: signed out (no identity) and signed in. Mutations apply
// in memory first; the durable write that follows is best-effort and its
// failure never rolls the in-memory state back.
type Store struct {
	mu       sync.Mutex
	kv       storage.KV
	keys     storage.Keyer
	deviceID string
	logg     *logger.Logger

	identity    *Identity
	subscribers []func(Identity, bool)
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

// NewStore builds a session store for the given device keyspace.
func NewStore(kv storage.KV, keys storage.Keyer, deviceID string, logg *logger.Logger, opts ...Option) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("storage is required")
	}
	if keys == nil {
		return nil, fmt.Errorf("keyer is required")
	}
	if strings.TrimSpace(deviceID) == "" {
		return nil, fmt.Errorf("device id is required")
	}
	store := &Store{
		kv:       kv,
		keys:     keys,
		deviceID: deviceID,
		logg:     logg,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// Restore rehydrates the store from durable storage. A missing or corrupt
// entry leaves the store signed out; Restore never fails.
func (s *Store) Restore(ctx context.Context) {
	raw, err := s.kv.Get(ctx, s.identityKey())
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) && s.logg != nil {
			s.logg.Warn(ctx, "session restore read failed: "+err.Error())
		}
		return
	}

	var identity Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "stored identity is corrupt, staying signed out")
		}
		return
	}

	s.mu.Lock()
	s.identity = &identity
	s.mu.Unlock()
	s.notify()
}

// SignIn sets the current identity and persists it. Storage failures are
// logged and reported to the persist hook, never to the caller.
func (s *Store) SignIn(ctx context.Context, identity Identity) {
	s.mu.Lock()
	copied := identity
	s.identity = &copied
	s.mu.Unlock()
	s.notify()

	payload, err := json.Marshal(identity)
	if err != nil {
		s.persistFailed(ctx, "encode identity", err)
		return
	}
	if err := s.kv.Set(ctx, s.identityKey(), string(payload)); err != nil {
		s.persistFailed(ctx, "persist identity", err)
		return
	}
	if err := s.kv.Set(ctx, s.signedInKey(), "true"); err != nil {
		s.persistFailed(ctx, "persist signed-in flag", err)
		return
	}
	if s.persistHook != nil {
		s.persistHook(nil)
	}
}

// SignOut clears the current identity and removes the persisted state. The
// caller is responsible for clearing the identity's cart afterwards.
func (s *Store) SignOut(ctx context.Context) {
	s.mu.Lock()
	s.identity = nil
	s.mu.Unlock()
	s.notify()

	if err := s.kv.Del(ctx, s.identityKey(), s.signedInKey()); err != nil {
		s.persistFailed(ctx, "remove persisted session", err)
		return
	}
	if s.persistHook != nil {
		s.persistHook(nil)
	}
}

// Current returns the signed-in identity, if any.
func (s *Store) Current() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// SignedIn reports whether an identity is current.
func (s *Store) SignedIn() bool {
	_, ok := s.Current()
	return ok
}

// CartKey names the cart keyspace entry for the current identity, falling back
// to the anonymous key while signed out.
func (s *Store) CartKey() string {
	if identity, ok := s.Current(); ok {
		return identity.CartKey()
	}
	return AnonymousCartKey
}

// AnonymousCartKey is the fixed cart key used while no identity is current.
const AnonymousCartKey = "anonymous"

// Subscribe registers fn to run after every state change with the new state.
func (s *Store) Subscribe(fn func(identity Identity, signedIn bool)) {
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
	var identity Identity
	signedIn := s.identity != nil
	if signedIn {
		identity = *s.identity
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(identity, signedIn)
	}
}

func (s *Store) persistFailed(ctx context.Context, step string, err error) {
	if s.logg != nil {
		s.logg.Error(ctx, "session store: "+step, err)
	}
	if s.persistHook != nil {
		s.persistHook(err)
	}
}

func (s *Store) identityKey() string {
	return s.keys.DeviceKey(s.deviceID, slotIdentity)
}

func (s *Store) signedInKey() string {
	return s.keys.DeviceKey(s.deviceID, slotSignedIn)
}
