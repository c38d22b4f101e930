package session

import (
	"context"
	"testing"

	"github.com/foodgo/food-go-backend/internal/storage"
	"github.com/google/uuid"
)

func newTestStore(t *testing.T, mem *storage.Memory, opts ...Option) *Store {
	t.Helper()
	store, err := NewStore(mem, mem, "device-1", nil, opts...)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func testIdentity() Identity {
	return Identity{
		UserID:   uuid.MustParse("6f1a2b3c-4d5e-6f70-8192-a3b4c5d6e7f8"),
		FullName: "Ada Vance",
		Email:    "ada@example.com",
	}
}

func TestNewStore_Validation(t *testing.T) {
	mem := storage.NewMemory()

	if _, err := NewStore(nil, mem, "device-1", nil); err == nil {
		t.Fatal("expected error for nil storage")
	}
	if _, err := NewStore(mem, nil, "device-1", nil); err == nil {
		t.Fatal("expected error for nil keyer")
	}
	if _, err := NewStore(mem, mem, "  ", nil); err == nil {
		t.Fatal("expected error for blank device id")
	}
}

func TestStore_SignInPersistsAndNotifies(t *testing.T) {
	mem := storage.NewMemory()
	store := newTestStore(t, mem)

	var gotIdentity Identity
	var gotSignedIn bool
	store.Subscribe(func(identity Identity, signedIn bool) {
		gotIdentity = identity
		gotSignedIn = signedIn
	})

	identity := testIdentity()
	store.SignIn(context.Background(), identity)

	if !gotSignedIn || gotIdentity.Email != identity.Email {
		t.Fatalf("subscriber saw identity=%+v signedIn=%v", gotIdentity, gotSignedIn)
	}
	current, ok := store.Current()
	if !ok || current.UserID != identity.UserID {
		t.Fatalf("Current() = %+v, %v", current, ok)
	}
	if _, err := mem.Get(context.Background(), mem.DeviceKey("device-1", "user")); err != nil {
		t.Fatalf("identity not persisted: %v", err)
	}
	flag, err := mem.Get(context.Background(), mem.DeviceKey("device-1", "isLoggedIn"))
	if err != nil || flag != "true" {
		t.Fatalf("signed-in flag = %q, %v", flag, err)
	}
}

func TestStore_SignOutRemovesPersistedState(t *testing.T) {
	mem := storage.NewMemory()
	store := newTestStore(t, mem)

	store.SignIn(context.Background(), testIdentity())
	store.SignOut(context.Background())

	if store.SignedIn() {
		t.Fatal("store still signed in after SignOut")
	}
	if _, err := mem.Get(context.Background(), mem.DeviceKey("device-1", "user")); err != storage.ErrNotFound {
		t.Fatalf("identity entry survived sign-out: %v", err)
	}
	if _, err := mem.Get(context.Background(), mem.DeviceKey("device-1", "isLoggedIn")); err != storage.ErrNotFound {
		t.Fatalf("flag entry survived sign-out: %v", err)
	}
	if got := store.CartKey(); got != AnonymousCartKey {
		t.Fatalf("CartKey() = %q, want %q", got, AnonymousCartKey)
	}
}

func TestStore_RestoreRehydratesIdentity(t *testing.T) {
	mem := storage.NewMemory()
	first := newTestStore(t, mem)
	identity := testIdentity()
	first.SignIn(context.Background(), identity)

	second := newTestStore(t, mem)
	second.Restore(context.Background())

	current, ok := second.Current()
	if !ok || current.Email != identity.Email {
		t.Fatalf("restored identity = %+v, %v", current, ok)
	}
	if got := second.CartKey(); got != identity.UserID.String() {
		t.Fatalf("CartKey() = %q, want user id", got)
	}
}

func TestStore_RestoreToleratesMissingAndCorruptEntries(t *testing.T) {
	mem := storage.NewMemory()

	store := newTestStore(t, mem)
	store.Restore(context.Background())
	if store.SignedIn() {
		t.Fatal("restore of empty storage signed in")
	}

	if err := mem.Set(context.Background(), mem.DeviceKey("device-1", "user"), "{not json"); err != nil {
		t.Fatalf("seed corrupt entry: %v", err)
	}
	store = newTestStore(t, mem)
	store.Restore(context.Background())
	if store.SignedIn() {
		t.Fatal("restore of corrupt entry signed in")
	}
}

type failingKV struct {
	*storage.Memory
}

func (f failingKV) Set(ctx context.Context, key, value string) error {
	return context.DeadlineExceeded
}

func TestStore_SignInSurvivesPersistFailure(t *testing.T) {
	mem := storage.NewMemory()
	var hookErr error
	store, err := NewStore(failingKV{mem}, mem, "device-1", nil, WithPersistHook(func(e error) {
		hookErr = e
	}))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	store.SignIn(context.Background(), testIdentity())

	if !store.SignedIn() {
		t.Fatal("in-memory state rolled back on persist failure")
	}
	if hookErr == nil {
		t.Fatal("persist hook not told about the failure")
	}
}
