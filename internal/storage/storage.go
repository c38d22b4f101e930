package storage

import (
	"context"
	"errors"
)

// ErrNotFound reports an absent key. Absence means "no data yet", not a failure.
var ErrNotFound = errors.New("storage: key not found")

// KV is the durable device storage contract: string-serialized JSON values
// addressed by opaque keys.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}

// Keyer builds the two keyspaces the stores persist into: device-scoped
// identity slots and per-identity cart snapshots.
type Keyer interface {
	DeviceKey(deviceID, slot string) string
	CartKey(cartKey string) string
}
