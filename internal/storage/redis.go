package storage

import (
	"context"
	"errors"
	"fmt"

	redisclient "github.com/foodgo/food-go-backend/pkg/redis"
)

// Redis adapts the shared redis client to the KV/Keyer contracts.
type Redis struct {
	client *redisclient.Client
}

// NewRedis wraps the provided redis client.
func NewRedis(client *redisclient.Client) (*Redis, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0)
}

func (r *Redis) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...)
}

func (r *Redis) DeviceKey(deviceID, slot string) string {
	return r.client.DeviceKey(deviceID, slot)
}

func (r *Redis) CartKey(cartKey string) string {
	return r.client.CartKey(cartKey)
}
