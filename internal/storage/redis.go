package storage

import (
	"context"

	"quizadmin/internal/cache"
)

// Redis stores the session through the fail-safe cache client. An
// unreachable redis reads as an empty session.
type Redis struct {
	cache *cache.Client
}

func NewRedis(c *cache.Client) *Redis {
	return &Redis{cache: c}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := r.cache.Get(ctx, key)
	return v, ok, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	r.cache.Set(ctx, key, value, 0)
	return nil
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	r.cache.Delete(ctx, key)
	return nil
}

func (r *Redis) Close() error {
	return r.cache.Close()
}
