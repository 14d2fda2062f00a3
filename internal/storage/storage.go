// Package storage persists the client session between runs: the raw token
// and the JSON-encoded user under two string keys.
package storage

import (
	"context"
	"fmt"
	"sync"

	"quizadmin/internal/cache"
	"quizadmin/internal/config"
	"quizadmin/internal/db"
)

// Keys used by the session store.
const (
	KeyToken = "auth_token"
	KeyUser  = "auth_user"
)

// Storage is a durable string key/value store.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Open picks the driver named by cfg.SessionStore.
func Open(cfg *config.Config) (Storage, error) {
	switch cfg.SessionStore {
	case config.SessionStoreMemory:
		return NewMemory(), nil
	case config.SessionStoreBolt:
		return NewBolt(cfg.SessionPath)
	case config.SessionStoreRedis:
		return NewRedis(cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)), nil
	case config.SessionStoreMySQL:
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(gormDB); err != nil {
			return nil, err
		}
		return NewSQL(gormDB), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
}

// Memory keeps values for the life of the process.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *Memory) Close() error { return nil }
