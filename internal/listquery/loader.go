// Package listquery fetches a list for a path and query and keeps the last
// good result. Every fetch is tagged with a generation number; only the most
// recently started fetch may commit its outcome.
package listquery

import (
	"context"
	"reflect"
	"sync"

	"quizadmin/internal/model"
)

// Fetcher loads data for path and q.
type Fetcher[T any] func(ctx context.Context, path string, q model.ListQuery) (T, error)

// State is what a caller renders.
type State[T any] struct {
	Data    T
	Loading bool
	Error   string
}

// Option configures a Loader.
type Option[T any] func(*Loader[T])

// WithInitialData seeds Data before the first fetch.
func WithInitialData[T any](data T) Option[T] {
	return func(l *Loader[T]) { l.data = data }
}

// WithQuery sets the starting query.
func WithQuery[T any](q model.ListQuery) Option[T] {
	return func(l *Loader[T]) { l.query = q }
}

// Disabled creates the loader with automatic fetching switched off.
func Disabled[T any]() Option[T] {
	return func(l *Loader[T]) { l.enabled = false }
}

// Loader is safe for concurrent use.
type Loader[T any] struct {
	fetch Fetcher[T]

	mu      sync.Mutex
	path    string
	query   model.ListQuery
	enabled bool
	data    T
	loading bool
	errMsg  string
	issued  uint64
}

// New creates a loader. Nothing is fetched until Refetch or a change of
// path, query or enabled.
func New[T any](fetch Fetcher[T], path string, opts ...Option[T]) *Loader[T] {
	l := &Loader[T]{fetch: fetch, path: path, enabled: true}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetQuery replaces the query. A deep-equal query is a no-op; a different
// one triggers exactly one fetch while enabled.
func (l *Loader[T]) SetQuery(ctx context.Context, q model.ListQuery) error {
	l.mu.Lock()
	if reflect.DeepEqual(l.query, q) {
		l.mu.Unlock()
		return nil
	}
	l.query = q
	enabled := l.enabled
	l.mu.Unlock()

	if !enabled {
		return nil
	}
	return l.Refetch(ctx)
}

// SetPath points the loader at another resource path.
func (l *Loader[T]) SetPath(ctx context.Context, path string) error {
	l.mu.Lock()
	if l.path == path {
		l.mu.Unlock()
		return nil
	}
	l.path = path
	enabled := l.enabled
	l.mu.Unlock()

	if !enabled {
		return nil
	}
	return l.Refetch(ctx)
}

// SetEnabled toggles automatic fetching. Turning it on fetches.
func (l *Loader[T]) SetEnabled(ctx context.Context, enabled bool) error {
	l.mu.Lock()
	was := l.enabled
	l.enabled = enabled
	l.mu.Unlock()

	if enabled && !was {
		return l.Refetch(ctx)
	}
	return nil
}

// Refetch fetches with the current path and query whether or not they
// changed. On failure the previous data is kept and the message recorded.
// A fetch overtaken by a newer one returns its own error but commits nothing.
func (l *Loader[T]) Refetch(ctx context.Context) error {
	l.mu.Lock()
	l.issued++
	gen := l.issued
	path, q := l.path, l.query
	l.loading = true
	l.errMsg = ""
	l.mu.Unlock()

	data, err := l.fetch(ctx, path, q)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.issued {
		return err
	}
	l.loading = false
	if err != nil {
		l.errMsg = err.Error()
		return err
	}
	l.data = data
	return nil
}

// SetData applies a local patch without a network call.
func (l *Loader[T]) SetData(patch func(T) T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.data = patch(l.data)
}

// SetError records a message produced outside a fetch, such as a failed delete.
func (l *Loader[T]) SetError(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errMsg = msg
}

// Snapshot returns the current state.
func (l *Loader[T]) Snapshot() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return State[T]{Data: l.data, Loading: l.loading, Error: l.errMsg}
}
