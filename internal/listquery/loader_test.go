package listquery

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizadmin/internal/model"
)

type recorder struct {
	mu      sync.Mutex
	queries []model.ListQuery
	paths   []string
	err     error
}

func (r *recorder) fetch(_ context.Context, path string, q model.ListQuery) (model.Page[string], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
	r.paths = append(r.paths, path)
	if r.err != nil {
		return model.Page[string]{}, r.err
	}
	return model.Page[string]{Items: []string{path + "?" + q.Search}, Total: 1}, nil
}

func TestSearchChangeFetchesOnce(t *testing.T) {
	rec := &recorder{}
	ctx := context.Background()
	l := New(rec.fetch, "/nodes", WithQuery[model.Page[string]](model.ListQuery{Page: 1, Limit: 10, Search: "a"}))

	require.NoError(t, l.SetQuery(ctx, model.ListQuery{Page: 1, Limit: 10, Search: "a"}))
	assert.Empty(t, rec.queries, "equal query must not fetch")

	require.NoError(t, l.SetQuery(ctx, model.ListQuery{Page: 1, Limit: 10, Search: "b"}))
	require.Len(t, rec.queries, 1)
	assert.Equal(t, "b", rec.queries[0].Search)

	st := l.Snapshot()
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
	assert.Equal(t, []string{"/nodes?b"}, st.Data.Items)
}

func TestSetDataIsImmediate(t *testing.T) {
	rec := &recorder{}
	l := New(rec.fetch, "/nodes", WithInitialData(model.Page[string]{Items: []string{"x", "y"}, Total: 2}))

	l.SetData(func(p model.Page[string]) model.Page[string] {
		return model.Page[string]{Items: p.Items[1:], Total: p.Total - 1}
	})

	assert.Equal(t, model.Page[string]{Items: []string{"y"}, Total: 1}, l.Snapshot().Data)
	assert.Empty(t, rec.queries)
}

func TestFailureKeepsData(t *testing.T) {
	rec := &recorder{}
	ctx := context.Background()
	l := New(rec.fetch, "/nodes")
	require.NoError(t, l.Refetch(ctx))

	rec.err = errors.New("HTTP 500 Internal Server Error for GET /nodes")
	err := l.Refetch(ctx)
	require.Error(t, err)

	st := l.Snapshot()
	assert.Equal(t, "HTTP 500 Internal Server Error for GET /nodes", st.Error)
	assert.Equal(t, []string{"/nodes?"}, st.Data.Items)

	rec.err = nil
	require.NoError(t, l.Refetch(ctx))
	assert.Empty(t, l.Snapshot().Error)
}

func TestRefetchIgnoresQueryEquality(t *testing.T) {
	rec := &recorder{}
	ctx := context.Background()
	l := New(rec.fetch, "/nodes")
	require.NoError(t, l.Refetch(ctx))
	require.NoError(t, l.Refetch(ctx))
	assert.Len(t, rec.queries, 2)
}

func TestDisabledAndPath(t *testing.T) {
	rec := &recorder{}
	ctx := context.Background()
	l := New(rec.fetch, "/nodes", Disabled[model.Page[string]]())

	require.NoError(t, l.SetQuery(ctx, model.ListQuery{Search: "q"}))
	require.NoError(t, l.SetPath(ctx, "/answers"))
	assert.Empty(t, rec.queries)

	require.NoError(t, l.SetEnabled(ctx, true))
	require.Len(t, rec.paths, 1)
	assert.Equal(t, "/answers", rec.paths[0])

	require.NoError(t, l.SetPath(ctx, "/questions"))
	assert.Equal(t, []string{"/answers", "/questions"}, rec.paths)
}

func TestSupersededResponseIsDropped(t *testing.T) {
	release := map[string]chan struct{}{"slow": make(chan struct{}), "fast": make(chan struct{})}
	started := make(chan string, 2)
	fetch := func(_ context.Context, _ string, q model.ListQuery) (model.Page[string], error) {
		started <- q.Search
		<-release[q.Search]
		return model.Page[string]{Items: []string{q.Search}, Total: 1}, nil
	}
	ctx := context.Background()
	l := New(fetch, "/nodes")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = l.SetQuery(ctx, model.ListQuery{Search: "slow"})
	}()
	require.Equal(t, "slow", <-started)

	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = l.SetQuery(ctx, model.ListQuery{Search: "fast"})
	}()
	require.Equal(t, "fast", <-started)

	close(release["fast"])
	require.Eventually(t, func() bool { return !l.Snapshot().Loading }, time.Second, time.Millisecond)
	close(release["slow"])
	wg.Wait()

	st := l.Snapshot()
	assert.Equal(t, []string{"fast"}, st.Data.Items)
	assert.False(t, st.Loading)
}
