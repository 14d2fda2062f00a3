package listpage

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	apperrors "quizadmin/internal/errors"
	"quizadmin/internal/listquery"
	"quizadmin/internal/model"
)

// LocalConfig describes a list the backend returns in full. Filtering,
// sorting and paging happen in memory.
type LocalConfig[E Entity] struct {
	Path         string
	PageSize     int
	SortKeys     []string
	DefaultSort  string
	DefaultOrder model.SortOrder
	// SearchFields are matched case-insensitively by substring.
	SearchFields []string
	// Field returns the string value of key for sorting and searching.
	Field  func(item E, key string) string
	List   func(ctx context.Context) ([]E, error)
	Remove func(ctx context.Context, id string) error
}

// Local is the client-side counterpart of Page.
type Local[E Entity] struct {
	cfg    LocalConfig[E]
	loader *listquery.Loader[[]E]

	mu       sync.Mutex
	page     int
	search   string
	sort     string
	order    model.SortOrder
	pending  map[string]struct{}
	collator *collate.Collator
	loaded   atomic.Bool
}

// NewLocal builds a client-side list on page 1.
func NewLocal[E Entity](cfg LocalConfig[E]) *Local[E] {
	if cfg.DefaultOrder == "" {
		cfg.DefaultOrder = model.SortAsc
	}
	fetch := func(ctx context.Context, _ string, _ model.ListQuery) ([]E, error) {
		return cfg.List(ctx)
	}
	return &Local[E]{
		cfg:      cfg,
		loader:   listquery.New(fetch, cfg.Path, listquery.WithInitialData([]E{})),
		page:     1,
		sort:     cfg.DefaultSort,
		order:    cfg.DefaultOrder,
		pending:  map[string]struct{}{},
		collator: collate.New(language.Und),
	}
}

// Path returns the backend path the list loads.
func (l *Local[E]) Path() string { return l.cfg.Path }

// Refetch reloads the full list.
func (l *Local[E]) Refetch(ctx context.Context) error {
	l.loaded.Store(true)
	return l.loader.Refetch(ctx)
}

// Activate loads the list the first time it is called.
func (l *Local[E]) Activate(ctx context.Context) error {
	if l.loaded.Load() {
		return nil
	}
	return l.Refetch(ctx)
}

// SetPage moves to page n. No request is made.
func (l *Local[E]) SetPage(n int) error {
	if n < 1 {
		return fmt.Errorf("page %d: %w", n, apperrors.ErrInvalidPage)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.page = n
	return nil
}

// SetSearch filters the list; a change returns to page 1.
func (l *Local[E]) SetSearch(search string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if search != l.search {
		l.search = search
		l.page = 1
	}
}

// ToggleSort behaves like Page.ToggleSort without a request.
func (l *Local[E]) ToggleSort(key string) error {
	if !slices.Contains(l.cfg.SortKeys, key) {
		return fmt.Errorf("sort %q: %w", key, apperrors.ErrUnknownSortKey)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sort == key {
		l.order = l.order.Flip()
	} else {
		l.sort = key
		l.order = model.SortAsc
	}
	return nil
}

// Find returns the loaded item with id.
func (l *Local[E]) Find(id string) (E, bool) {
	for _, item := range l.loader.Snapshot().Data {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero E
	return zero, false
}

// Delete drops id locally, calls the backend and then refetches. A failed
// remove restores the row; a failed refetch is only recorded.
func (l *Local[E]) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	if _, busy := l.pending[id]; busy {
		l.mu.Unlock()
		return nil
	}
	l.pending[id] = struct{}{}
	l.mu.Unlock()

	var (
		removed E
		index   = -1
	)
	l.loader.SetData(func(all []E) []E {
		out := make([]E, 0, len(all))
		for i, item := range all {
			if item.GetID() == id {
				removed, index = item, i
				continue
			}
			out = append(out, item)
		}
		return out
	})

	err := l.cfg.Remove(ctx, id)

	l.mu.Lock()
	delete(l.pending, id)
	l.mu.Unlock()

	if err != nil {
		if index >= 0 {
			l.loader.SetData(func(all []E) []E {
				for _, item := range all {
					if item.GetID() == id {
						return all
					}
				}
				return slices.Insert(slices.Clone(all), min(index, len(all)), removed)
			})
		}
		l.loader.SetError(err.Error())
		return err
	}
	_ = l.loader.Refetch(ctx)
	return nil
}

// View filters, sorts and slices the loaded items.
func (l *Local[E]) View() View[E] {
	st := l.loader.Snapshot()

	l.mu.Lock()
	defer l.mu.Unlock()

	needle := strings.ToLower(l.search)
	filtered := make([]E, 0, len(st.Data))
	for _, item := range st.Data {
		if needle == "" || l.matches(item, needle) {
			filtered = append(filtered, item)
		}
	}

	if l.sort != "" {
		key, desc := l.sort, l.order == model.SortDesc
		sort.SliceStable(filtered, func(i, j int) bool {
			c := l.collator.CompareString(l.cfg.Field(filtered[i], key), l.cfg.Field(filtered[j], key))
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	total := len(filtered)
	start := min((l.page-1)*l.cfg.PageSize, total)
	end := min(start+l.cfg.PageSize, total)

	pending := make([]string, 0, len(l.pending))
	for id := range l.pending {
		pending = append(pending, id)
	}
	slices.Sort(pending)

	return View[E]{
		Items:      filtered[start:end],
		Total:      total,
		Page:       l.page,
		Limit:      l.cfg.PageSize,
		TotalPages: TotalPages(total, l.cfg.PageSize),
		Search:     l.search,
		Sort:       l.sort,
		Order:      l.order,
		Loading:    st.Loading,
		Error:      st.Error,
		Pending:    pending,
	}
}

func (l *Local[E]) matches(item E, needle string) bool {
	for _, field := range l.cfg.SearchFields {
		if strings.Contains(strings.ToLower(l.cfg.Field(item, field)), needle) {
			return true
		}
	}
	return false
}
