// Package listpage holds the state behind one admin list screen: paging,
// search, sort, optimistic delete and the single edit form.
package listpage

import (
	"context"
	"fmt"
	"slices"
	"sync"

	apperrors "quizadmin/internal/errors"
	"quizadmin/internal/listquery"
	"quizadmin/internal/model"
)

// Entity is anything with a backend id.
type Entity interface {
	GetID() string
}

// TotalPages is max(1, ceil(total/limit)).
func TotalPages(total, limit int) int {
	if limit < 1 || total <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}

// Config describes one server-paginated list.
type Config[E Entity] struct {
	Path         string
	Limit        int
	SortKeys     []string
	DefaultSort  string
	DefaultOrder model.SortOrder
	List         func(ctx context.Context, q model.ListQuery) (*model.Page[E], error)
	Remove       func(ctx context.Context, id string) error
	// Deferred holds every fetch until Activate is called.
	Deferred bool
}

// View is the rendered state of a Page.
type View[E Entity] struct {
	Items      []E             `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
	Search     string          `json:"search"`
	Sort       string          `json:"sort"`
	Order      model.SortOrder `json:"order"`
	Loading    bool            `json:"loading"`
	Error      string          `json:"error,omitempty"`
	Pending    []string        `json:"pending,omitempty"`
}

// Page is a server-paginated list. Safe for concurrent use.
type Page[E Entity] struct {
	cfg    Config[E]
	loader *listquery.Loader[model.Page[E]]

	mu      sync.Mutex
	page    int
	search  string
	sort    string
	order   model.SortOrder
	pending map[string]struct{}
}

// New builds a page on page 1 with the default sort. Call Refetch to load.
func New[E Entity](cfg Config[E]) *Page[E] {
	if cfg.DefaultOrder == "" {
		cfg.DefaultOrder = model.SortAsc
	}
	p := &Page[E]{
		cfg:     cfg,
		page:    1,
		sort:    cfg.DefaultSort,
		order:   cfg.DefaultOrder,
		pending: map[string]struct{}{},
	}
	fetch := func(ctx context.Context, _ string, q model.ListQuery) (model.Page[E], error) {
		res, err := cfg.List(ctx, q)
		if err != nil {
			return model.Page[E]{}, err
		}
		return *res, nil
	}
	opts := []listquery.Option[model.Page[E]]{
		listquery.WithQuery[model.Page[E]](p.queryLocked()),
		listquery.WithInitialData(model.Page[E]{Items: []E{}}),
	}
	if cfg.Deferred {
		opts = append(opts, listquery.Disabled[model.Page[E]]())
	}
	p.loader = listquery.New(fetch, cfg.Path, opts...)
	return p
}

// Activate releases a deferred page, fetching once with the state
// accumulated so far. It does nothing on an active page.
func (p *Page[E]) Activate(ctx context.Context) error {
	return p.loader.SetEnabled(ctx, true)
}

// Path returns the backend path the page lists.
func (p *Page[E]) Path() string { return p.cfg.Path }

// Refetch reloads the current page.
func (p *Page[E]) Refetch(ctx context.Context) error {
	return p.loader.Refetch(ctx)
}

// Nav is one operator transition: search, then sort toggle, then page.
// Zero fields leave that part alone.
type Nav struct {
	Search *string
	Sort   string
	Page   int
}

// Navigate applies nav as a single query change, so it fetches at most once.
// Nothing changes when nav is invalid.
func (p *Page[E]) Navigate(ctx context.Context, nav Nav) error {
	if nav.Sort != "" && !slices.Contains(p.cfg.SortKeys, nav.Sort) {
		return fmt.Errorf("sort %q: %w", nav.Sort, apperrors.ErrUnknownSortKey)
	}
	if nav.Page < 0 {
		return fmt.Errorf("page %d: %w", nav.Page, apperrors.ErrInvalidPage)
	}

	p.mu.Lock()
	if nav.Search != nil && *nav.Search != p.search {
		p.search = *nav.Search
		p.page = 1
	}
	if nav.Sort != "" {
		if p.sort == nav.Sort {
			p.order = p.order.Flip()
		} else {
			p.sort = nav.Sort
			p.order = model.SortAsc
		}
	}
	if nav.Page > 0 {
		p.page = nav.Page
	}
	q := p.queryLocked()
	p.mu.Unlock()
	return p.loader.SetQuery(ctx, q)
}

// SetPage moves to page n (1-based).
func (p *Page[E]) SetPage(ctx context.Context, n int) error {
	if n < 1 {
		return fmt.Errorf("page %d: %w", n, apperrors.ErrInvalidPage)
	}
	return p.Navigate(ctx, Nav{Page: n})
}

// SetSearch changes the search text; any change returns to page 1.
func (p *Page[E]) SetSearch(ctx context.Context, search string) error {
	return p.Navigate(ctx, Nav{Search: &search})
}

// ToggleSort flips the order when key is the active column, otherwise sorts
// ascending by key.
func (p *Page[E]) ToggleSort(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("sort %q: %w", key, apperrors.ErrUnknownSortKey)
	}
	return p.Navigate(ctx, Nav{Sort: key})
}

// Find returns the listed item with id, if it is on the current page.
func (p *Page[E]) Find(id string) (E, bool) {
	for _, item := range p.loader.Snapshot().Data.Items {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero E
	return zero, false
}

// Delete removes id. The row disappears and total drops by one before the
// backend answers. Failure puts the row back and returns the error. Success
// is followed by a refetch whose failure only lands in View().Error.
func (p *Page[E]) Delete(ctx context.Context, id string) error {
	p.mu.Lock()
	if _, busy := p.pending[id]; busy {
		p.mu.Unlock()
		return nil
	}
	p.pending[id] = struct{}{}
	p.mu.Unlock()

	var (
		removed   E
		index     = -1
		decrement bool
	)
	p.loader.SetData(func(d model.Page[E]) model.Page[E] {
		decrement = d.Total > 0
		items := make([]E, 0, len(d.Items))
		for i, item := range d.Items {
			if item.GetID() == id {
				removed, index = item, i
				continue
			}
			items = append(items, item)
		}
		return model.Page[E]{Items: items, Total: max(0, d.Total-1)}
	})

	err := p.cfg.Remove(ctx, id)

	p.mu.Lock()
	delete(p.pending, id)
	p.mu.Unlock()

	if err != nil {
		p.loader.SetData(func(d model.Page[E]) model.Page[E] {
			return restore(d, removed, index, decrement)
		})
		p.loader.SetError(err.Error())
		return err
	}
	_ = p.loader.Refetch(ctx)
	return nil
}

// View renders the current state.
func (p *Page[E]) View() View[E] {
	st := p.loader.Snapshot()
	p.mu.Lock()
	defer p.mu.Unlock()
	pending := make([]string, 0, len(p.pending))
	for id := range p.pending {
		pending = append(pending, id)
	}
	slices.Sort(pending)
	return View[E]{
		Items:      st.Data.Items,
		Total:      st.Data.Total,
		Page:       p.page,
		Limit:      p.cfg.Limit,
		TotalPages: TotalPages(st.Data.Total, p.cfg.Limit),
		Search:     p.search,
		Sort:       p.sort,
		Order:      p.order,
		Loading:    st.Loading,
		Error:      st.Error,
		Pending:    pending,
	}
}

func (p *Page[E]) queryLocked() model.ListQuery {
	return model.ListQuery{
		Page:   p.page,
		Limit:  p.cfg.Limit,
		Search: p.search,
		Sort:   p.sort,
		Order:  p.order,
	}
}

// restore undoes an optimistic removal unless a refetch already brought the
// row back. index < 0 means the row was never on the page.
func restore[E Entity](d model.Page[E], item E, index int, decremented bool) model.Page[E] {
	total := d.Total
	if decremented {
		total++
	}
	if index < 0 {
		return model.Page[E]{Items: d.Items, Total: total}
	}
	for _, it := range d.Items {
		if it.GetID() == item.GetID() {
			return d
		}
	}
	index = min(index, len(d.Items))
	items := slices.Insert(slices.Clone(d.Items), index, item)
	return model.Page[E]{Items: items, Total: total}
}
