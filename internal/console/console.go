// Package console assembles the admin screens: one list per backend
// resource, each with its edit form, over a shared session.
package console

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"quizadmin/internal/config"
	apperrors "quizadmin/internal/errors"
	"quizadmin/internal/gateway"
	"quizadmin/internal/listpage"
	"quizadmin/internal/model"
	"quizadmin/internal/session"
)

// Params are the list transitions requested by the operator. Zero values
// leave the current state alone.
type Params struct {
	Page   int
	Search *string
	// Sort toggles the named column, like clicking its header.
	Sort string
}

// Screen is one list page.
type Screen interface {
	Name() string
	Show(ctx context.Context, p Params) (any, error)
	Delete(ctx context.Context, id string) (any, error)
	// Editor returns nil for read-only screens.
	Editor() Editor
}

// Editor drives the single create/edit form of a screen.
type Editor interface {
	// Open starts an edit of id, or a create when id is empty, prefilled
	// from the listed record.
	Open(ctx context.Context, id string) (any, error)
	// Save opens the form if needed, applies body to the draft and submits.
	Save(ctx context.Context, id string, body []byte) (any, error)
	Cancel() error
	View() any
}

// Console owns the screens and the session.
type Console struct {
	session *session.Store
	gw      *gateway.Gateways
	screens map[string]Screen
}

// New builds every screen. Lists are fetched the first time they are shown.
func New(cfg *config.Config, gw *gateway.Gateways, s *session.Store) *Console {
	c := &Console{session: s, gw: gw, screens: map[string]Screen{}}
	for _, screen := range []Screen{
		newNodesScreen(gw, cfg.PageLimit),
		newAssessmentsScreen(gw, cfg.PageLimit),
		newQuestionsScreen(gw, cfg.PageLimit),
		newAnswersScreen(gw, cfg.PageLimit),
		newAttemptsScreen(gw, cfg.PageLimit),
		newUsersScreen(gw, cfg.UsersPageSize),
	} {
		c.screens[screen.Name()] = screen
	}
	return c
}

// Session returns the session store.
func (c *Console) Session() *session.Store { return c.session }

// Login authenticates and persists the session.
func (c *Console) Login(ctx context.Context, creds model.Credentials) (session.State, error) {
	return c.session.Login(ctx, c.gw.Auth, creds)
}

// Logout ends the session.
func (c *Console) Logout(ctx context.Context) session.State {
	return c.session.Logout(ctx)
}

// Screen looks a screen up by resource name.
func (c *Console) Screen(name string) (Screen, error) {
	s, ok := c.screens[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, apperrors.ErrUnknownResource)
	}
	return s, nil
}

// Names lists the screens in alphabetical order.
func (c *Console) Names() []string {
	names := make([]string, 0, len(c.screens))
	for name := range c.screens {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// pagedScreen adapts a server-paginated list and its form to Screen.
type pagedScreen[E listpage.Entity, D any] struct {
	name     string
	page     *listpage.Page[E]
	editor   *editor[E, D]
	decorate func(listpage.View[E]) any
}

func (s *pagedScreen[E, D]) Name() string { return s.name }

func (s *pagedScreen[E, D]) Show(ctx context.Context, p Params) (any, error) {
	nav := listpage.Nav{Search: p.Search, Sort: p.Sort, Page: p.Page}
	if err := s.page.Navigate(ctx, nav); err != nil {
		return nil, err
	}
	if err := s.page.Activate(ctx); err != nil {
		return s.view(), err
	}
	return s.view(), nil
}

func (s *pagedScreen[E, D]) Delete(ctx context.Context, id string) (any, error) {
	err := s.page.Delete(ctx, id)
	return s.view(), err
}

func (s *pagedScreen[E, D]) Editor() Editor {
	if s.editor == nil {
		return nil
	}
	return s.editor
}

func (s *pagedScreen[E, D]) view() any {
	v := s.page.View()
	if s.decorate != nil {
		return s.decorate(v)
	}
	return v
}

// finder locates a record for prefilling the form.
type finder[E any] interface {
	Find(id string) (E, bool)
}

// editor prefills drafts from the list (or the backend) and runs the form.
type editor[E listpage.Entity, D any] struct {
	form    *listpage.Form[D]
	list    finder[E]
	get     func(ctx context.Context, id string) (*E, error)
	toDraft func(E) D
}

func (e *editor[E, D]) Open(ctx context.Context, id string) (any, error) {
	draft, err := e.prefill(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := e.form.Open(id, draft); err != nil {
		return e.form.View(), err
	}
	return e.form.View(), nil
}

// Save decodes body over the current draft of id, so an edit only needs the
// fields it changes. A create starts from an empty draft.
func (e *editor[E, D]) Save(ctx context.Context, id string, body []byte) (any, error) {
	var draft D
	if id != "" {
		if open := e.form.View(); open.State != listpage.FormClosed && open.ID == id {
			draft = open.Draft
		} else {
			prefilled, err := e.prefill(ctx, id)
			if err != nil {
				return nil, err
			}
			draft = prefilled
		}
	}
	if err := json.Unmarshal(body, &draft); err != nil {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "invalid draft: "+err.Error(), "INVALID_BODY")
	}
	if err := e.form.Open(id, draft); err != nil {
		return e.form.View(), err
	}
	err := e.form.Submit(ctx)
	return e.form.View(), err
}

// prefill builds the draft for id from the listed record, falling back to
// the backend. An empty id is a create.
func (e *editor[E, D]) prefill(ctx context.Context, id string) (D, error) {
	var draft D
	if id == "" {
		return draft, nil
	}
	item, ok := e.list.Find(id)
	if !ok {
		fetched, err := e.get(ctx, id)
		if err != nil {
			return draft, err
		}
		item = *fetched
	}
	return e.toDraft(item), nil
}

func (e *editor[E, D]) Cancel() error { return e.form.Cancel() }

func (e *editor[E, D]) View() any { return e.form.View() }
