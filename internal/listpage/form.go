package listpage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "quizadmin/internal/errors"
	"quizadmin/internal/validation"
)

// FormState is the position of the edit form.
type FormState int

const (
	FormClosed FormState = iota
	FormOpen
	FormSubmitting
	FormError
)

func (s FormState) String() string {
	switch s {
	case FormOpen:
		return "open"
	case FormSubmitting:
		return "submitting"
	case FormError:
		return "error"
	default:
		return "closed"
	}
}

func (s FormState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// FormView is the rendered form.
type FormView[D any] struct {
	State FormState `json:"state"`
	// ID is the record being edited; empty while creating.
	ID    string `json:"id,omitempty"`
	Draft D      `json:"draft"`
	Error string `json:"error,omitempty"`
}

// StructCheck validates draft with v. Blank required fields become
// ErrFormAborted, the equivalent of a cancelled prompt.
func StructCheck(v *validator.Validate, draft any) error {
	err := v.Struct(draft)
	if err == nil {
		return nil
	}
	if blank := validation.BlankRequired(err); len(blank) > 0 {
		return fmt.Errorf("%w: %s left blank", apperrors.ErrFormAborted, strings.Join(blank, ", "))
	}
	return err
}

// FormConfig wires a form to its backend calls.
type FormConfig[D any] struct {
	// Normalize rewrites the draft before Check, for example mapping a
	// blank reference to none. The result is what Save receives.
	Normalize func(draft D) D
	// Check runs before Submit reaches the network. Returning an error
	// wrapping ErrFormAborted cancels the edit. Defaults to struct validation.
	Check func(id string, draft D) error
	// Save creates (id == "") or updates the record.
	Save func(ctx context.Context, id string, draft D) error
	// Saved runs after a successful Save, typically a list refetch.
	Saved func(ctx context.Context) error
}

// Form allows one create or edit at a time:
// Closed -> Open(draft) -> Submitting -> Closed | Error.
type Form[D any] struct {
	cfg FormConfig[D]

	mu    sync.Mutex
	state FormState
	id    string
	draft D
	err   string
}

// NewForm returns a closed form.
func NewForm[D any](cfg FormConfig[D]) *Form[D] {
	if cfg.Check == nil {
		v := validation.New()
		cfg.Check = func(_ string, draft D) error {
			return StructCheck(v, draft)
		}
	}
	return &Form[D]{cfg: cfg}
}

// Open starts editing id (or creating when id is empty) from draft.
// Reopening the record already being edited is allowed.
func (f *Form[D]) Open(id string, draft D) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case FormClosed:
	case FormOpen, FormError:
		if f.id != id {
			return apperrors.ErrFormBusy
		}
	default:
		return apperrors.ErrFormBusy
	}
	f.state, f.id, f.draft, f.err = FormOpen, id, draft, ""
	return nil
}

// Edit replaces the draft of an open form.
func (f *Form[D]) Edit(draft D) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case FormOpen, FormError:
		f.state, f.draft = FormOpen, draft
		return nil
	case FormSubmitting:
		return apperrors.ErrFormBusy
	default:
		return apperrors.ErrFormClosed
	}
}

// Submit checks the draft and saves it. A blank required field closes the
// form with ErrFormAborted and no network call; other failures leave the
// form in Error with the draft intact.
func (f *Form[D]) Submit(ctx context.Context) error {
	f.mu.Lock()
	switch f.state {
	case FormOpen, FormError:
	case FormSubmitting:
		f.mu.Unlock()
		return apperrors.ErrFormBusy
	default:
		f.mu.Unlock()
		return apperrors.ErrFormClosed
	}
	if f.cfg.Normalize != nil {
		f.draft = f.cfg.Normalize(f.draft)
	}
	id, draft := f.id, f.draft

	if err := f.cfg.Check(id, draft); err != nil {
		if errors.Is(err, apperrors.ErrFormAborted) {
			f.resetLocked()
		} else {
			f.state, f.err = FormError, err.Error()
		}
		f.mu.Unlock()
		return err
	}
	f.state, f.err = FormSubmitting, ""
	f.mu.Unlock()

	err := f.cfg.Save(ctx, id, draft)

	f.mu.Lock()
	if err != nil {
		f.state, f.err = FormError, err.Error()
		f.mu.Unlock()
		return err
	}
	f.resetLocked()
	f.mu.Unlock()

	if f.cfg.Saved != nil {
		// The list records its own fetch error.
		_ = f.cfg.Saved(ctx)
	}
	return nil
}

// Cancel closes the form unless a submit is in flight.
func (f *Form[D]) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormSubmitting {
		return apperrors.ErrFormBusy
	}
	f.resetLocked()
	return nil
}

// View renders the form.
func (f *Form[D]) View() FormView[D] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FormView[D]{State: f.state, ID: f.id, Draft: f.draft, Error: f.err}
}

func (f *Form[D]) resetLocked() {
	var zero D
	f.state, f.id, f.draft, f.err = FormClosed, "", zero, ""
}
