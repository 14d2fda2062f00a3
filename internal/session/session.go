// Package session owns the operator's bearer token and profile. A Store is
// created once and handed to whatever needs it; it also feeds the token to
// the HTTP client at request-build time.
package session

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"quizadmin/internal/auth"
	apperrors "quizadmin/internal/errors"
	"quizadmin/internal/model"
	"quizadmin/internal/storage"
)

// Status is the session lifecycle position.
type Status int

const (
	StatusUnknown Status = iota
	StatusAuthenticated
	StatusAnonymous
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// State is a snapshot of the session.
type State struct {
	Status  Status      `json:"status"`
	Token   string      `json:"-"`
	User    *model.User `json:"user"`
	Loading bool        `json:"loading"`
}

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, creds model.Credentials) (*model.LoginResponse, error)
}

// Store holds the session. The zero value is not usable; call New.
type Store struct {
	mu      sync.RWMutex
	state   State
	storage storage.Storage
	now     func() time.Time
}

// New returns a store in the Unknown(loading) state. Call Hydrate next.
func New(st storage.Storage) *Store {
	return &Store{
		state:   State{Status: StatusUnknown, Loading: true},
		storage: st,
		now:     time.Now,
	}
}

// Hydrate reads the persisted token and user. A persisted JWT that has
// already expired is dropped along with the user.
func (s *Store) Hydrate(ctx context.Context) State {
	token := s.read(ctx, storage.KeyToken)
	var user *model.User
	if raw := s.read(ctx, storage.KeyUser); raw != "" {
		user = &model.User{}
		if err := json.Unmarshal([]byte(raw), user); err != nil {
			log.Printf("session: discarding unreadable user: %v", err)
			user = nil
		}
	}

	if token != "" && auth.Expired(token, s.now()) {
		log.Printf("session: persisted token expired, starting anonymous")
		s.clear(ctx)
		token, user = "", nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != "" {
		s.state = State{Status: StatusAuthenticated, Token: token, User: user}
	} else {
		s.state = State{Status: StatusAnonymous}
	}
	return s.snapshotLocked()
}

// Login authenticates through a and persists the result. A response without
// a token fails with ErrMissingToken and leaves the session untouched. When
// the response carries no user, any previously stored user is removed.
func (s *Store) Login(ctx context.Context, a Authenticator, creds model.Credentials) (State, error) {
	resp, err := a.Login(ctx, creds)
	if err != nil {
		return s.State(), err
	}
	if resp == nil || resp.Token == "" {
		return s.State(), apperrors.ErrMissingToken
	}

	s.mu.Lock()
	s.state = State{Status: StatusAuthenticated, Token: resp.Token, User: resp.User}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.write(ctx, storage.KeyToken, resp.Token)
	if resp.User != nil {
		raw, err := json.Marshal(resp.User)
		if err != nil {
			log.Printf("session: encode user: %v", err)
			s.remove(ctx, storage.KeyUser)
		} else {
			s.write(ctx, storage.KeyUser, string(raw))
		}
	} else {
		s.remove(ctx, storage.KeyUser)
	}
	return snapshot, nil
}

// Logout always ends in Anonymous and clears the persisted values.
func (s *Store) Logout(ctx context.Context) State {
	s.mu.Lock()
	s.state = State{Status: StatusAnonymous}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.clear(ctx)
	return snapshot
}

// Token returns the current bearer token or "".
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Authenticated reports whether a usable token is held.
func (s *Store) Authenticated() bool {
	token := s.Token()
	return token != "" && !auth.Expired(token, s.now())
}

// User returns a copy of the current profile, or nil.
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

// State returns a snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

func (s *Store) clear(ctx context.Context) {
	s.remove(ctx, storage.KeyToken)
	s.remove(ctx, storage.KeyUser)
}

// Storage failures never block a state change; they are logged.

func (s *Store) read(ctx context.Context, key string) string {
	v, ok, err := s.storage.Get(ctx, key)
	if err != nil {
		log.Printf("session: read %s: %v", key, err)
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

func (s *Store) write(ctx context.Context, key, value string) {
	if err := s.storage.Set(ctx, key, value); err != nil {
		log.Printf("session: write %s: %v", key, err)
	}
}

func (s *Store) remove(ctx context.Context, key string) {
	if err := s.storage.Remove(ctx, key); err != nil {
		log.Printf("session: remove %s: %v", key, err)
	}
}
