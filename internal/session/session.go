// Package session holds the operator's access and refresh tokens.
//
// A Session is shared by every in-flight request of the terminal. Reads used
// to stamp a request and writes that store or clear tokens are serialized by
// one lock, so a request never sees half of a cleared pair.
package session

import (
	"context"
	"sync"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/logging"
)

// State is the lifecycle position of a session.
type State string

const (
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
	StateRefreshing    State = "refreshing"
)

// Tokens is the access/refresh pair. They are persisted and cleared together.
type Tokens struct {
	Access  string `json:"access_token"`
	Refresh string `json:"refresh_token"`
}

// Empty reports whether no token is held.
func (t Tokens) Empty() bool {
	return t.Access == "" && t.Refresh == ""
}

// TokenStore persists Tokens across restarts.
type TokenStore interface {
	Load(ctx context.Context) (Tokens, error)
	Save(ctx context.Context, tokens Tokens) error
	Clear(ctx context.Context) error
}

type Session struct {
	mu         sync.RWMutex
	tokens     Tokens
	refreshing int
	store      TokenStore
	logger     *logging.LoggerV2
}

// New creates an anonymous session backed by store. A nil store keeps tokens in memory only.
func New(store TokenStore) *Session {
	if store == nil {
		store = NewMemoryTokenStore()
	}
	return &Session{
		store:  store,
		logger: logging.NewLoggerV2("session"),
	}
}

// Restore loads persisted tokens, leaving the session anonymous if none are stored.
func (s *Session) Restore(ctx context.Context) error {
	tokens, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.tokens = tokens
	s.mu.Unlock()

	s.logger.Info("Session restored", logging.Fields{"state": s.State()})
	return nil
}

// SetTokens stores a freshly issued pair, e.g. after login.
func (s *Session) SetTokens(ctx context.Context, tokens Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(ctx, tokens); err != nil {
		return err
	}
	s.tokens = tokens
	return nil
}

// SetAccessToken replaces the access token in place after a refresh.
// An empty refresh argument keeps the current refresh token.
func (s *Session) SetAccessToken(ctx context.Context, access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Tokens{Access: access, Refresh: s.tokens.Refresh}
	if refresh != "" {
		next.Refresh = refresh
	}
	if err := s.store.Save(ctx, next); err != nil {
		return err
	}
	s.tokens = next
	return nil
}

// ClearTokens drops both tokens. The in-memory pair is cleared even if the
// store fails, so the terminal never keeps using a token it tried to forget.
func (s *Session) ClearTokens(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens = Tokens{}
	return s.store.Clear(ctx)
}

func (s *Session) Tokens() Tokens {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.Access
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.Refresh
}

// BeginRefresh marks a refresh as in flight. Pair every call with EndRefresh.
func (s *Session) BeginRefresh() {
	s.mu.Lock()
	s.refreshing++
	s.mu.Unlock()
}

func (s *Session) EndRefresh() {
	s.mu.Lock()
	if s.refreshing > 0 {
		s.refreshing--
	}
	s.mu.Unlock()
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case s.refreshing > 0:
		return StateRefreshing
	case s.tokens.Access != "" || s.tokens.Refresh != "":
		return StateAuthenticated
	default:
		return StateAnonymous
	}
}
