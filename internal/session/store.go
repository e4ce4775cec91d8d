// Package session owns the per-device authentication state: the
// principal, the access token and the derived permission checks.
// The store is constructed once at bootstrap and injected into the
// middleware, the upstream client and the handlers; nothing else
// mutates a session.
package session

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/repository"
	"github.com/kipidap/myngo-gateway/internal/utils"
)

// Store keeps an in-memory mirror of live sessions over the
// durable repository. The mirror makes repeat lookups cheap and
// gives mutations a single serialization point; the repository
// makes sessions survive restarts, like the original client's
// browser storage did.
type Store struct {
	repo *repository.SessionRepo

	mu       sync.RWMutex
	sessions map[string]*model.Session // keyed by raw session id

	// onClear hooks run after a session is invalidated, letting
	// dependent caches (domain services, prefetch) drop their
	// per-session state without the store knowing about them.
	onClear []func(sid string)
}

func NewStore(repo *repository.SessionRepo) *Store {
	return &Store{repo: repo, sessions: make(map[string]*model.Session)}
}

// OnClear registers a hook invoked after Clear. Registration is
// bootstrap-time only and not synchronized.
func (st *Store) OnClear(fn func(sid string)) { st.onClear = append(st.onClear, fn) }

// NewSessionID mints a fresh device session id.
func NewSessionID() string { return uuid.NewString() }

// Resolve returns the session for a raw session id, rehydrating
// from durable storage on first sight. Storage and parse failures
// degrade to an anonymous session; startup and request handling
// never fail because a persisted bundle is corrupt.
func (st *Store) Resolve(ctx context.Context, sid string) *model.Session {
	if sid == "" {
		return &model.Session{}
	}
	st.mu.RLock()
	s, ok := st.sessions[sid]
	st.mu.RUnlock()
	if ok {
		return s
	}

	loaded, err := st.repo.Load(ctx, sid)
	if err != nil {
		// Missing, unreachable or corrupt all mean the same thing
		// here: no session. An access token with no principal is
		// also left to the 401 path to reconcile.
		return &model.Session{ID: sid}
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if cached, ok := st.sessions[sid]; ok {
		return cached // lost the race, keep the first rehydration
	}
	st.sessions[sid] = loaded
	return loaded
}

// SetSession installs a login result as the session's new state.
// Principal and token are applied as one unit: the new session
// value is fully built before it becomes visible, so no reader can
// observe a principal without its token.
func (st *Store) SetSession(ctx context.Context, sid string, res model.LoginResult) (*model.Session, error) {
	p := res.User
	p.IsOperator = p.IsOperator || res.IsOperator
	if len(res.OperatorStates) > 0 {
		p.OperatorStates = res.OperatorStates
	}
	csrf := res.CSRFToken
	if csrf == "" {
		csrf = utils.RandomHex(32)
	}
	s := &model.Session{
		ID:            sid,
		Principal:     &p,
		AccessToken:   res.AccessToken,
		CSRFToken:     csrf,
		Authenticated: res.AccessToken != "",
	}

	if err := st.repo.Save(ctx, s); err != nil {
		return nil, err
	}
	st.mu.Lock()
	st.sessions[sid] = s
	st.mu.Unlock()
	return s, nil
}

// UpdateToken applies a rotated access token to both the mirror
// and durable storage. It is called by the upstream client before
// a response is handed back, so the next outgoing request always
// carries the new token.
func (st *Store) UpdateToken(ctx context.Context, sid, token string) {
	if sid == "" || token == "" {
		return
	}
	st.mu.Lock()
	if s, ok := st.sessions[sid]; ok {
		next := *s
		next.AccessToken = token
		next.Authenticated = next.Principal != nil
		st.sessions[sid] = &next
	}
	st.mu.Unlock()

	if err := st.repo.SaveToken(ctx, sid, token); err != nil {
		log.Printf("session: persist rotated token: %v", err)
	}
}

// Clear wipes the session's principal, tokens and persisted keys.
// Clearing an absent or already-cleared session is a no-op, which
// matters because concurrent 401s race to call it.
func (st *Store) Clear(ctx context.Context, sid string) {
	if sid == "" {
		return
	}
	st.mu.Lock()
	delete(st.sessions, sid)
	st.mu.Unlock()

	if err := st.repo.Clear(ctx, sid); err != nil {
		log.Printf("session: clear persisted state: %v", err)
	}
	for _, fn := range st.onClear {
		fn(sid)
	}
}

// IsAuthenticated reports the session invariant: principal and
// token both present.
func (st *Store) IsAuthenticated(ctx context.Context, sid string) bool {
	s := st.Resolve(ctx, sid)
	return s.Authenticated && s.Principal != nil && s.AccessToken != ""
}

// Token returns the session's current access token, empty when
// anonymous.
func (st *Store) Token(ctx context.Context, sid string) string {
	return st.Resolve(ctx, sid).AccessToken
}

// Theme exposes the persisted appearance preferences.
func (st *Store) Theme(ctx context.Context, sid string) repository.ThemePrefs {
	return st.repo.Theme(ctx, sid)
}

// SetTheme persists appearance preferences for the device.
func (st *Store) SetTheme(ctx context.Context, sid string, p repository.ThemePrefs) error {
	return st.repo.SaveTheme(ctx, sid, p)
}
