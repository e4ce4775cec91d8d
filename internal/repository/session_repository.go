package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/kipidap/myngo-gateway/internal/model"
)

// Storage keys under a session's prefix. They reproduce the fixed
// keys the original client kept in browser storage: the bundled
// principal+token record, a bare access-token copy, the CSRF copy,
// the operator-states cache and the three theme preferences.
const (
	keyUser           = "user"
	keyAccessToken    = "access_token"
	keyCSRFToken      = "csrf_token"
	keyOperatorStates = "operator_states"
	keyTheme          = "theme"
	keyThemeColor     = "theme-color"
	keyThemeRadius    = "theme-radius"
)

// ThemePrefs are the persisted appearance preferences. They
// survive logout on purpose: clearing a session must not reset the
// device's theme.
type ThemePrefs struct {
	Theme  string `json:"theme"`
	Color  string `json:"color"`
	Radius string `json:"radius"`
}

// SessionRepo persists session state through a KV backend. The raw
// session id from the cookie is never used as a storage key; only
// its SHA-256 digest is, so a dumped keyspace cannot be replayed
// as cookies.
type SessionRepo struct {
	KV  KV
	TTL time.Duration // session bundle lifetime; 0 means no expiry
}

func NewSessionRepo(kv KV, ttl time.Duration) *SessionRepo {
	return &SessionRepo{KV: kv, TTL: ttl}
}

// HashSessionID returns the hex SHA-256 digest of a raw session id.
func HashSessionID(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (r *SessionRepo) key(sid, name string) string {
	return "sess:" + HashSessionID(sid) + ":" + name
}

// Load reads the persisted bundle for a session id. Any storage or
// parse failure yields (nil, err); the session store maps every
// error to "no session" so a corrupt bundle can never break a
// request.
func (r *SessionRepo) Load(ctx context.Context, sid string) (*model.Session, error) {
	raw, err := r.KV.Get(ctx, r.key(sid, keyUser))
	if err != nil {
		return nil, err
	}
	var s model.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, err
	}
	s.ID = sid
	// The bundle is authoritative for the principal, but the bare
	// token copy may be newer when a rotation landed between the
	// two writes. Prefer it when present.
	if tok, err := r.KV.Get(ctx, r.key(sid, keyAccessToken)); err == nil && tok != "" {
		s.AccessToken = tok
	}
	s.Authenticated = s.Principal != nil && s.AccessToken != ""
	return &s, nil
}

// Save writes the full bundle plus the derived single-value keys.
func (r *SessionRepo) Save(ctx context.Context, s *model.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := r.KV.Set(ctx, r.key(s.ID, keyUser), string(raw), r.TTL); err != nil {
		return err
	}
	if err := r.KV.Set(ctx, r.key(s.ID, keyAccessToken), s.AccessToken, r.TTL); err != nil {
		return err
	}
	if s.CSRFToken != "" {
		if err := r.KV.Set(ctx, r.key(s.ID, keyCSRFToken), s.CSRFToken, r.TTL); err != nil {
			return err
		}
	}
	if s.Principal != nil && len(s.Principal.OperatorStates) > 0 {
		if err := SetJSON(ctx, r.KV, r.key(s.ID, keyOperatorStates), s.Principal.OperatorStates, r.TTL); err != nil {
			return err
		}
	}
	return nil
}

// SaveToken persists a rotated access token: both the bare copy
// and the token inside the bundle, so a later Load cannot observe
// the old value.
func (r *SessionRepo) SaveToken(ctx context.Context, sid, token string) error {
	if err := r.KV.Set(ctx, r.key(sid, keyAccessToken), token, r.TTL); err != nil {
		return err
	}
	raw, err := r.KV.Get(ctx, r.key(sid, keyUser))
	if err != nil {
		// No bundle yet; the bare copy alone is still correct.
		return nil
	}
	var s model.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil
	}
	s.AccessToken = token
	s.Authenticated = s.Principal != nil
	out, err := json.Marshal(&s)
	if err != nil {
		return err
	}
	return r.KV.Set(ctx, r.key(sid, keyUser), string(out), r.TTL)
}

// OperatorStates reads the cached operator-states list, if any.
func (r *SessionRepo) OperatorStates(ctx context.Context, sid string) ([]model.OperatorState, error) {
	var states []model.OperatorState
	if err := GetJSON(ctx, r.KV, r.key(sid, keyOperatorStates), &states); err != nil {
		return nil, err
	}
	return states, nil
}

// Clear removes the auth keys for a session. Theme preferences are
// left alone. Deleting absent keys is a no-op, so Clear is safe to
// call repeatedly.
func (r *SessionRepo) Clear(ctx context.Context, sid string) error {
	return r.KV.Del(ctx,
		r.key(sid, keyUser),
		r.key(sid, keyAccessToken),
		r.key(sid, keyCSRFToken),
		r.key(sid, keyOperatorStates),
	)
}

// SaveTheme persists the appearance preferences with no expiry.
func (r *SessionRepo) SaveTheme(ctx context.Context, sid string, p ThemePrefs) error {
	if err := r.KV.Set(ctx, r.key(sid, keyTheme), p.Theme, 0); err != nil {
		return err
	}
	if err := r.KV.Set(ctx, r.key(sid, keyThemeColor), p.Color, 0); err != nil {
		return err
	}
	return r.KV.Set(ctx, r.key(sid, keyThemeRadius), p.Radius, 0)
}

// Theme loads the appearance preferences, defaulting like the
// original client: light theme, green scheme, 0.25rem radius.
func (r *SessionRepo) Theme(ctx context.Context, sid string) ThemePrefs {
	p := ThemePrefs{Theme: "light", Color: "green", Radius: "0.25"}
	if v, err := r.KV.Get(ctx, r.key(sid, keyTheme)); err == nil && v != "" {
		p.Theme = v
	}
	if v, err := r.KV.Get(ctx, r.key(sid, keyThemeColor)); err == nil && v != "" {
		p.Color = v
	}
	if v, err := r.KV.Get(ctx, r.key(sid, keyThemeRadius)); err == nil && v != "" {
		p.Radius = v
	}
	return p
}
