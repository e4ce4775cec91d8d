// Package prefetch warms the upstream responses a visitor is most
// likely to need right after landing on a page, the way the
// original client preloaded the next screens' code bundles once a
// dashboard settled. Warming is fire-and-forget: it runs after the
// response to the triggering navigation, and a failed warm costs
// nothing but the head start.
package prefetch

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/kipidap/myngo-gateway/internal/config"
	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/repository"
	"github.com/kipidap/myngo-gateway/internal/upstream"
)

// likelyNext maps a landing page to the upstream GETs its visitor
// tends to issue next. Derived from the screens reachable in one
// click from each dashboard.
var likelyNext = map[string][]string{
	"/user/dashboard":       {"/profile", "/businesses", "/products?page=1&limit=10"},
	"/admin/dashboard":      {"/admin-dashboard/overview", "/members?page=1&limit=10", "/states/admin"},
	"/superadmin/dashboard": {"/admin-dashboard/overview", "/states/admin"},
	"/operator/dashboard":   {"/members?page=1&limit=10", "/applications?page=1&limit=10"},
	"/user/businesses":      {"/states"},
	"/admin/members":        {"/members/stats"},
}

// operatorNext holds the additional warms for a user-role session
// carrying the operator grant: its next click is as likely to be an
// operator screen as a user one, so the operator data comes along.
var operatorNext = map[string][]string{
	"/user/dashboard": {"/members?page=1&limit=10", "/applications?page=1&limit=10"},
}

// warmSet resolves the endpoints to warm for one allowed
// navigation, from the destination path, the session's role and the
// operator grant.
func warmSet(path string, role model.Role, operator bool) []string {
	paths := likelyNext[path]
	if operator && role == model.RoleUser {
		if extra := operatorNext[path]; len(extra) > 0 {
			merged := make([]string, 0, len(paths)+len(extra))
			merged = append(merged, paths...)
			merged = append(merged, extra...)
			return merged
		}
	}
	return paths
}

// Warmer fetches likely-next responses through the regular upstream
// client and parks them in the KV store. The client consults the
// same store on its GET path, so a warmed response is served
// without a second upstream round trip.
type Warmer struct {
	api     *upstream.Client
	kv      repository.KV
	ttl     time.Duration
	maxBody int

	// enabled gates all warming; a cold config disables the feature
	// without touching call sites.
	enabled bool
}

func NewWarmer(api *upstream.Client, kv repository.KV, cfg config.PrefetchConfig) *Warmer {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 64 << 10
	}
	return &Warmer{api: api, kv: kv, ttl: ttl, maxBody: maxBody, enabled: cfg.Enabled}
}

// Warm kicks off background warming for a navigation that was just
// allowed. Anonymous sessions are never warmed; their next request
// is a login.
func (w *Warmer) Warm(sid string, s *model.Session, rt model.RouteDescriptor) {
	if w == nil || !w.enabled || s == nil || !s.Authenticated || s.Principal == nil {
		return
	}
	paths := warmSet(rt.Path, s.Principal.Role, s.Principal.IsOperator)
	if len(paths) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, p := range paths {
			w.warmOne(ctx, sid, p)
		}
	}()
}

func (w *Warmer) warmOne(ctx context.Context, sid, path string) {
	var raw json.RawMessage
	if err := w.api.Get(ctx, sid, path, &raw); err != nil {
		// A denied or failing endpoint just stays cold.
		return
	}
	if len(raw) == 0 || len(raw) > w.maxBody {
		return
	}
	if err := w.kv.Set(ctx, warmKey(sid, path), string(raw), w.ttl); err != nil {
		log.Printf("prefetch: store warmed response: %v", err)
	}
}

// Take pops a warmed response for the path, if one is parked. Each
// warmed copy is served at most once so mutations observed by the
// upstream are never masked longer than the TTL.
func (w *Warmer) Take(ctx context.Context, sid, path string) ([]byte, bool) {
	if w == nil || !w.enabled {
		return nil, false
	}
	key := warmKey(sid, path)
	val, err := w.kv.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	_ = w.kv.Del(ctx, key)
	return []byte(val), true
}

// DropSession discards every warmed response for a session. Keys
// embed the hashed session id, so without a broker-side scan the
// known warm paths are enumerated instead.
func (w *Warmer) DropSession(sid string) {
	if w == nil || !w.enabled {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for _, m := range []map[string][]string{likelyNext, operatorNext} {
		for _, paths := range m {
			for _, p := range paths {
				_ = w.kv.Del(ctx, warmKey(sid, p))
			}
		}
	}
}

func warmKey(sid, path string) string {
	return "warm:" + repository.HashSessionID(sid) + ":" + path
}
