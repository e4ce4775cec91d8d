package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSessions is an in-memory TokenSource.
type stubSessions struct {
	mu      sync.Mutex
	tokens  map[string]string
	cleared []string
}

func newStubSessions() *stubSessions {
	return &stubSessions{tokens: map[string]string{}}
}

func (s *stubSessions) Token(_ context.Context, sid string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[sid]
}

func (s *stubSessions) UpdateToken(_ context.Context, sid, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[sid] = token
}

func (s *stubSessions) Clear(_ context.Context, sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, sid)
	s.cleared = append(s.cleared, sid)
}

func TestBearerTokenAttached(t *testing.T) {
	sessions := newStubSessions()
	sessions.tokens["sid1"] = "tok-1"

	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, 0, sessions)
	require.NoError(t, c.Get(context.Background(), "sid1", "/x", nil))
	assert.Equal(t, "Bearer tok-1", got)
}

func TestRotationHeaderPersistsBeforeReturn(t *testing.T) {
	sessions := newStubSessions()
	sessions.tokens["sid1"] = "tok-1"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(RotatedTokenHeader, "tok-2")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, 0, sessions)
	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, c.Get(context.Background(), "sid1", "/x", &out))
	assert.True(t, out.OK)
	assert.Equal(t, "tok-2", sessions.tokens["sid1"], "rotated token is stored before the caller sees the response")
}

func TestUnauthorizedClearsSession(t *testing.T) {
	sessions := newStubSessions()
	sessions.tokens["sid1"] = "tok-1"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, 0, sessions)
	err := c.Get(context.Background(), "sid1", "/x", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, []string{"sid1"}, sessions.cleared)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "token expired", apiErr.Message("fallback"))
}

func TestServerErrorsRetry(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, 3, newStubSessions())
	require.NoError(t, c.Get(context.Background(), "sid1", "/x", nil))
	assert.Equal(t, 3, hits)
}

func TestRetriesExhaustedReturnsAPIError(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, 2, newStubSessions())
	err := c.Get(context.Background(), "sid1", "/x", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, 3, hits, "first attempt plus two retries")
}

func TestClientErrorsDoNotRetry(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"bad ssm"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, 3, newStubSessions())
	err := c.Post(context.Background(), "sid1", "/x", map[string]string{"a": "b"}, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 1, hits)
	assert.Equal(t, "bad ssm", apiErr.Message("fallback"))
}

func TestRefreshTokenAppliesBodyToken(t *testing.T) {
	sessions := newStubSessions()
	sessions.tokens["sid1"] = "tok-1"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/refresh-token", r.URL.Path)
		w.Write([]byte(`{"access_token":"tok-9"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, 0, sessions)
	require.NoError(t, c.RefreshToken(context.Background(), "sid1"))
	assert.Equal(t, "tok-9", sessions.tokens["sid1"])
}

// stubWarm serves one canned body for one path.
type stubWarm struct {
	path string
	body []byte
	hits int
}

func (s *stubWarm) Take(_ context.Context, _, path string) ([]byte, bool) {
	if path == s.path && s.hits == 0 {
		s.hits++
		return s.body, true
	}
	return nil, false
}

func TestWarmCacheShortCircuitsGET(t *testing.T) {
	var upstreamHits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamHits++
		w.Write([]byte(`{"n":2}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, 0, newStubSessions())
	c.SetWarmCache(&stubWarm{path: "/x", body: []byte(`{"n":1}`)})

	var out struct {
		N int `json:"n"`
	}
	// First GET is served from the warm copy.
	require.NoError(t, c.Get(context.Background(), "sid1", "/x", &out))
	assert.Equal(t, 1, out.N)
	assert.Zero(t, upstreamHits)

	// The copy is single-use; the second GET goes out.
	require.NoError(t, c.Get(context.Background(), "sid1", "/x", &out))
	assert.Equal(t, 2, out.N)
	assert.Equal(t, 1, upstreamHits)
}
