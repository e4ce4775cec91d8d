package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/repository"
)

func newTestStore() *Store {
	return NewStore(repository.NewSessionRepo(repository.NewMemoryKV(), time.Hour))
}

func login() model.LoginResult {
	return model.LoginResult{
		User:        model.Principal{SubjectID: "u1", FullName: "Aminah", Email: "a@example.com", Role: model.RoleUser},
		AccessToken: "tok-1",
		CSRFToken:   "csrf-1",
	}
}

func TestResolveUnknownIsAnonymous(t *testing.T) {
	st := newTestStore()
	s := st.Resolve(context.Background(), "nope")
	assert.False(t, s.Authenticated)
	assert.Nil(t, s.Principal)
	assert.False(t, st.IsAuthenticated(context.Background(), "nope"))
}

func TestSetSessionInstallsAtomically(t *testing.T) {
	st := newTestStore()
	s, err := st.SetSession(context.Background(), "sid1", login())
	require.NoError(t, err)

	assert.True(t, s.Authenticated)
	require.NotNil(t, s.Principal)
	assert.Equal(t, "u1", s.Principal.SubjectID)
	assert.Equal(t, "tok-1", s.AccessToken)
	assert.Equal(t, "csrf-1", s.CSRFToken)

	// A second store sees the same state through Resolve.
	other := newTestStoreSharing(st)
	got := other.Resolve(context.Background(), "sid1")
	assert.True(t, got.Authenticated)
	assert.Equal(t, "tok-1", got.AccessToken)
}

// newTestStoreSharing builds a second store over the same repo,
// simulating a restart that rehydrates from durable storage.
func newTestStoreSharing(st *Store) *Store { return NewStore(st.repo) }

func TestSetSessionGeneratesCSRFWhenMissing(t *testing.T) {
	st := newTestStore()
	res := login()
	res.CSRFToken = ""
	s, err := st.SetSession(context.Background(), "sid1", res)
	require.NoError(t, err)
	assert.NotEmpty(t, s.CSRFToken)
}

func TestUpdateTokenRotates(t *testing.T) {
	st := newTestStore()
	_, err := st.SetSession(context.Background(), "sid1", login())
	require.NoError(t, err)

	st.UpdateToken(context.Background(), "sid1", "tok-2")
	assert.Equal(t, "tok-2", st.Token(context.Background(), "sid1"))

	// The rotated token survives rehydration.
	other := newTestStoreSharing(st)
	assert.Equal(t, "tok-2", other.Token(context.Background(), "sid1"))
	assert.True(t, other.IsAuthenticated(context.Background(), "sid1"))
}

func TestClearIsIdempotentAndRunsHooks(t *testing.T) {
	st := newTestStore()
	_, err := st.SetSession(context.Background(), "sid1", login())
	require.NoError(t, err)

	var calls []string
	st.OnClear(func(sid string) { calls = append(calls, sid) })

	st.Clear(context.Background(), "sid1")
	st.Clear(context.Background(), "sid1") // second clear is a no-op on state

	assert.False(t, st.IsAuthenticated(context.Background(), "sid1"))
	assert.Empty(t, st.Token(context.Background(), "sid1"))
	assert.Equal(t, []string{"sid1", "sid1"}, calls)
}

func TestClearPreservesTheme(t *testing.T) {
	st := newTestStore()
	_, err := st.SetSession(context.Background(), "sid1", login())
	require.NoError(t, err)

	prefs := repository.ThemePrefs{Theme: "dark", Color: "blue", Radius: "0.5"}
	require.NoError(t, st.SetTheme(context.Background(), "sid1", prefs))

	st.Clear(context.Background(), "sid1")
	assert.Equal(t, prefs, st.Theme(context.Background(), "sid1"))
}
