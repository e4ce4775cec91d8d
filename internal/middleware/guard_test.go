package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/repository"
	"github.com/kipidap/myngo-gateway/internal/session"
)

func testStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(repository.NewSessionRepo(repository.NewMemoryKV(), time.Hour))
}

func loginAs(t *testing.T, store *session.Store, sid string, role model.Role, operator bool) {
	t.Helper()
	_, err := store.SetSession(context.Background(), sid, model.LoginResult{
		User:        model.Principal{SubjectID: "u1", Role: role},
		AccessToken: "tok",
		IsOperator:  operator,
	})
	require.NoError(t, err)
}

// serve runs one request through the session and guard middleware
// into a probe handler.
func serve(store *session.Store, target, cookie string) (*httptest.ResponseRecorder, *bool) {
	e := echo.New()
	reached := false
	h := DeviceSession(store, "myngo_session", time.Hour)(
		PageGuard(nil)(func(c echo.Context) error {
			reached = true
			return c.String(http.StatusOK, CurrentRoute(c).Name)
		}))

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "myngo_session", Value: cookie})
	}
	rec := httptest.NewRecorder()
	_ = h(e.NewContext(req, rec))
	return rec, &reached
}

func TestAnonymousProtectedRedirectsToLogin(t *testing.T) {
	rec, reached := serve(testStore(t), "/admin/members?page=2", "")

	assert.False(t, *reached)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?redirect=%2Fadmin%2Fmembers%3Fpage%3D2", rec.Header().Get("Location"))
	assert.Equal(t, "Members | myNGO", rec.Header().Get(PageTitleHeader), "title is set even on redirects")
}

func TestFirstVisitMintsCookie(t *testing.T) {
	rec, _ := serve(testStore(t), "/login", "")
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "myngo_session", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestAuthedSessionReachesItsPages(t *testing.T) {
	store := testStore(t)
	loginAs(t, store, "sid1", model.RoleUser, false)

	rec, reached := serve(store, "/user/dashboard", "sid1")
	assert.True(t, *reached)
	assert.Equal(t, "user-dashboard", rec.Body.String())
	assert.Equal(t, "Dashboard | myNGO", rec.Header().Get(PageTitleHeader))
}

func TestAuthedLoginBouncesToDashboard(t *testing.T) {
	store := testStore(t)
	loginAs(t, store, "sid1", model.RoleAdmin, false)

	rec, reached := serve(store, "/login", "sid1")
	assert.False(t, *reached)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))
}

func TestAliasRedirects(t *testing.T) {
	rec, reached := serve(testStore(t), "/signin", "")
	assert.False(t, *reached)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestOperatorGrantOpensOperatorPages(t *testing.T) {
	store := testStore(t)
	loginAs(t, store, "sid1", model.RoleUser, true)

	rec, reached := serve(store, "/operator/members", "sid1")
	assert.True(t, *reached)
	assert.Equal(t, "operator-members", rec.Body.String())

	// Without the grant the same session is bounced home.
	loginAs(t, store, "sid2", model.RoleUser, false)
	rec, reached = serve(store, "/operator/members", "sid2")
	assert.False(t, *reached)
	assert.Equal(t, "/user/dashboard", rec.Header().Get("Location"))
}
