package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kipidap/myngo-gateway/internal/guard"
	mw "github.com/kipidap/myngo-gateway/internal/middleware"
	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/session"
	"github.com/kipidap/myngo-gateway/internal/upstream"
	"github.com/kipidap/myngo-gateway/internal/utils"
)

// AuthHandler proxies the authentication flow to the upstream and
// installs the resulting session. It is the only handler that calls
// the upstream client directly.
type AuthHandler struct {
	API   *upstream.Client
	Store *session.Store
}

func NewAuthHandler(api *upstream.Client, store *session.Store) *AuthHandler {
	return &AuthHandler{API: api, Store: store}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type otpReq struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// loginResp is what the client gets after a session is installed:
// the session state plus where its role should land.
type loginResp struct {
	Session  *model.Session `json:"session"`
	Redirect string         `json:"redirect"`
}

// Login verifies credentials against the upstream. A success may
// either complete immediately (returning the session) or demand an
// OTP step, which the upstream signals with otp_required.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and password are required"})
	}

	sid := mw.SessionID(c)
	var resp struct {
		Data struct {
			OTPRequired bool `json:"otp_required"`
			model.LoginResult
		} `json:"data"`
	}
	if err := h.API.Post(c.Request().Context(), sid, "/auth/login", req, &resp); err != nil {
		return fail(c, err, "Login failed. Please check your credentials.")
	}

	if resp.Data.OTPRequired {
		return ok(c, http.StatusOK, echo.Map{"otp_required": true, "email": req.Email})
	}
	return h.install(c, sid, resp.Data.LoginResult)
}

// VerifyOTP completes a two-step login.
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req otpReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.OTP == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and OTP are required"})
	}

	sid := mw.SessionID(c)
	var resp struct {
		Data model.LoginResult `json:"data"`
	}
	if err := h.API.Post(c.Request().Context(), sid, "/auth/verify-otp", req, &resp); err != nil {
		return fail(c, err, "OTP verification failed")
	}
	return h.install(c, sid, resp.Data)
}

func (h *AuthHandler) install(c echo.Context, sid string, res model.LoginResult) error {
	s, err := h.Store.SetSession(c.Request().Context(), sid, res)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to persist session"})
	}
	return ok(c, http.StatusOK, loginResp{
		Session:  s,
		Redirect: guard.DashboardPath(s.Principal.Role),
	})
}

// Register forwards a registration application. No session is
// installed; the applicant still has to log in once approved.
func (h *AuthHandler) Register(c echo.Context) error {
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var resp struct {
		Data map[string]any `json:"data"`
	}
	if err := h.API.Post(c.Request().Context(), mw.SessionID(c), "/auth/register", body, &resp); err != nil {
		return fail(c, err, "Registration failed")
	}
	return ok(c, http.StatusCreated, resp.Data)
}

// ForgotPassword forwards a reset request.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email is required"})
	}
	if err := h.API.Post(c.Request().Context(), mw.SessionID(c), "/auth/forgot-password", req, nil); err != nil {
		return fail(c, err, "Failed to request password reset")
	}
	return ok(c, http.StatusOK, echo.Map{"message": "Password reset email sent"})
}

// Logout tells the upstream, then clears the local session. The
// upstream call is best effort: a dead upstream must never trap a
// visitor in a session they asked to leave.
func (h *AuthHandler) Logout(c echo.Context) error {
	sid := mw.SessionID(c)
	_ = h.API.Post(c.Request().Context(), sid, "/auth/logout", nil, nil)
	h.Store.Clear(c.Request().Context(), sid)
	return c.NoContent(http.StatusNoContent)
}

// refreshWindow is how close to expiry a token has to be before a
// refresh request actually hits the upstream.
const refreshWindow = 2 * time.Minute

// Refresh rotates the access token ahead of expiry. When the
// current token still has life beyond the window the round trip is
// skipped; clients may call this freely on a timer.
func (h *AuthHandler) Refresh(c echo.Context) error {
	sid := mw.SessionID(c)
	if tok := h.Store.Token(c.Request().Context(), sid); tok != "" {
		if info, err := utils.InspectToken(tok); err == nil && !info.ExpiresWithin(refreshWindow) {
			return c.NoContent(http.StatusNoContent)
		}
	}
	if err := h.API.RefreshToken(c.Request().Context(), sid); err != nil {
		return fail(c, err, "Failed to refresh session")
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the current session state, the equivalent of the
// client rehydrating its stores on boot.
func (h *AuthHandler) Me(c echo.Context) error {
	return ok(c, http.StatusOK, mw.CurrentSession(c))
}
