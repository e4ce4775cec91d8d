package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kipidap/myngo-gateway/internal/guard"
	"github.com/kipidap/myngo-gateway/internal/menu"
	mw "github.com/kipidap/myngo-gateway/internal/middleware"
	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/notify"
	"github.com/kipidap/myngo-gateway/internal/session"
)

// PageHandler serves the page descriptor for any path that survived
// the navigation guard: what to render, under which layout and
// title, with which menu, plus any notices flashed since the last
// page.
type PageHandler struct {
	Store  *session.Store
	Notify *notify.Hub
}

func NewPageHandler(store *session.Store, hub *notify.Hub) *PageHandler {
	return &PageHandler{Store: store, Notify: hub}
}

type pageResp struct {
	Name    string         `json:"name"`
	Path    string         `json:"path"`
	Layout  string         `json:"layout"`
	Title   string         `json:"title"`
	Menu    []menu.Group   `json:"menu,omitempty"`
	User    *model.Session `json:"session,omitempty"`
	Notices []model.Notice `json:"notices,omitempty"`
}

// Resolve renders the descriptor for the guarded route. The guard
// has already redirected anything this session may not see.
func (h *PageHandler) Resolve(c echo.Context) error {
	rt := mw.CurrentRoute(c)
	s := mw.CurrentSession(c)

	resp := pageResp{
		Name:    rt.Name,
		Path:    c.Request().URL.Path,
		Layout:  rt.Layout,
		Title:   guard.PageTitle(rt),
		Notices: h.Notify.Drain(c.Request().Context(), mw.SessionID(c)),
	}
	if s.Authenticated && s.Principal != nil {
		resp.User = s
		resp.Menu = menu.Build(s.Principal.Role, s.Principal.IsOperator)
	}
	return ok(c, http.StatusOK, resp)
}
