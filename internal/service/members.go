package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/notify"
	"github.com/kipidap/myngo-gateway/internal/upstream"
)

// MemberFilter narrows a member listing. Status "all" (or empty)
// means no status filter; zero page/limit fall back to the
// defaults.
type MemberFilter struct {
	Search string
	Status string
	Page   int
	Limit  int
}

// query renders the filter as upstream query parameters, omitting
// anything that is unset.
func (f MemberFilter) query() string {
	q := url.Values{}
	if s := strings.TrimSpace(f.Search); s != "" {
		q.Set("search", s)
	}
	if f.Status != "" && f.Status != "all" {
		q.Set("status", f.Status)
	}
	page, limit := f.Page, f.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q.Encode()
}

// Members manages the member directory screen: the cached listing
// with its pagination, the detail fetch, and the suspend and
// reactivate moderation actions.
type Members struct {
	state
	api    *upstream.Client
	notify notify.Notifier

	members    []model.Member
	pagination model.Pagination
	stats      *model.MemberStats
}

func NewMembers(api *upstream.Client, n notify.Notifier) *Members {
	return &Members{api: api, notify: n, pagination: model.DefaultPagination()}
}

// List returns the cached page.
func (m *Members) List() ([]model.Member, model.Pagination) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.members, m.pagination
}

// Fetch loads a member page from the upstream and replaces the
// cache. A response belonging to a superseded fetch is discarded so
// a slow earlier request cannot overwrite newer data.
func (m *Members) Fetch(ctx context.Context, s *model.Session, f MemberFilter) ([]model.Member, error) {
	seq := m.beginLoad()
	defer m.endLoad()

	var resp struct {
		Data model.MemberList `json:"data"`
	}
	err := m.api.Get(ctx, s.ID, "/members?"+f.query(), &resp)
	if err != nil {
		msg := upstream.ErrorMessage(err, "Failed to fetch members")
		m.setErr(msg)
		m.notify.Error(ctx, s, "members", msg)
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.latest(seq) {
		return resp.Data.Members, nil
	}
	m.members = resp.Data.Members
	m.pagination = resp.Data.Pagination
	return m.members, nil
}

// FetchOne loads a single member with embedded businesses and
// products. The list cache is left alone; detail screens own their
// own copy.
func (m *Members) FetchOne(ctx context.Context, s *model.Session, id string) (*model.Member, error) {
	m.beginLoad()
	defer m.endLoad()

	var resp struct {
		Data struct {
			Member model.Member `json:"member"`
		} `json:"data"`
	}
	if err := m.api.Get(ctx, s.ID, "/members/"+url.PathEscape(id), &resp); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to fetch member details")
		m.setErr(msg)
		m.notify.Error(ctx, s, "members", msg)
		return nil, err
	}
	return &resp.Data.Member, nil
}

// Suspend suspends a member, recording the operator's reason. The
// cached row flips to suspended in place on success.
func (m *Members) Suspend(ctx context.Context, s *model.Session, id, reason string) error {
	if strings.TrimSpace(reason) == "" {
		err := &ValidationError{Field: "reason", Message: "Suspension reason is required"}
		m.setErr(err.Message)
		return err
	}

	m.beginSubmit()
	defer m.endSubmit()

	body := map[string]string{"reason": reason}
	if err := m.api.Put(ctx, s.ID, "/members/"+url.PathEscape(id)+"/suspend", body, nil); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to suspend member")
		m.setErr(msg)
		m.notify.Error(ctx, s, "members", msg)
		return err
	}

	m.setStatus(id, model.MemberStatusSuspended)
	m.notify.Success(ctx, s, "members", "Member suspended successfully")
	return nil
}

// Reactivate returns a suspended member to active.
func (m *Members) Reactivate(ctx context.Context, s *model.Session, id string) error {
	m.beginSubmit()
	defer m.endSubmit()

	if err := m.api.Put(ctx, s.ID, "/members/"+url.PathEscape(id)+"/reactivate", nil, nil); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to reactivate member")
		m.setErr(msg)
		m.notify.Error(ctx, s, "members", msg)
		return err
	}

	m.setStatus(id, model.MemberStatusActive)
	m.notify.Success(ctx, s, "members", "Member reactivated successfully")
	return nil
}

// Stats loads the aggregate counters shown on the dashboard card.
func (m *Members) Stats(ctx context.Context, s *model.Session) (*model.MemberStats, error) {
	var resp struct {
		Data model.MemberStats `json:"data"`
	}
	if err := m.api.Get(ctx, s.ID, "/members/stats", &resp); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to fetch member statistics")
		m.setErr(msg)
		m.notify.Error(ctx, s, "members", msg)
		return nil, err
	}
	m.mu.Lock()
	m.stats = &resp.Data
	m.mu.Unlock()
	return &resp.Data, nil
}

// Reset drops the cache and flags, used when the screen unloads.
func (m *Members) Reset() {
	m.reset()
	m.mu.Lock()
	m.members = nil
	m.pagination = model.DefaultPagination()
	m.stats = nil
	m.mu.Unlock()
}

func (m *Members) setStatus(id, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.members {
		if m.members[i].ID == id {
			m.members[i].Status = status
			return
		}
	}
}

// ValidationError is a client-side rule violation: the operation
// never reached the network. Message is user-facing.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}
