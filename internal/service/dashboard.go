package service

import (
	"context"

	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/notify"
	"github.com/kipidap/myngo-gateway/internal/upstream"
)

// Dashboard manages the admin dashboard aggregate. The overview
// fetch replaces the whole aggregate; the stats and state-overview
// fetches update only their own part, leaving the rest of the cache
// as the last overview left it.
type Dashboard struct {
	state
	api    *upstream.Client
	notify notify.Notifier

	data model.DashboardData
}

func NewDashboard(api *upstream.Client, n notify.Notifier) *Dashboard {
	return &Dashboard{api: api, notify: n}
}

// Data returns the cached aggregate.
func (d *Dashboard) Data() model.DashboardData {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.data
}

// FetchOverview loads the full aggregate.
func (d *Dashboard) FetchOverview(ctx context.Context, s *model.Session) (model.DashboardData, error) {
	seq := d.beginLoad()
	defer d.endLoad()

	var resp struct {
		Data model.DashboardData `json:"data"`
	}
	if err := d.api.Get(ctx, s.ID, "/admin-dashboard/overview", &resp); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to fetch dashboard data")
		d.setErr(msg)
		d.notify.Error(ctx, s, "dashboard", msg)
		return model.DashboardData{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.latest(seq) {
		d.data = resp.Data
	}
	return resp.Data, nil
}

// FetchStats refreshes only the headline counters.
func (d *Dashboard) FetchStats(ctx context.Context, s *model.Session) (model.DashboardStats, error) {
	var resp struct {
		Data model.DashboardStats `json:"data"`
	}
	if err := d.api.Get(ctx, s.ID, "/admin-dashboard/stats", &resp); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to fetch dashboard statistics")
		d.setErr(msg)
		d.notify.Error(ctx, s, "dashboard", msg)
		return model.DashboardStats{}, err
	}
	d.mu.Lock()
	d.data.Stats = resp.Data
	d.mu.Unlock()
	return resp.Data, nil
}

// FetchStateOverview refreshes only the per-state table.
func (d *Dashboard) FetchStateOverview(ctx context.Context, s *model.Session) ([]model.StateOverview, error) {
	var resp struct {
		Data []model.StateOverview `json:"data"`
	}
	if err := d.api.Get(ctx, s.ID, "/admin-dashboard/state-overview", &resp); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to fetch state overview")
		d.setErr(msg)
		d.notify.Error(ctx, s, "dashboard", msg)
		return nil, err
	}
	d.mu.Lock()
	d.data.StateData = resp.Data
	d.mu.Unlock()
	return resp.Data, nil
}

// Reset drops the cache and flags.
func (d *Dashboard) Reset() {
	d.reset()
	d.mu.Lock()
	d.data = model.DashboardData{}
	d.mu.Unlock()
}
