package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kipidap/myngo-gateway/internal/model"
)

func dashboardServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin-dashboard/overview":
			json.NewEncoder(w).Encode(map[string]any{"data": model.DashboardData{
				Stats: model.DashboardStats{TotalMembers: 100, TotalProducts: 40, TotalPendingApplications: 5},
				StateData: []model.StateOverview{
					{ID: 1, Name: "Selangor", Code: "SGR", Members: 60},
					{ID: 2, Name: "Johor", Code: "JHR", Members: 40},
				},
			}})
		case "/admin-dashboard/stats":
			json.NewEncoder(w).Encode(map[string]any{"data": model.DashboardStats{
				TotalMembers: 101, TotalProducts: 40, TotalPendingApplications: 4,
			}})
		case "/admin-dashboard/state-overview":
			json.NewEncoder(w).Encode(map[string]any{"data": []model.StateOverview{
				{ID: 1, Name: "Selangor", Code: "SGR", Members: 61},
			}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
}

func TestPartialFetchesUpdateOnlyTheirSlice(t *testing.T) {
	srv := dashboardServer(t)
	defer srv.Close()

	d := NewDashboard(testClient(srv), &recordingNotifier{})
	s := testSession()
	ctx := context.Background()

	_, err := d.FetchOverview(ctx, s)
	require.NoError(t, err)

	// Stats refresh leaves the state table alone.
	_, err = d.FetchStats(ctx, s)
	require.NoError(t, err)
	data := d.Data()
	assert.Equal(t, 101, data.Stats.TotalMembers)
	assert.Len(t, data.StateData, 2, "state table untouched by a stats refresh")

	// State refresh leaves the counters alone.
	_, err = d.FetchStateOverview(ctx, s)
	require.NoError(t, err)
	data = d.Data()
	assert.Equal(t, 101, data.Stats.TotalMembers)
	require.Len(t, data.StateData, 1)
	assert.Equal(t, 61, data.StateData[0].Members)
}

func TestDashboardReset(t *testing.T) {
	srv := dashboardServer(t)
	defer srv.Close()

	d := NewDashboard(testClient(srv), &recordingNotifier{})
	_, err := d.FetchOverview(context.Background(), testSession())
	require.NoError(t, err)

	d.Reset()
	assert.Equal(t, model.DashboardData{}, d.Data())
	assert.Empty(t, d.Err())
}
