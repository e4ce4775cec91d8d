package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kipidap/myngo-gateway/internal/model"
)

func TestMemberFilterQuery(t *testing.T) {
	tests := []struct {
		name   string
		filter MemberFilter
		want   string
	}{
		{"defaults", MemberFilter{}, "limit=10&page=1"},
		{"search trimmed", MemberFilter{Search: "  ali  "}, "limit=10&page=1&search=ali"},
		{"status all omitted", MemberFilter{Status: "all"}, "limit=10&page=1"},
		{"status kept", MemberFilter{Status: "suspended"}, "limit=10&page=1&status=suspended"},
		{"paging", MemberFilter{Page: 3, Limit: 25}, "limit=25&page=3"},
		{"everything", MemberFilter{Search: "maju", Status: "active", Page: 2, Limit: 50}, "limit=50&page=2&search=maju&status=active"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filter.query())
		})
	}
}

func TestFetchPopulatesCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/members", r.URL.Path)
		assert.Equal(t, "suspended", r.URL.Query().Get("status"))
		json.NewEncoder(w).Encode(map[string]any{"data": model.MemberList{
			Members:    []model.Member{{ID: "m1", Name: "Ali", Status: model.MemberStatusSuspended}},
			Pagination: model.Pagination{Page: 1, Limit: 10, Total: 1, TotalPages: 1},
		}})
	}))
	defer srv.Close()

	m := NewMembers(testClient(srv), &recordingNotifier{})
	got, err := m.Fetch(context.Background(), testSession(), MemberFilter{Status: "suspended"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	cached, pagination := m.List()
	assert.Equal(t, "m1", cached[0].ID)
	assert.Equal(t, 1, pagination.Total)
	assert.False(t, m.IsLoading())
}

func TestStaleResponseDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := "fresh"
		if r.URL.Query().Get("page") == "1" {
			close(started)
			<-release // hold the first request until the second finished
			name = "stale"
		}
		json.NewEncoder(w).Encode(map[string]any{"data": model.MemberList{
			Members:    []model.Member{{ID: name, Name: name}},
			Pagination: model.Pagination{Page: 1, Limit: 10, Total: 1},
		}})
	}))
	defer srv.Close()

	m := NewMembers(testClient(srv), &recordingNotifier{})
	s := testSession()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.Fetch(context.Background(), s, MemberFilter{Page: 1})
	}()

	// The slow fetch must claim its sequence number before the fast
	// one starts, or there is nothing to supersede.
	<-started
	_, err := m.Fetch(context.Background(), s, MemberFilter{Page: 2})
	require.NoError(t, err)

	close(release)
	wg.Wait()

	cached, _ := m.List()
	require.Len(t, cached, 1)
	assert.Equal(t, "fresh", cached[0].ID, "the superseded response must not overwrite newer data")
}

func TestSuspendRequiresReason(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits++ }))
	defer srv.Close()

	m := NewMembers(testClient(srv), &recordingNotifier{})
	err := m.Suspend(context.Background(), testSession(), "m1", "   ")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Suspension reason is required", verr.Message)
	assert.Zero(t, hits)
}

func TestSuspendFlipsCachedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]any{"data": model.MemberList{
				Members:    []model.Member{{ID: "m1", Status: model.MemberStatusActive}},
				Pagination: model.Pagination{Page: 1, Limit: 10, Total: 1},
			}})
		case http.MethodPut:
			assert.Equal(t, "/members/m1/suspend", r.URL.Path)
			var body struct {
				Reason string `json:"reason"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "fraudulent listings", body.Reason)
			w.Write([]byte(`{}`))
		}
	}))
	defer srv.Close()

	notices := &recordingNotifier{}
	m := NewMembers(testClient(srv), notices)
	s := testSession()

	_, err := m.Fetch(context.Background(), s, MemberFilter{})
	require.NoError(t, err)
	require.NoError(t, m.Suspend(context.Background(), s, "m1", "fraudulent listings"))

	cached, _ := m.List()
	assert.Equal(t, model.MemberStatusSuspended, cached[0].Status)
	assert.Contains(t, notices.successes, "Member suspended successfully")
}
