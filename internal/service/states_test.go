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

func TestStateAdminFormCheck(t *testing.T) {
	tests := []struct {
		name string
		form StateAdminForm
		want string
	}{
		{"complete", StateAdminForm{StateID: "1", AdminName: "Ali", AdminEmail: "ali@example.com"}, ""},
		{"missing state", StateAdminForm{AdminName: "Ali", AdminEmail: "a@b.co"}, "State is required"},
		{"missing name", StateAdminForm{StateID: "1", AdminEmail: "a@b.co"}, "Admin name is required"},
		{"missing email", StateAdminForm{StateID: "1", AdminName: "Ali"}, "Admin email is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verr := tc.form.check()
			if tc.want == "" {
				assert.Nil(t, verr)
			} else {
				require.NotNil(t, verr)
				assert.Equal(t, tc.want, verr.Message)
			}
		})
	}
}

func TestRemoveAdminClearsAssignmentInPlace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(map[string]any{"data": model.StateList{States: []model.State{
				{ID: "1", Name: "Selangor", Code: "SGR", AdminID: "a1", AdminName: "Ali", AdminEmail: "ali@example.com", IsActive: true},
				{ID: "2", Name: "Johor", Code: "JHR", IsActive: true},
			}}})
		case r.Method == http.MethodDelete:
			assert.Equal(t, "/states/admin/1", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	st := NewStates(testClient(srv), &recordingNotifier{})
	s := testSession()

	_, err := st.FetchWithAdmins(context.Background(), s)
	require.NoError(t, err)
	require.NoError(t, st.RemoveAdmin(context.Background(), s, "1"))

	states := st.List()
	require.Len(t, states, 2)
	assert.Empty(t, states[0].AdminID)
	assert.Empty(t, states[0].AdminName)
	assert.Equal(t, "Selangor", states[0].Name, "the state row itself survives")
}

func TestAssignAdminValidatesBeforeNetwork(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits++ }))
	defer srv.Close()

	st := NewStates(testClient(srv), &recordingNotifier{})
	err := st.AssignAdmin(context.Background(), testSession(), StateAdminForm{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, hits)
}
