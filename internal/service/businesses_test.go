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

func validForm() model.BusinessForm {
	return model.BusinessForm{
		Name:     "Kilang Maju Sdn Bhd",
		SSM:      "123456789012",
		Address:  "Lot 5, Jalan Industri",
		Phone:    "0123456789",
		Type:     model.BusinessTypeSdnBhd,
		Sector:   model.BusinessSectorManufacturing,
		Category: model.BusinessCategorySmall,
	}
}

func TestFormValidation(t *testing.T) {
	b := NewBusinesses(nil, &recordingNotifier{})

	tests := []struct {
		name    string
		mutate  func(*model.BusinessForm)
		wantMsg string
	}{
		{"valid", func(f *model.BusinessForm) {}, ""},
		{"ssm with separators", func(f *model.BusinessForm) { f.SSM = "1234-5678 9012" }, ""},
		{"ssm too short", func(f *model.BusinessForm) { f.SSM = "12345" }, "Invalid SSM number format (12 digits required)"},
		{"ssm letters", func(f *model.BusinessForm) { f.SSM = "12345678901a" }, "Invalid SSM number format (12 digits required)"},
		{"missing name", func(f *model.BusinessForm) { f.Name = "" }, "Company name is required"},
		{"missing address", func(f *model.BusinessForm) { f.Address = "" }, "Business address is required"},
		{"phone country prefix", func(f *model.BusinessForm) { f.Phone = "+60 12-345 6789" }, ""},
		{"phone garbage", func(f *model.BusinessForm) { f.Phone = "abc" }, "Invalid phone number format"},
		{"mof flag without number", func(f *model.BusinessForm) { f.MOFRegistration = true }, "MOF Registration Number is required when MOF Registration is selected"},
		{"mof flag with number", func(f *model.BusinessForm) {
			f.MOFRegistration = true
			f.MOFRegistrationNumber = "MOF-123"
		}, ""},
		{"bad url", func(f *model.BusinessForm) { f.URL = "example.com" }, "Invalid URL format"},
		{"good url", func(f *model.BusinessForm) { f.URL = "https://example.com" }, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			tc.mutate(&form)
			verr := b.checkForm(form)
			if tc.wantMsg == "" {
				assert.Nil(t, verr)
			} else {
				require.NotNil(t, verr)
				assert.Equal(t, tc.wantMsg, verr.Message)
			}
		})
	}
}

func TestFormValidationReportsFirstErrorOnly(t *testing.T) {
	b := NewBusinesses(nil, &recordingNotifier{})
	form := validForm()
	form.Name = ""
	form.SSM = "bad"
	form.Phone = "bad"

	verr := b.checkForm(form)
	require.NotNil(t, verr)
	assert.Equal(t, "Company name is required", verr.Message, "fields are reported in declaration order, one at a time")
}

func TestCreateValidatesBeforeNetwork(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	notices := &recordingNotifier{}
	b := NewBusinesses(testClient(srv), notices)

	form := validForm()
	form.SSM = "12"
	_, err := b.Create(context.Background(), testSession(), form)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, hits, "invalid forms never reach the upstream")
	assert.Equal(t, "Invalid SSM number format (12 digits required)", notices.lastError())
	assert.Equal(t, verr.Message, b.Err())
}

func TestCreateAppendsExactlyOne(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(map[string]any{"data": model.BusinessList{
				Businesses: []model.Business{{ID: "b1", Name: "Existing"}},
				Pagination: model.Pagination{Page: 1, Limit: 10, Total: 1},
			}})
		case r.Method == http.MethodPost:
			var form model.BusinessForm
			json.NewDecoder(r.Body).Decode(&form)
			json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{
				"business": model.Business{ID: "b2", Name: form.Name, SSM: form.SSM},
			}})
		}
	}))
	defer srv.Close()

	notices := &recordingNotifier{}
	b := NewBusinesses(testClient(srv), notices)
	s := testSession()

	_, err := b.Fetch(context.Background(), s)
	require.NoError(t, err)

	created, err := b.Create(context.Background(), s, validForm())
	require.NoError(t, err)
	assert.Equal(t, "b2", created.ID)

	list, pagination := b.List()
	require.Len(t, list, 2)
	assert.Equal(t, "b2", list[1].ID)
	assert.Equal(t, 2, pagination.Total)
	assert.Contains(t, notices.successes, "Business registered successfully")
}

func TestDeleteRemovesFromCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]any{"data": model.BusinessList{
				Businesses: []model.Business{{ID: "b1"}, {ID: "b2"}},
				Pagination: model.Pagination{Page: 1, Limit: 10, Total: 2},
			}})
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	b := NewBusinesses(testClient(srv), &recordingNotifier{})
	s := testSession()

	_, err := b.Fetch(context.Background(), s)
	require.NoError(t, err)
	require.NoError(t, b.Delete(context.Background(), s, "b1"))

	list, pagination := b.List()
	require.Len(t, list, 1)
	assert.Equal(t, "b2", list[0].ID)
	assert.Equal(t, 1, pagination.Total)
}

func TestUpstreamErrorSurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"SSM number already registered"}`))
	}))
	defer srv.Close()

	notices := &recordingNotifier{}
	b := NewBusinesses(testClient(srv), notices)

	_, err := b.Create(context.Background(), testSession(), validForm())
	require.Error(t, err)
	assert.Equal(t, "SSM number already registered", notices.lastError())
	assert.Equal(t, "SSM number already registered", b.Err())
}
