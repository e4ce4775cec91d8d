package service

import (
	"context"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/upstream"
)

// tokenStub satisfies upstream.TokenSource with a fixed token.
type tokenStub struct{}

func (tokenStub) Token(context.Context, string) string        { return "tok" }
func (tokenStub) UpdateToken(context.Context, string, string) {}
func (tokenStub) Clear(context.Context, string)               {}

// recordingNotifier captures emitted notices for assertions.
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (r *recordingNotifier) Success(_ context.Context, _ *model.Session, _, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, message)
}

func (r *recordingNotifier) Error(_ context.Context, _ *model.Session, _, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, message)
}

func (r *recordingNotifier) lastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errors) == 0 {
		return ""
	}
	return r.errors[len(r.errors)-1]
}

func testClient(srv *httptest.Server) *upstream.Client {
	return upstream.New(srv.URL, 5*time.Second, 0, tokenStub{})
}

func testSession() *model.Session {
	return &model.Session{
		ID:            "sid1",
		Principal:     &model.Principal{SubjectID: "u1", Role: model.RoleUser},
		AccessToken:   "tok",
		Authenticated: true,
	}
}
