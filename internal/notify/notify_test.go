package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/queue"
	"github.com/kipidap/myngo-gateway/internal/repository"
)

func testHub() (*Hub, *[]queue.UserNotificationEvent, *sync.Mutex) {
	h := NewHub(repository.NewMemoryKV())
	var (
		mu     sync.Mutex
		events []queue.UserNotificationEvent
	)
	h.publish = func(_ context.Context, ev queue.UserNotificationEvent) error {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
		return nil
	}
	return h, &events, &mu
}

func authedSession() *model.Session {
	return &model.Session{
		ID:            "sid1",
		Principal:     &model.Principal{SubjectID: "u1", Role: model.RoleUser},
		AccessToken:   "tok",
		Authenticated: true,
	}
}

func TestFlashAndDrain(t *testing.T) {
	h, _, _ := testHub()
	ctx := context.Background()
	s := authedSession()

	h.Success(ctx, s, "businesses", "Business registered successfully")
	h.Error(ctx, s, "members", "Failed to fetch members")

	notices := h.Drain(ctx, "sid1")
	require.Len(t, notices, 2)
	assert.Equal(t, model.NoticeSuccess, notices[0].Level)
	assert.Equal(t, "Business registered successfully", notices[0].Message)
	assert.Equal(t, model.NoticeError, notices[1].Level)

	// Draining consumes.
	assert.Empty(t, h.Drain(ctx, "sid1"))
}

func TestEmitPublishesEvent(t *testing.T) {
	h, events, mu := testHub()
	h.Success(context.Background(), authedSession(), "profile", "Profile updated successfully")

	// The publish is fire-and-forget on a goroutine.
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(*events) == 1
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	ev := (*events)[0]
	assert.Equal(t, "u1", ev.SubjectID)
	assert.Equal(t, "profile", ev.Source)
	assert.Equal(t, model.NoticeSuccess, ev.Level)
}

func TestAnonymousSessionIsIgnored(t *testing.T) {
	h, events, mu := testHub()
	h.Success(context.Background(), nil, "x", "msg")
	h.Success(context.Background(), &model.Session{}, "x", "msg")

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, *events)
}

func TestDropSessionDiscardsPending(t *testing.T) {
	h, _, _ := testHub()
	ctx := context.Background()

	h.Success(ctx, authedSession(), "x", "msg")
	h.DropSession("sid1")
	assert.Empty(t, h.Drain(ctx, "sid1"))
}
