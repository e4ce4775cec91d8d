// Package notify carries user-facing notices from domain
// operations to the client: the server-side stand-in for the
// original's toast popups. Notices are flashed per session (read
// once, then gone) and mirrored onto the message broker so the
// notification history fills up out-of-band.
package notify

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/queue"
	"github.com/kipidap/myngo-gateway/internal/repository"
)

// Notifier is what domain services emit notices through.
type Notifier interface {
	Success(ctx context.Context, s *model.Session, source, message string)
	Error(ctx context.Context, s *model.Session, source, message string)
}

// flashTTL bounds how long an undrained flash survives; a client
// that never comes back should not leak keys forever.
const flashTTL = 15 * time.Minute

// Hub is the standard Notifier: per-session flash list in the KV
// store plus a fire-and-forget broker publish. Publishing never
// blocks the emitting operation and its failures only get logged.
type Hub struct {
	kv repository.KV

	// mu serializes the read-modify-write of a session's flash
	// list; notices are tiny and rare so one lock is plenty.
	mu sync.Mutex

	// publish is swappable for tests; defaults to the AMQP
	// publisher.
	publish func(ctx context.Context, ev queue.UserNotificationEvent) error
}

func NewHub(kv repository.KV) *Hub {
	return &Hub{kv: kv, publish: queue.PublishUserNotification}
}

func (h *Hub) Success(ctx context.Context, s *model.Session, source, message string) {
	h.emit(ctx, s, model.Notice{Level: model.NoticeSuccess, Title: "Success", Message: message}, source)
}

func (h *Hub) Error(ctx context.Context, s *model.Session, source, message string) {
	h.emit(ctx, s, model.Notice{Level: model.NoticeError, Title: "Error", Message: message}, source)
}

func (h *Hub) emit(ctx context.Context, s *model.Session, n model.Notice, source string) {
	if s == nil || s.ID == "" {
		return
	}
	h.mu.Lock()
	var pending []model.Notice
	key := flashKey(s.ID)
	_ = repository.GetJSON(ctx, h.kv, key, &pending) // absent list is an empty list
	pending = append(pending, n)
	if err := repository.SetJSON(ctx, h.kv, key, pending, flashTTL); err != nil {
		log.Printf("notify: store flash: %v", err)
	}
	h.mu.Unlock()

	var subject string
	if s.Principal != nil {
		subject = s.Principal.SubjectID
	}
	ev := queue.UserNotificationEvent{
		SubjectID: subject,
		Level:     n.Level,
		Title:     n.Title,
		Message:   n.Message,
		Source:    source,
		EmittedAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		// Detached from the request context on purpose; a finished
		// request must not cancel the publish.
		pctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.publish(pctx, ev)
	}()
}

// Drain returns and clears the session's pending notices.
func (h *Hub) Drain(ctx context.Context, sid string) []model.Notice {
	h.mu.Lock()
	defer h.mu.Unlock()
	var pending []model.Notice
	key := flashKey(sid)
	if err := repository.GetJSON(ctx, h.kv, key, &pending); err != nil {
		return nil
	}
	_ = h.kv.Del(ctx, key)
	return pending
}

// DropSession discards any pending flashes; hooked into session
// clear so a logout does not leave notices for the next login.
func (h *Hub) DropSession(sid string) {
	_ = h.kv.Del(context.Background(), flashKey(sid))
}

func flashKey(sid string) string {
	return "flash:" + repository.HashSessionID(sid)
}
