// Package queue defines message payloads exchanged over the
// message broker, plus the publisher and consumer for the
// user-notification stream.
package queue

// UserNotificationEvent is published whenever a domain operation
// emits a user-facing notice. It carries enough for downstream
// consumers to persist history or fan out to other channels
// without talking back to the gateway.
type UserNotificationEvent struct {
	SubjectID string `json:"subject_id"`
	Level     string `json:"level"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Source    string `json:"source"`
	EmittedAt string `json:"emitted_at"`
}
