package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/kipidap/myngo-gateway/internal/model"
)

// NotificationRepo persists the notification history backing the
// /notifications page. Rows are written by the queue consumer and
// read per subject, newest first.
type NotificationRepo struct{ DB *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

// Insert appends one history row.
func (r *NotificationRepo) Insert(ctx context.Context, n model.Notification) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO notifications (subject_id, level, title, message, source, created_at) VALUES (?,?,?,?,?,?)",
		n.SubjectID, n.Level, n.Title, n.Message, n.Source, n.CreatedAt.UTC())
	return err
}

// ListBySubject returns up to limit rows for a subject, newest first.
func (r *NotificationRepo) ListBySubject(ctx context.Context, subjectID string, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, subject_id, level, title, message, source, created_at FROM notifications WHERE subject_id=? ORDER BY created_at DESC, id DESC LIMIT ?",
		subjectID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		var (
			n      model.Notification
			source sql.NullString
			at     time.Time
		)
		if err := rows.Scan(&n.ID, &n.SubjectID, &n.Level, &n.Title, &n.Message, &source, &at); err != nil {
			return nil, err
		}
		n.Source = source.String
		n.CreatedAt = at
		out = append(out, n)
	}
	return out, rows.Err()
}
