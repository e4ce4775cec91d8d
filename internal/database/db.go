package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to the MySQL instance holding the notification
// history and confirms it is reachable before the consumer starts.
// History is the gateway's only table, so the pool stays small.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime so created_at scans into time.Time; loc=UTC to match
	// the UTC timestamps the consumer writes.
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the notification history table when it does
// not exist yet. The gateway owns only this table; everything else
// lives upstream.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS notifications (
			id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			subject_id VARCHAR(64)  NOT NULL,
			level      VARCHAR(16)  NOT NULL,
			title      VARCHAR(128) NOT NULL,
			message    TEXT         NOT NULL,
			source     VARCHAR(64)  NULL,
			created_at DATETIME     NOT NULL,
			PRIMARY KEY (id),
			KEY idx_subject_created (subject_id, created_at)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`)
	return err
}
