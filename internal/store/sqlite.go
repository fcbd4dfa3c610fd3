package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vibe-trading/waitlist-platform/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (and if needed creates) the subscriber database.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	// WAL mode for concurrent readers alongside the write path.
	dsn := dbPath + "?_journal=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS subscribers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT UNIQUE NOT NULL,
		status TEXT NOT NULL DEFAULT 'waitlist',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_subscribers_created ON subscribers(created_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Add inserts a new subscriber at the waitlist tier. Duplicate emails
// are reported as ErrDuplicateEmail so callers can treat the remote
// subscribe as idempotent.
func (s *SQLiteStore) Add(ctx context.Context, email string) (*model.Subscriber, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO subscribers (email, status, created_at) VALUES (?, ?, ?)`,
		email, string(model.StatusWaitlist), now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert subscriber: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return &model.Subscriber{
		ID:        id,
		Email:     email,
		Status:    model.StatusWaitlist,
		CreatedAt: now,
	}, nil
}

// GetByID looks up one subscriber.
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (*model.Subscriber, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, status, created_at FROM subscribers WHERE id = ?`, id)
	return scanSubscriber(row)
}

// GetByEmail looks up one subscriber by address.
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, status, created_at FROM subscribers WHERE email = ?`, email)
	return scanSubscriber(row)
}

// SetStatus updates a subscriber's tier.
func (s *SQLiteStore) SetStatus(ctx context.Context, id int64, status model.SubscriberStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE subscribers SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all subscribers, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]model.Subscriber, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, status, created_at FROM subscribers ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var out []model.Subscriber
	for rows.Next() {
		var sub model.Subscriber
		var status string
		if err := rows.Scan(&sub.ID, &sub.Email, &status, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		sub.Status = model.SubscriberStatus(status)
		out = append(out, sub)
	}
	return out, rows.Err()
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanSubscriber(row *sql.Row) (*model.Subscriber, error) {
	var sub model.Subscriber
	var status string
	if err := row.Scan(&sub.ID, &sub.Email, &status, &sub.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan subscriber: %w", err)
	}
	sub.Status = model.SubscriberStatus(status)
	return &sub, nil
}

// isUniqueViolation detects the SQLITE_CONSTRAINT_UNIQUE error from the
// driver without importing its error codes.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
