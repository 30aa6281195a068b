package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"alugaki/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

// SessionDB stores the single durable record of the system: the serialized
// active session user, kept under one well-known key.
type SessionDB struct {
	db  *sql.DB
	key string
}

func NewSessionDB(path, key string) (*SessionDB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %v", err)
	}

	return &SessionDB{db: db, key: key}, nil
}

func createTables(db *sql.DB) error {
	query := `CREATE TABLE IF NOT EXISTS session (
            key TEXT PRIMARY KEY,
            payload TEXT NOT NULL,
            updated_at TIMESTAMP NOT NULL
        )`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("error creating session table: %v", err)
	}
	return nil
}

func (s *SessionDB) Load(ctx context.Context) (*models.User, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM session WHERE key = ?`, s.key).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session record: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(payload), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session user: %w", err)
	}
	return &user, nil
}

func (s *SessionDB) Save(ctx context.Context, user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal session user: %w", err)
	}

	query := `INSERT INTO session (key, payload, updated_at) VALUES (?, ?, ?)
              ON CONFLICT(key) DO UPDATE SET
                payload = excluded.payload,
                updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, s.key, string(raw), time.Now()); err != nil {
		return fmt.Errorf("failed to save session record: %w", err)
	}
	return nil
}

func (s *SessionDB) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, s.key); err != nil {
		return fmt.Errorf("failed to clear session record: %w", err)
	}
	return nil
}

func (s *SessionDB) Close() error {
	return s.db.Close()
}
