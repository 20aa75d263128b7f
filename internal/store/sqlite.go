package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/domain"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/shared"
)

const (
	maxWriteRetries = 3
	writeRetryDelay = 50 * time.Millisecond
)

// SQLiteStore implements Repository on SQLite. Session state survives
// restarts, useful when a long-running engagement must outlive a
// deploy.
type SQLiteStore struct {
	db *sql.DB
	// serialize writes to avoid SQLITE_BUSY under concurrent turns
	writeMu sync.Mutex
}

// NewSQLite creates a SQLite-backed session repository.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS honeypot_sessions (
		session_id TEXT PRIMARY KEY,
		state_json TEXT NOT NULL,
		scam_detected INTEGER NOT NULL DEFAULT 0,
		updated_at INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_honeypot_sessions_updated ON honeypot_sessions(updated_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// GetOrCreate loads the session or creates and persists a fresh one.
func (s *SQLiteStore) GetOrCreate(ctx context.Context, sessionID string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT state_json FROM honeypot_sessions WHERE session_id = ?`, sessionID)

	var stateJSON string
	err := row.Scan(&stateJSON)
	if err == sql.ErrNoRows {
		sess := domain.NewSession(sessionID)
		if saveErr := s.Save(ctx, sess); saveErr != nil {
			return nil, saveErr
		}
		return sess, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan session row: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(stateJSON), &sess); err != nil {
		return nil, fmt.Errorf("decode session state: %w", err)
	}
	return &sess, nil
}

// Save upserts the full session state as JSON.
func (s *SQLiteStore) Save(ctx context.Context, session *domain.Session) error {
	stateJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	now := time.Now().UTC().Unix()
	for attempt := 0; ; attempt++ {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO honeypot_sessions (session_id, state_json, scam_detected, updated_at, created_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(session_id) DO UPDATE SET
				state_json = excluded.state_json,
				scam_detected = excluded.scam_detected,
				updated_at = excluded.updated_at`,
			session.SessionID, string(stateJSON), boolToInt(session.ScamDetected),
			now, session.StartTime.Unix())
		if err == nil {
			return nil
		}
		if attempt >= maxWriteRetries || !shared.IsSQLiteConflictError(err) {
			return fmt.Errorf("upsert session: %w", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(writeRetryDelay << attempt):
		}
	}
}

// EvictIdle deletes sessions untouched for longer than ttl.
func (s *SQLiteStore) EvictIdle(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-ttl).Unix()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM honeypot_sessions WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("evict idle sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count evicted sessions: %w", err)
	}
	return int(n), nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ Repository = (*SQLiteStore)(nil)
