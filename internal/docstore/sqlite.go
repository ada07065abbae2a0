package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// SQLite is a Store backed by a local SQLite database. Each document is a
// row keyed by (user_id, path) holding the JSON body; merge and increment
// run inside an immediate transaction so concurrent writers serialize at
// the database.
type SQLite struct {
	db *sql.DB
}

// Open creates a SQLite store at dsn, applying recommended pragmas and
// creating the documents table if needed.
func Open(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS documents (
		user_id    TEXT NOT NULL,
		path       TEXT NOT NULL,
		data       TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (user_id, path)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create documents table: %w", err)
	}

	return &SQLite{db: db}, nil
}

// applyPragmas configures SQLite for single-process server use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DB returns the underlying *sql.DB.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Get(ctx context.Context, userID, path string) (json.RawMessage, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE user_id = ? AND path = ?`,
		userID, path,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s/%s: %w", userID, path, err)
	}
	return json.RawMessage(data), nil
}

func (s *SQLite) Set(ctx context.Context, userID, path string, doc any, opts SetOptions) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	if !opts.Merge {
		return s.upsert(ctx, s.db, userID, path, body)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin merge write: %w", err)
	}
	defer tx.Rollback()

	existing, err := s.getForUpdate(ctx, tx, userID, path)
	if err != nil {
		return err
	}
	merged, err := mergeRaw(existing, body)
	if err != nil {
		return fmt.Errorf("merge document %s/%s: %w", userID, path, err)
	}
	if err := s.upsert(ctx, tx, userID, path, merged); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLite) Increment(ctx context.Context, userID, path string, deltas map[string]int64) error {
	if len(deltas) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin increment: %w", err)
	}
	defer tx.Rollback()

	existing, err := s.getForUpdate(ctx, tx, userID, path)
	if err != nil {
		return err
	}
	doc := map[string]any{}
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &doc); err != nil {
			return fmt.Errorf("parse document %s/%s: %w", userID, path, err)
		}
	}
	if err := applyIncrements(doc, deltas); err != nil {
		return fmt.Errorf("increment %s/%s: %w", userID, path, err)
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := s.upsert(ctx, tx, userID, path, body); err != nil {
		return err
	}
	return tx.Commit()
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLite) upsert(ctx context.Context, db execer, userID, path string, body json.RawMessage) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO documents (user_id, path, data, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id, path) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		userID, path, string(body), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("write document %s/%s: %w", userID, path, err)
	}
	return nil
}

func (s *SQLite) getForUpdate(ctx context.Context, tx *sql.Tx, userID, path string) (json.RawMessage, error) {
	var data string
	err := tx.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE user_id = ? AND path = ?`,
		userID, path,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read document %s/%s: %w", userID, path, err)
	}
	return json.RawMessage(data), nil
}

// DeleteUser removes every document belonging to userID. Used by the reset
// command.
func (s *SQLite) DeleteUser(ctx context.Context, userID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete documents for %s: %w", userID, err)
	}
	return res.RowsAffected()
}

// DefaultDBPath resolves the database file path in priority order:
// 1. ARTHAMIND_DB environment variable
// 2. $XDG_DATA_HOME/arthamind/arthamind.db
// 3. ~/.local/share/arthamind/arthamind.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("ARTHAMIND_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "arthamind", "arthamind.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
