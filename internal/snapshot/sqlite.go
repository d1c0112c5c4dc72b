package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hamed0406/pagewatch/internal/domain"
)

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore keeps all snapshots in a single embedded database file.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc's driver is safe for concurrent use but a single writer avoids
	// SQLITE_BUSY on overlapping saves to different keys.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		key         TEXT PRIMARY KEY,
		captured_at TIMESTAMP NOT NULL,
		text        TEXT NOT NULL
	);`
	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("migrate snapshots: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Exists(ctx context.Context, key string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM snapshots WHERE key = ?`, key).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", key, err)
	}
	return true, nil
}

func (s *SQLiteStore) Load(ctx context.Context, key string) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	err := s.db.QueryRowContext(ctx,
		`SELECT captured_at, text FROM snapshots WHERE key = ?`, key).
		Scan(&snap.Timestamp, &snap.Text)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return &snap, nil
}

func (s *SQLiteStore) Save(ctx context.Context, key string, text string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, captured_at, text) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET captured_at = excluded.captured_at, text = excluded.text`,
		key, time.Now().UTC(), text)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}
