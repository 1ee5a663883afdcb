// Package sqlite provides a Store backed by a single SQLite database file.
//
// The database is the named persistent store, the assets table is its one
// collection, and the blob lives in a single fixed-key row. The schema is
// versioned through PRAGMA user_version; the table is created only on the
// first-ever open.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/meshview/loader/store"
)

const (
	// DefaultKey identifies the single cached blob.
	DefaultKey = "model"

	schemaVersion = 1
	busyTimeoutMS = 5000
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS assets (
  key TEXT PRIMARY KEY,
  blob BLOB NOT NULL
);
`

// Store implements store.Store on top of a SQLite database file.
type Store struct {
	db  *sql.DB
	key string
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the fixed blob key. Defaults to [DefaultKey].
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// Open opens (creating on first use) the database at path and brings the
// schema up to the current version. Failures are reported as
// [store.ErrUnavailable].
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty database path", store.ErrUnavailable)
	}
	s := &Store{key: DefaultKey}
	for _, opt := range opts {
		opt(s)
	}
	if s.key == "" {
		return nil, fmt.Errorf("%w: empty key", store.ErrUnavailable)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	// One writer, one session: the pipeline never touches the store
	// concurrently, and a single conn keeps transactions serialized.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := configureDB(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	if err := upgradeSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	s.db = db
	return s, nil
}

func configureDB(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		fmt.Sprintf("PRAGMA busy_timeout = %d;", busyTimeoutMS),
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// upgradeSchema creates the assets collection on first-ever open and
// stamps the store with the current schema version.
func upgradeSchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return err
	}
	switch {
	case version == schemaVersion:
		return nil
	case version > schemaVersion:
		return fmt.Errorf("schema version %d is newer than supported version %d", version, schemaVersion)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return err
	}
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d;", schemaVersion))
	return err
}

// Get returns the stored blob, or ok=false if nothing has been stored yet.
func (s *Store) Get(ctx context.Context) ([]byte, bool, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, "SELECT blob FROM assets WHERE key = ?", s.key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", store.ErrRead, err)
	}
	return blob, true, nil
}

// Put persists blob under the fixed key, replacing any prior value.
func (s *Store) Put(ctx context.Context, blob []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO assets (key, blob) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET blob = excluded.blob",
		s.key, blob)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrWrite, err)
	}
	return nil
}

// Clear removes the stored blob. This is the external clearing path; the
// loading pipeline never invokes it.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM assets WHERE key = ?", s.key); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWrite, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

var (
	_ store.Store   = (*Store)(nil)
	_ store.Clearer = (*Store)(nil)
)
