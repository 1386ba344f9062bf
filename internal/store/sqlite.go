package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/pbaille/snipstack/internal/domain"
)

//go:embed schema.sql
var schema string

// SnippetsKey is the single record holding the whole collection.
const SnippetsKey = "snippets"

// ErrStorageFull is returned when a write exceeds the storage quota or the
// database reports a full disk.
var ErrStorageFull = errors.New("storage full")

// Options configures a Store.
type Options struct {
	// MaxBytes caps the size of one record. 0 means unlimited.
	MaxBytes int
}

// Store is a key-value blob store on SQLite. The snippet collection lives
// under one key and is overwritten on every save.
type Store struct {
	db       *sql.DB
	maxBytes int
}

// New opens the database at dbPath and initializes the schema.
func New(dbPath string, opts Options) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, maxBytes: opts.MaxBytes}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key, or nil when there is none.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Put overwrites the value stored under key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if s.maxBytes > 0 && len(value) > s.maxBytes {
		return fmt.Errorf("put %s: %d bytes over %d byte quota: %w", key, len(value), s.maxBytes, ErrStorageFull)
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO kv (key, value, updated_at) VALUES (?, ?, ?)",
		key, value, time.Now(),
	)
	if err != nil {
		var se sqlite3.Error
		if errors.As(err, &se) && se.Code == sqlite3.ErrFull {
			return fmt.Errorf("put %s: %w", key, ErrStorageFull)
		}
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Load reads the snippet collection. An empty store yields no snippets.
func (s *Store) Load(ctx context.Context) ([]domain.Snippet, error) {
	data, err := s.Get(ctx, SnippetsKey)
	if err != nil || data == nil {
		return nil, err
	}

	var snippets []domain.Snippet
	if err := json.Unmarshal(data, &snippets); err != nil {
		return nil, fmt.Errorf("decode snippets: %w", err)
	}
	return snippets, nil
}

// Save overwrites the stored collection with snippets, icons included.
func (s *Store) Save(ctx context.Context, snippets []domain.Snippet) error {
	if snippets == nil {
		snippets = []domain.Snippet{}
	}
	data, err := json.Marshal(snippets)
	if err != nil {
		return fmt.Errorf("encode snippets: %w", err)
	}
	return s.Put(ctx, SnippetsKey, data)
}
