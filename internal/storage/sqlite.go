package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/YashSadhu/mentme/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteStore keeps one JSON snapshot per namespace in a sqlite file.
type SQLiteStore struct {
	db        *sql.DB
	namespace string
}

func NewSQLiteStore(db *sql.DB, namespace string) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if namespace == "" {
		return nil, errors.New("storage: empty namespace")
	}
	return &SQLiteStore{db: db, namespace: namespace}, nil
}

// OpenSQLite opens (or creates) the sqlite file at path, applies migrations
// and returns a store bound to namespace.
func OpenSQLite(path, namespace string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	store, err := NewSQLiteStore(db, namespace)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) (model.State, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE namespace = ?`, s.namespace)

	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.State{}, ErrNotFound
		}
		return model.State{}, fmt.Errorf("load snapshot: %w", err)
	}

	var state model.State
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return model.State{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return state, nil
}

func (s *SQLiteStore) Save(ctx context.Context, state model.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (namespace, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(namespace) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		s.namespace, string(payload), time.Now().UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
