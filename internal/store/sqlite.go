// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"trading-journal/internal/models"

	apperrors "trading-journal/internal/errors"
)

// SQLiteStore implements Store using a single-table key-value blob layout
// on SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the blob table.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Blobs table: one serialized value per key
	CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// LoadJournal returns the persisted trade collection. A missing key yields
// an empty collection; a corrupt value is surfaced as a StoreError so the
// caller can decide to fall back.
func (s *SQLiteStore) LoadJournal(ctx context.Context) ([]models.Trade, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM blobs WHERE key = ?`, JournalKey).Scan(&value)
	if err == sql.ErrNoRows {
		return []models.Trade{}, nil
	}
	if err != nil {
		return nil, apperrors.NewStoreError("load", JournalKey, err)
	}

	var trades []models.Trade
	if err := json.Unmarshal([]byte(value), &trades); err != nil {
		return nil, apperrors.NewStoreError("decode", JournalKey, err)
	}
	if trades == nil {
		trades = []models.Trade{}
	}
	return trades, nil
}

// SaveJournal replaces the persisted trade collection wholesale.
func (s *SQLiteStore) SaveJournal(ctx context.Context, trades []models.Trade) error {
	if trades == nil {
		trades = []models.Trade{}
	}
	value, err := json.Marshal(trades)
	if err != nil {
		return apperrors.NewStoreError("encode", JournalKey, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO blobs (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, JournalKey, string(value))
	if err != nil {
		return apperrors.NewStoreError("save", JournalKey, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
