// Package localstore guarda pares chave/valor num arquivo SQLite local
package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry é um valor guardado com o instante em que foi gravado
type Entry struct {
	Key      string
	Value    []byte
	StoredAt time.Time
}

type Store struct {
	db   *sql.DB
	path string
}

// Open abre (ou cria) o banco em path
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite serializa escritas; uma conexão evita SQLITE_BUSY
	db.SetMaxOpenConns(1)

	store := &Store{db: db, path: path}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv_entries (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		stored_at INTEGER NOT NULL
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	return nil
}

// Get devolve nil quando a chave não existe
func (s *Store) Get(ctx context.Context, key string) (*Entry, error) {
	var (
		entry    = Entry{Key: key}
		storedAt int64
	)

	err := s.db.QueryRowContext(ctx,
		"SELECT value, stored_at FROM kv_entries WHERE key = ?", key,
	).Scan(&entry.Value, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}

	entry.StoredAt = time.Unix(0, storedAt)
	return &entry, nil
}

// Set grava ou sobrescreve o valor da chave
func (s *Store) Set(ctx context.Context, key string, value []byte, storedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, stored_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, stored_at = excluded.stored_at`,
		key, value, storedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_entries WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	return s.db.Close()
}
