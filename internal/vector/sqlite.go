// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vector

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/triz-copilot/pkg/types"
)

// Store is a SQLite-backed vector index.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the vector database at cfg.Path, creating
// the schema if it does not exist.
func NewStore(cfg types.VectorConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("vector database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating vector database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening vector database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating vector schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports whether the index is reachable. The research pipeline
// probes this at run start to decide between normal and fallback mode.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS collections (
			name TEXT PRIMARY KEY,
			dims INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS vectors (
			collection TEXT NOT NULL REFERENCES collections(name),
			id TEXT NOT NULL,
			text TEXT NOT NULL,
			metadata TEXT,
			embedding BLOB NOT NULL,
			PRIMARY KEY (collection, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_vectors_collection ON vectors(collection)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// CreateCollection registers a named collection. Recreating an existing
// collection with the same dimensionality is a no-op.
func (s *Store) CreateCollection(ctx context.Context, name string, dims int) error {
	if name == "" {
		return fmt.Errorf("collection name is empty")
	}
	if dims <= 0 {
		return fmt.Errorf("collection %s: dims must be positive", name)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO collections (name, dims) VALUES (?, ?)
		 ON CONFLICT(name) DO NOTHING`, name, dims)
	if err != nil {
		return fmt.Errorf("creating collection %s: %w", name, err)
	}
	return nil
}

// Collections lists the registered collection names, sorted.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM collections ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning collection name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Count returns the number of records in a collection.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM vectors WHERE collection = ?`, collection).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting collection %s: %w", collection, err)
	}
	return n, nil
}

// Upsert inserts or replaces records in a collection.
func (s *Store) Upsert(ctx context.Context, collection string, records []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO vectors (collection, id, text, metadata, embedding)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if r.ID == "" {
			return fmt.Errorf("record in %s has empty ID", collection)
		}
		metaJSON, _ := json.Marshal(r.Metadata)
		if _, err := stmt.ExecContext(ctx,
			collection, r.ID, r.Text, string(metaJSON), encodeVector(r.Vector)); err != nil {
			return fmt.Errorf("upserting record %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// Search returns the k records of a collection most similar to the
// query vector, scores normalized to [0, 1], best first.
func (s *Store) Search(ctx context.Context, collection string, query []float32, k int) ([]Result, error) {
	if k <= 0 {
		k = 5
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, metadata, embedding FROM vectors WHERE collection = ?`, collection)
	if err != nil {
		return nil, fmt.Errorf("querying collection %s: %w", collection, err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			r        Result
			metaJSON sql.NullString
			blob     []byte
		)
		if err := rows.Scan(&r.ID, &r.Text, &metaJSON, &blob); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		vec, err := decodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", r.ID, err)
		}
		r.Score = similarityScore(Cosine(query, vec))

		if metaJSON.Valid && metaJSON.String != "" {
			json.Unmarshal([]byte(metaJSON.String), &r.Metadata)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// DeleteCollection removes a collection and its records.
func (s *Store) DeleteCollection(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM vectors WHERE collection = ?`, name); err != nil {
		return fmt.Errorf("deleting vectors of %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM collections WHERE name = ?`, name); err != nil {
		return fmt.Errorf("deleting collection %s: %w", name, err)
	}
	return tx.Commit()
}
