// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package materials persists the engineering materials database and
// answers property-driven recommendation queries. The backing store is
// SQLite with an FTS5 index over the descriptive fields.
package materials

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/triz-copilot/pkg/types"
)

//go:embed data/materials.yaml
var seedYAML []byte

// Store manages the materials SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the materials database at cfg.Path,
// creating the schema and loading the seed materials on first use.
func NewStore(cfg types.MaterialsConfig) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating materials directory: %w", err)
	}
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening materials database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	if err := s.seed(); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding materials: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS materials (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			properties TEXT NOT NULL,
			advantages TEXT,
			disadvantages TEXT,
			applications TEXT,
			cost_index REAL,
			sustainability REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_materials_category ON materials(category)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='materials_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE materials_fts USING fts5(name, category, descriptive, content=materials, content_rowid=rowid)`,
			`CREATE TRIGGER materials_ai AFTER INSERT ON materials BEGIN
				INSERT INTO materials_fts(rowid, name, category, descriptive)
				VALUES (new.rowid, new.name, new.category, new.advantages || ' ' || new.applications);
			END`,
			`CREATE TRIGGER materials_ad AFTER DELETE ON materials BEGIN
				INSERT INTO materials_fts(materials_fts, rowid, name, category, descriptive)
				VALUES('delete', old.rowid, old.name, old.category, old.advantages || ' ' || old.applications);
			END`,
			`CREATE TRIGGER materials_au AFTER UPDATE ON materials BEGIN
				INSERT INTO materials_fts(materials_fts, rowid, name, category, descriptive)
				VALUES('delete', old.rowid, old.name, old.category, old.advantages || ' ' || old.applications);
				INSERT INTO materials_fts(rowid, name, category, descriptive)
				VALUES (new.rowid, new.name, new.category, new.advantages || ' ' || new.applications);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}
	return nil
}

type seedFile struct {
	Materials []types.Material `yaml:"materials"`
}

func (s *Store) seed() error {
	var sf seedFile
	if err := yaml.Unmarshal(seedYAML, &sf); err != nil {
		return fmt.Errorf("parsing seed data: %w", err)
	}
	for _, m := range sf.Materials {
		// Seed never overwrites user edits.
		var exists int
		if err := s.db.QueryRow(`SELECT count(*) FROM materials WHERE id = ?`, m.ID).Scan(&exists); err != nil {
			return err
		}
		if exists > 0 {
			continue
		}
		if err := s.Upsert(context.Background(), m); err != nil {
			return err
		}
	}
	return nil
}

// Upsert inserts or replaces a material by id.
func (s *Store) Upsert(ctx context.Context, m types.Material) error {
	if m.ID == "" || m.Name == "" {
		return fmt.Errorf("material needs an id and a name")
	}
	propsJSON, err := json.Marshal(m.Properties)
	if err != nil {
		return fmt.Errorf("encoding properties: %w", err)
	}
	advJSON, _ := json.Marshal(m.Advantages)
	disJSON, _ := json.Marshal(m.Disadvantages)
	appJSON, _ := json.Marshal(m.Applications)

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO materials (id, name, category, properties, advantages, disadvantages, applications, cost_index, sustainability)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, category=excluded.category, properties=excluded.properties,
			advantages=excluded.advantages, disadvantages=excluded.disadvantages,
			applications=excluded.applications, cost_index=excluded.cost_index,
			sustainability=excluded.sustainability`,
		m.ID, m.Name, m.Category, string(propsJSON),
		string(advJSON), string(disJSON), string(appJSON),
		m.CostIndex, m.SustainabilityScore,
	)
	if err != nil {
		return fmt.Errorf("upserting material %s: %w", m.ID, err)
	}
	return nil
}

// Get returns the material with the given id.
func (s *Store) Get(ctx context.Context, id string) (types.Material, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, category, properties, advantages, disadvantages, applications, cost_index, sustainability
		 FROM materials WHERE id = ?`, id)
	m, err := scanMaterial(row)
	if err == sql.ErrNoRows {
		return types.Material{}, fmt.Errorf("material %s not found", id)
	}
	return m, err
}

// List returns all materials, optionally filtered by category, ordered
// by id.
func (s *Store) List(ctx context.Context, category string) ([]types.Material, error) {
	query := `SELECT id, name, category, properties, advantages, disadvantages, applications, cost_index, sustainability
		 FROM materials`
	args := []any{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing materials: %w", err)
	}
	defer rows.Close()
	return scanMaterials(rows)
}

// Search runs a full-text query over names, categories, advantages, and
// applications.
func (s *Store) Search(ctx context.Context, query string) ([]types.Material, error) {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return nil, nil
	}
	// Quote each term so FTS operators in user input stay inert.
	for i, term := range terms {
		terms[i] = `"` + strings.ReplaceAll(term, `"`, ``) + `"`
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.id, m.name, m.category, m.properties, m.advantages, m.disadvantages, m.applications, m.cost_index, m.sustainability
		 FROM materials m
		 JOIN materials_fts f ON f.rowid = m.rowid
		 WHERE materials_fts MATCH ?
		 ORDER BY rank`,
		strings.Join(terms, " OR "))
	if err != nil {
		return nil, fmt.Errorf("searching materials: %w", err)
	}
	defer rows.Close()
	return scanMaterials(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMaterial(row rowScanner) (types.Material, error) {
	var m types.Material
	var props, adv, dis, app string
	if err := row.Scan(&m.ID, &m.Name, &m.Category, &props, &adv, &dis, &app, &m.CostIndex, &m.SustainabilityScore); err != nil {
		return types.Material{}, err
	}
	if err := json.Unmarshal([]byte(props), &m.Properties); err != nil {
		return types.Material{}, fmt.Errorf("decoding properties for %s: %w", m.ID, err)
	}
	json.Unmarshal([]byte(adv), &m.Advantages)
	json.Unmarshal([]byte(dis), &m.Disadvantages)
	json.Unmarshal([]byte(app), &m.Applications)
	return m, nil
}

func scanMaterials(rows *sql.Rows) ([]types.Material, error) {
	var out []types.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
