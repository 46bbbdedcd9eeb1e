// Package store caches compiled dictionaries in SQLite so repeated
// invocations skip CSV parsing and coding-expression evaluation. Each
// `simario build` produces a new build row; only the latest build per
// dataset is kept.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/tukushan/simario/internal/dictionary"
	"github.com/tukushan/simario/internal/logging"
)

// ErrNoBuild indicates no compiled dictionary exists for the requested
// dataset.
var ErrNoBuild = errors.New("no compiled dictionary for dataset")

// DB represents the dictionary store
type DB struct {
	conn   *sql.DB
	logger *logging.Logger
	path   string
}

const schema = `
CREATE TABLE IF NOT EXISTS builds (
    build_id TEXT PRIMARY KEY,
    dataset TEXT NOT NULL,
    baseline_weighting TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS descriptions (
    build_id TEXT NOT NULL REFERENCES builds(build_id) ON DELETE CASCADE,
    varname TEXT NOT NULL,
    description TEXT NOT NULL,
    PRIMARY KEY (build_id, varname)
);

CREATE TABLE IF NOT EXISTS codings (
    build_id TEXT NOT NULL REFERENCES builds(build_id) ON DELETE CASCADE,
    varname TEXT NOT NULL,
    ord INTEGER NOT NULL,
    code TEXT NOT NULL,
    label TEXT NOT NULL,
    PRIMARY KEY (build_id, varname, ord)
);
`

// Open opens or creates the dictionary store at path, creating parent
// directories as needed.
func Open(path string, logger *logging.Logger) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &DB{conn: conn, logger: logger, path: path}, nil
}

// Close closes the store connection
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Save writes dict as the current build for dataset and returns the build
// id. Earlier builds for the same dataset are replaced.
func (db *DB) Save(dataset string, dict *dictionary.Dictionary) (string, error) {
	buildID := uuid.NewString()

	tx, err := db.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM builds WHERE dataset = ?`, dataset); err != nil {
		return "", fmt.Errorf("failed to drop previous build: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO builds (build_id, dataset, baseline_weighting, created_at) VALUES (?, ?, ?, ?)`,
		buildID, dataset, dict.BaselineWeighting(), time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return "", fmt.Errorf("failed to insert build: %w", err)
	}

	for _, varname := range dict.Varnames() {
		desc, _ := dict.Description(varname)
		if _, err := tx.Exec(
			`INSERT INTO descriptions (build_id, varname, description) VALUES (?, ?, ?)`,
			buildID, varname, desc,
		); err != nil {
			return "", fmt.Errorf("failed to insert description for %q: %w", varname, err)
		}
	}

	for _, varname := range dict.CodedVarnames() {
		table, _ := dict.CodeTable(varname)
		for ord, pair := range table.Pairs() {
			if _, err := tx.Exec(
				`INSERT INTO codings (build_id, varname, ord, code, label) VALUES (?, ?, ?, ?, ?)`,
				buildID, varname, ord, pair.Code, pair.Label,
			); err != nil {
				return "", fmt.Errorf("failed to insert coding for %q: %w", varname, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit build: %w", err)
	}

	db.logger.Debug("Saved dictionary build", map[string]interface{}{
		"buildId": buildID,
		"dataset": dataset,
	})
	return buildID, nil
}

// Load reconstructs the latest dictionary built for dataset, returning
// the dictionary and its build id.
func (db *DB) Load(dataset string) (*dictionary.Dictionary, string, error) {
	var buildID, baseline string
	err := db.conn.QueryRow(
		`SELECT build_id, baseline_weighting FROM builds WHERE dataset = ? ORDER BY created_at DESC LIMIT 1`,
		dataset,
	).Scan(&buildID, &baseline)
	if err == sql.ErrNoRows {
		return nil, "", fmt.Errorf("%w: %q", ErrNoBuild, dataset)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to query build: %w", err)
	}

	descriptions, err := db.loadDescriptions(buildID)
	if err != nil {
		return nil, "", err
	}
	tables, err := db.loadCodeTables(buildID)
	if err != nil {
		return nil, "", err
	}

	dict := dictionary.FromParts(descriptions, tables).WithBaselineWeighting(baseline)
	return dict, buildID, nil
}

func (db *DB) loadDescriptions(buildID string) (map[string]string, error) {
	rows, err := db.conn.Query(
		`SELECT varname, description FROM descriptions WHERE build_id = ?`, buildID)
	if err != nil {
		return nil, fmt.Errorf("failed to query descriptions: %w", err)
	}
	defer rows.Close()

	descriptions := make(map[string]string)
	for rows.Next() {
		var varname, desc string
		if err := rows.Scan(&varname, &desc); err != nil {
			return nil, fmt.Errorf("failed to scan description: %w", err)
		}
		descriptions[varname] = desc
	}
	return descriptions, rows.Err()
}

func (db *DB) loadCodeTables(buildID string) ([]*dictionary.CodeTable, error) {
	rows, err := db.conn.Query(
		`SELECT varname, code, label FROM codings WHERE build_id = ? ORDER BY varname, ord`, buildID)
	if err != nil {
		return nil, fmt.Errorf("failed to query codings: %w", err)
	}
	defer rows.Close()

	pairsByVar := make(map[string][]dictionary.CodePair)
	var order []string
	for rows.Next() {
		var varname, code, label string
		if err := rows.Scan(&varname, &code, &label); err != nil {
			return nil, fmt.Errorf("failed to scan coding: %w", err)
		}
		if _, seen := pairsByVar[varname]; !seen {
			order = append(order, varname)
		}
		pairsByVar[varname] = append(pairsByVar[varname], dictionary.CodePair{Code: code, Label: label})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tables := make([]*dictionary.CodeTable, 0, len(order))
	for _, varname := range order {
		table, err := dictionary.NewCodeTable(varname, pairsByVar[varname])
		if err != nil {
			return nil, fmt.Errorf("stored coding for %q is invalid: %w", varname, err)
		}
		tables = append(tables, table)
	}
	return tables, nil
}
