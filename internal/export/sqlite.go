package export

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/gubarz/brendatab/internal/parser"
)

// sqliteDriver is the database/sql driver name registered by modernc.org/sqlite
const sqliteDriver = "sqlite"

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS records (
		seq         INTEGER PRIMARY KEY,
		id          TEXT NOT NULL,
		field       TEXT NOT NULL,
		description TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_records_id ON records(id)`,
	`CREATE INDEX IF NOT EXISTS idx_records_field ON records(field)`,
	`CREATE TABLE IF NOT EXISTS runs (
		run_id     TEXT PRIMARY KEY,
		source     TEXT NOT NULL,
		checksum   TEXT NOT NULL,
		clean      INTEGER NOT NULL,
		records    INTEGER NOT NULL,
		created_at TEXT NOT NULL
	)`,
}

// WriteSQLite stores t in the database at path, replacing earlier records.
// Each call appends a row to the runs table; its generated ID is returned.
func WriteSQLite(t *parser.Table, path string) (string, error) {
	db, err := sql.Open(sqliteDriver, path)
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	for _, ddl := range sqliteSchema {
		if _, err := db.Exec(ddl); err != nil {
			return "", fmt.Errorf("failed to create schema: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM records"); err != nil {
		return "", fmt.Errorf("failed to clear records: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO records (seq, id, field, description) VALUES (?, ?, ?, ?)")
	if err != nil {
		return "", fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range t.Records {
		if _, err := stmt.Exec(i, rec.ID, rec.Field, rec.Description); err != nil {
			return "", fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}

	source, checksum := "-", ""
	if t.Source != nil {
		source, checksum = t.Source.Path, t.Source.Checksum
	}

	runID := uuid.NewString()
	_, err = tx.Exec(
		"INSERT INTO runs (run_id, source, checksum, clean, records, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		runID, source, checksum, t.Clean, len(t.Records), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return runID, nil
}
