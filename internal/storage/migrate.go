package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func MigrateUp(db *sql.DB) error {
	return applyMigrations(db, ".up.sql")
}

func MigrateDown(db *sql.DB) error {
	return applyMigrations(db, ".down.sql")
}

func applyMigrations(db *sql.DB, suffix string) error {
	entries, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(entries)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	for _, name := range entries {
		raw, readErr := migrationFiles.ReadFile(name)
		if readErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("read migration %s: %w", name, readErr)
		}
		if _, execErr := tx.Exec(string(raw)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %s: %w", name, execErr)
		}
	}
	return tx.Commit()
}
