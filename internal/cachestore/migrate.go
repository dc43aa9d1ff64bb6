package cachestore

import (
	"database/sql"
	"fmt"
)

// Versioned schema statements, applied in order and recorded in
// schema_migrations. Append new statements; never edit applied ones.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS rdns_cache (
		list_hash   VARCHAR NOT NULL,
		ip          VARCHAR NOT NULL,
		blacklisted BOOLEAN NOT NULL,
		resolved_at TIMESTAMP DEFAULT current_timestamp,
		PRIMARY KEY (list_hash, ip)
	)`,
}

func migrateSchema(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at TIMESTAMP DEFAULT current_timestamp
	)`); err != nil {
		return fmt.Errorf("cachestore: bootstrap schema_migrations: %w", err)
	}

	var current sql.NullInt64
	if err := db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("cachestore: reading applied version: %w", err)
	}

	for i, stmt := range migrations {
		version := i + 1
		if current.Valid && int64(version) <= current.Int64 {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("cachestore: begin migration %d: %w", version, err)
		}
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("cachestore: executing migration %d: %w", version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("cachestore: recording migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("cachestore: commit migration %d: %w", version, err)
		}
	}
	return nil
}
