package cachestore

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Load returns all persisted ip -> blacklisted outcomes for one blacklist
// identity. A missing identity yields an empty map, not an error.
func (s *Store) Load(listHash string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		"SELECT ip, blacklisted FROM rdns_cache WHERE list_hash = ?", listHash)
	if err != nil {
		return nil, fmt.Errorf("cachestore: load %s: %w", shortHash(listHash), err)
	}
	defer rows.Close()

	entries := make(map[string]bool)
	for rows.Next() {
		var ip string
		var blacklisted bool
		if err := rows.Scan(&ip, &blacklisted); err != nil {
			log.Warn("cache row scan failed", "err", err)
			continue
		}
		entries[ip] = blacklisted
	}
	return entries, rows.Err()
}

// Save replaces the persisted entries for one blacklist identity with the
// given snapshot. The whole replacement runs in a single transaction so
// concurrent runs clobber each other cleanly (last writer wins) instead of
// interleaving.
func (s *Store) Save(listHash string, entries map[string]bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("cachestore: begin save: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM rdns_cache WHERE list_hash = ?", listHash); err != nil {
		tx.Rollback()
		return fmt.Errorf("cachestore: clear %s: %w", shortHash(listHash), err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO rdns_cache (list_hash, ip, blacklisted) VALUES (?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("cachestore: prepare insert: %w", err)
	}
	defer stmt.Close()

	for ip, blacklisted := range entries {
		if _, err := stmt.ExecContext(ctx, listHash, ip, blacklisted); err != nil {
			tx.Rollback()
			return fmt.Errorf("cachestore: insert %s: %w", ip, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cachestore: commit save: %w", err)
	}
	return nil
}

// shortHash keeps error messages readable; the full hash is 64 hex chars.
func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
