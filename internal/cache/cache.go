// Package cache memoizes a translation run's output keyed by the
// translated file's path (as the caller passes it) and a content hash, so a batch or daemon
// run (internal/rpcserver, cmd/pyrrust) skips re-translating a file whose
// Source text hasn't changed since the last run. Backed by
// modernc.org/sqlite, a natural fit for "translate a tree of files
// repeatedly" without needing a running database server.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	_ "modernc.org/sqlite"
)

// Cache is a translation-result store backed by a single SQLite file.
type Cache struct {
	db *sql.DB
}

// schema creates the single table this cache needs: one row per
// (path, content hash), holding the emitted Target text and any
// diagnostics rendered alongside it.
const schema = `
CREATE TABLE IF NOT EXISTS translations (
	path        TEXT NOT NULL,
	content_hash TEXT NOT NULL,
	output      TEXT NOT NULL,
	diagnostics TEXT NOT NULL,
	PRIMARY KEY (path, content_hash)
);
`

// Open creates or reuses a SQLite database file at path, creating its
// schema if needed.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: migrate schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error { return c.db.Close() }

// ContentHash returns the cache key component for a file's Source text.
func ContentHash(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Lookup returns the cached output and diagnostics text for (path, hash),
// and whether an entry was found.
func (c *Cache) Lookup(ctx context.Context, path, hash string) (output, diagnosticsText string, ok bool, err error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT output, diagnostics FROM translations WHERE path = ? AND content_hash = ?`,
		path, hash)
	err = row.Scan(&output, &diagnosticsText)
	if err == sql.ErrNoRows {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, fmt.Errorf("cache: lookup %s: %w", path, err)
	}
	return output, diagnosticsText, true, nil
}

// Store records a translation result, replacing any stale entry for the
// same path under a different content hash.
func (c *Cache) Store(ctx context.Context, path, hash, output, diagnosticsText string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM translations WHERE path = ? AND content_hash != ?`, path, hash); err != nil {
		return fmt.Errorf("cache: evict stale entries for %s: %w", path, err)
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO translations (path, content_hash, output, diagnostics) VALUES (?, ?, ?, ?)`,
		path, hash, output, diagnosticsText)
	if err != nil {
		return fmt.Errorf("cache: store %s: %w", path, err)
	}
	return nil
}
