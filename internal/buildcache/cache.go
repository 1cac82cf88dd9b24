// Package buildcache stores encoded packs keyed by a content hash over
// their resolved authoring data, so repeated builds of an unchanged
// character (locally or in CI) can skip re-encoding entirely.
package buildcache

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS packs (
	hash TEXT PRIMARY KEY,
	character_id TEXT NOT NULL,
	bytes BLOB NOT NULL,
	encoded_at INTEGER NOT NULL
)`

// Cache is a content-addressed pack store backed by a single-file SQLite
// database.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if necessary) the cache database at path, e.g.
// ".framesmith-cache.db".
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("buildcache: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("buildcache: create schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached pack bytes for hash and whether an entry exists.
func (c *Cache) Get(hash string) ([]byte, bool, error) {
	var data []byte
	err := c.db.QueryRow(`SELECT bytes FROM packs WHERE hash = ?`, hash).Scan(&data)
	switch {
	case err == sql.ErrNoRows:
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("buildcache: get %s: %w", hash, err)
	}
	return data, true, nil
}

// Put stores pack bytes for hash, tagged with characterID and encodedAt,
// overwriting any existing entry for the same hash.
func (c *Cache) Put(hash, characterID string, data []byte, encodedAt time.Time) error {
	_, err := c.db.Exec(`
		INSERT INTO packs (hash, character_id, bytes, encoded_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(hash) DO UPDATE SET
			character_id = excluded.character_id,
			bytes        = excluded.bytes,
			encoded_at   = excluded.encoded_at`,
		hash, characterID, data, encodedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("buildcache: put %s: %w", hash, err)
	}
	return nil
}
