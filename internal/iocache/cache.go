// Package iocache implements the on-disk response cache on top of SQLite.
//
// Idempotent GET responses are stored GOB-encoded under the SHA-256 hash
// of the request key, with a freshness timestamp. Entries older than the
// configured TTL count as misses and are evicted lazily.
package iocache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/gnames/gnfmt"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS responses (
	key     TEXT PRIMARY KEY,
	value   BLOB NOT NULL,
	created INTEGER NOT NULL
);
`

// Cache is a sqlite-backed response cache. Safe for use from one process;
// database/sql serializes access to the single connection.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// New opens (or creates) the cache database in dir. A ttl of 0 keeps
// entries forever.
func New(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, OpenError(dir, err)
	}

	dbPath := filepath.Join(dir, "responses.sqlite")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, OpenError(dbPath, err)
	}

	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, OpenError(dbPath, err)
	}

	return &Cache{db: db, ttl: ttl}, nil
}

// Get loads a cached value into v. Returns false on a miss or an expired
// entry.
func (c *Cache) Get(key string, v any) (bool, error) {
	hashed := hashKey(key)

	var value []byte
	var created int64
	err := c.db.QueryRow(
		"SELECT value, created FROM responses WHERE key = ?", hashed,
	).Scan(&value, &created)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, ReadError(err)
	}

	if c.ttl > 0 && time.Since(time.Unix(created, 0)) > c.ttl {
		// Stale entry; evict lazily.
		_, _ = c.db.Exec("DELETE FROM responses WHERE key = ?", hashed)
		return false, nil
	}

	enc := gnfmt.GNgob{}
	if err = enc.Decode(value, v); err != nil {
		return false, ReadError(err)
	}

	return true, nil
}

// Set stores a value under the key, replacing any previous entry.
func (c *Cache) Set(key string, v any) error {
	enc := gnfmt.GNgob{}
	value, err := enc.Encode(v)
	if err != nil {
		return WriteError(err)
	}

	_, err = c.db.Exec(
		"INSERT OR REPLACE INTO responses (key, value, created) VALUES (?, ?, ?)",
		hashKey(key), value, time.Now().Unix(),
	)
	if err != nil {
		return WriteError(err)
	}

	return nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// hashKey derives a fixed-size, filesystem- and SQL-safe key.
func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
