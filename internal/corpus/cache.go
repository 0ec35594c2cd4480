package corpus

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"
	_ "modernc.org/sqlite" // pure Go driver, registers as "sqlite"
)

// Cache is an on-disk store of API responses keyed by request URL. Rule
// texts get a TTL because translations are still being revised upstream;
// menu and parallel data is stable and cached without expiry.
type Cache struct {
	db *sql.DB
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS responses (
	key        TEXT PRIMARY KEY,
	url        TEXT NOT NULL,
	body       BLOB NOT NULL,
	fetched_at INTEGER NOT NULL
);`

// OpenCache opens (creating if needed) the response cache at dir.
func OpenCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir %s: %w", dir, err)
	}
	db, err := sql.Open("sqlite", filepath.Join(dir, "responses.db"))
	if err != nil {
		return nil, fmt.Errorf("opening response cache: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing response cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func cacheKey(url string) string {
	sum := blake3.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached body for url if present and, when ttl > 0, not
// older than ttl.
func (c *Cache) Get(url string, ttl time.Duration) ([]byte, bool) {
	if c == nil || c.db == nil {
		return nil, false
	}
	var body []byte
	var fetchedAt int64
	err := c.db.QueryRow(
		"SELECT body, fetched_at FROM responses WHERE key = ?", cacheKey(url),
	).Scan(&body, &fetchedAt)
	if err != nil {
		return nil, false
	}
	if ttl > 0 && time.Since(time.Unix(fetchedAt, 0)) > ttl {
		return nil, false
	}
	return body, true
}

// Put stores (or refreshes) the body for url.
func (c *Cache) Put(url string, body []byte) error {
	if c == nil || c.db == nil {
		return nil
	}
	_, err := c.db.Exec(`
		INSERT INTO responses (key, url, body, fetched_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		cacheKey(url), url, body, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("caching response for %s: %w", url, err)
	}
	return nil
}
