package geocode

import (
	"crypto/sha256"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Cache persists geocoding results in a local SQLite database keyed by the
// SHA-256 of the normalized query. Non-matches are stored too, so re-runs
// skip addresses Nominatim has already rejected. A nil *Cache is a no-op.
type Cache struct {
	db *sql.DB
}

const cacheMigration = `
CREATE TABLE IF NOT EXISTS geocode_cache (
	query_hash TEXT PRIMARY KEY,
	lat        REAL NOT NULL,
	lng        REAL NOT NULL,
	matched    INTEGER NOT NULL,
	cached_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

// OpenCache opens (creating if needed) the cache database at path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: open cache")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "geocode: exec %s", pragma)
		}
	}
	if _, err := db.Exec(cacheMigration); err != nil {
		db.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "geocode: migrate cache")
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}

// cacheKey returns SHA-256 hex of the normalized query.
func cacheKey(query string) string {
	h := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query))))
	return fmt.Sprintf("%x", h)
}

// Get looks a query up. The second return is false on miss or nil cache.
func (c *Cache) Get(query string) (Result, bool) {
	if c == nil {
		return Result{}, false
	}
	var r Result
	err := c.db.QueryRow(
		`SELECT lat, lng, matched FROM geocode_cache WHERE query_hash = ?`,
		cacheKey(query),
	).Scan(&r.Lat, &r.Lng, &r.Matched)
	if err != nil {
		return Result{}, false
	}
	zap.L().Debug("geocode cache hit", zap.Bool("matched", r.Matched))
	return r, true
}

// Put stores a result (match or non-match) for the query.
func (c *Cache) Put(query string, r Result) error {
	if c == nil {
		return nil
	}
	_, err := c.db.Exec(`
		INSERT INTO geocode_cache (query_hash, lat, lng, matched, cached_at)
		VALUES (?, ?, ?, ?, datetime('now'))
		ON CONFLICT (query_hash) DO UPDATE SET
			lat = excluded.lat,
			lng = excluded.lng,
			matched = excluded.matched,
			cached_at = datetime('now')`,
		cacheKey(query), r.Lat, r.Lng, r.Matched,
	)
	return eris.Wrap(err, "geocode: store cache")
}
