package audio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"codeberg.org/snonux/sightwords/internal"
)

// ManifestFile is the sqlite database kept next to the cached audio
const ManifestFile = "manifest.db"

// CacheEntry describes one cached audio file
type CacheEntry struct {
	Key       string
	Word      string
	File      string
	Provider  string
	Size      int64
	CreatedAt time.Time
}

// CacheStats summarizes the cache contents
type CacheStats struct {
	Entries   int
	TotalSize int64
}

// Cache stores one synthesized audio file per word. A sqlite manifest
// records where each file came from; concurrent requests for the same
// word share a single generation.
type Cache struct {
	dir    string
	format string
	db     *sql.DB
	group  singleflight.Group
	log    zerolog.Logger
}

// OpenCache opens or creates the cache in dir. format is the file
// extension used for new entries, "mp3" when empty.
func OpenCache(dir, format string, logger zerolog.Logger) (*Cache, error) {
	if dir == "" {
		return nil, errors.New("cache directory is required")
	}
	if format == "" {
		format = "mp3"
	}
	format = strings.TrimPrefix(strings.ToLower(format), ".")

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open cache manifest: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping cache manifest: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		key TEXT PRIMARY KEY,
		word TEXT NOT NULL,
		file TEXT NOT NULL,
		provider TEXT NOT NULL,
		size INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache manifest: %w", err)
	}

	return &Cache{
		dir:    dir,
		format: format,
		db:     db,
		log:    logger.With().Str("component", "cache").Logger(),
	}, nil
}

// Dir returns the cache directory
func (c *Cache) Dir() string {
	return c.dir
}

// Path returns where the audio for word is stored, whether or not it exists yet
func (c *Cache) Path(word string) string {
	return filepath.Join(c.dir, internal.CacheKey(word)+"."+c.format)
}

// Lookup returns the manifest entry for word if its file is present
func (c *Cache) Lookup(word string) (CacheEntry, bool, error) {
	key := internal.CacheKey(word)

	var (
		e       CacheEntry
		created int64
	)
	err := c.db.QueryRow(
		`SELECT key, word, file, provider, size, created_at FROM entries WHERE key = ?`, key,
	).Scan(&e.Key, &e.Word, &e.File, &e.Provider, &e.Size, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return CacheEntry{}, false, nil
	}
	if err != nil {
		return CacheEntry{}, false, fmt.Errorf("failed to query cache manifest: %w", err)
	}
	e.CreatedAt = time.Unix(created, 0)

	info, err := os.Stat(filepath.Join(c.dir, e.File))
	if err != nil || info.Size() == 0 {
		return CacheEntry{}, false, nil
	}

	return e, true, nil
}

// Ensure returns the cached audio file for word, generating it with
// provider on a miss.
func (c *Cache) Ensure(ctx context.Context, word string, provider Provider) (string, error) {
	if err := ValidateWordText(word); err != nil {
		return "", err
	}

	if e, ok, err := c.Lookup(word); err != nil {
		return "", err
	} else if ok {
		return filepath.Join(c.dir, e.File), nil
	}

	key := internal.CacheKey(word)
	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		return c.generate(ctx, key, word, provider)
	})
	if err != nil {
		return "", err
	}

	if shared {
		c.log.Debug().Str("word", word).Msg("shared in-flight audio generation")
	}
	return v.(string), nil
}

func (c *Cache) generate(ctx context.Context, key, word string, provider Provider) (string, error) {
	final := c.Path(word)

	// An earlier flight may have finished since the caller's lookup.
	if e, ok, err := c.Lookup(word); err != nil {
		return "", err
	} else if ok {
		return filepath.Join(c.dir, e.File), nil
	}

	// A file without a manifest row is adopted as is.
	if info, err := os.Stat(final); err == nil && info.Size() > 0 {
		if err := c.record(key, word, "unknown", info.Size()); err != nil {
			return "", err
		}
		return final, nil
	}

	if provider == nil {
		return "", fmt.Errorf("no audio provider for %q", word)
	}

	tmp, err := os.CreateTemp(c.dir, key+"-*."+c.format)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	start := time.Now()
	source, err := generateFrom(ctx, provider, word, tmpPath)
	if err != nil {
		return "", fmt.Errorf("failed to generate audio for %q: %w", word, err)
	}

	info, err := os.Stat(tmpPath)
	if err != nil {
		return "", fmt.Errorf("generated audio missing: %w", err)
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("provider %s produced an empty file for %q", provider.Name(), word)
	}

	if err := os.Rename(tmpPath, final); err != nil {
		return "", fmt.Errorf("failed to store audio: %w", err)
	}

	if err := c.record(key, word, source, info.Size()); err != nil {
		return "", err
	}

	c.log.Info().
		Str("word", word).
		Str("provider", source).
		Int64("bytes", info.Size()).
		Dur("took", time.Since(start)).
		Msg("audio cached")

	return final, nil
}

func (c *Cache) record(key, word, provider string, size int64) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO entries (key, word, file, provider, size, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		key, word, filepath.Base(c.Path(word)), provider, size, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to update cache manifest: %w", err)
	}
	return nil
}

// Entries lists the manifest ordered by word
func (c *Cache) Entries() ([]CacheEntry, error) {
	rows, err := c.db.Query(`SELECT key, word, file, provider, size, created_at FROM entries ORDER BY word`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cache manifest: %w", err)
	}
	defer rows.Close()

	var entries []CacheEntry
	for rows.Next() {
		var (
			e       CacheEntry
			created int64
		)
		if err := rows.Scan(&e.Key, &e.Word, &e.File, &e.Provider, &e.Size, &created); err != nil {
			return nil, fmt.Errorf("failed to read cache manifest: %w", err)
		}
		e.CreatedAt = time.Unix(created, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats returns the number of entries and their total size
func (c *Cache) Stats() (CacheStats, error) {
	var s CacheStats
	err := c.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(size), 0) FROM entries`).Scan(&s.Entries, &s.TotalSize)
	if err != nil {
		return CacheStats{}, fmt.Errorf("failed to query cache stats: %w", err)
	}
	return s, nil
}

// Clear removes every cached audio file and empties the manifest
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ManifestFile) {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return fmt.Errorf("failed to remove %s: %w", e.Name(), err)
		}
		removed++
	}

	if _, err := c.db.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("failed to clear cache manifest: %w", err)
	}

	c.log.Info().Int("files", removed).Msg("audio cache cleared")
	return nil
}

// Close releases the manifest database
func (c *Cache) Close() error {
	return c.db.Close()
}
