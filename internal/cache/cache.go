package cache

import (
	"context"
	"fmt"
	"sync"

	"locale-translator/internal/textutil"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// TranslationCache provides in-memory + PostgreSQL-backed caching for
// translations, keyed by the SHA-256 of the source text.
type TranslationCache struct {
	pool   *pgxpool.Pool
	mu     sync.RWMutex
	memory map[string]string // hash → translated text
}

// NewTranslationCache creates a new cache backed by PostgreSQL.
func NewTranslationCache(pool *pgxpool.Pool) *TranslationCache {
	return &TranslationCache{
		pool:   pool,
		memory: make(map[string]string),
	}
}

// EnsureSchema creates the cache table if it does not exist.
func (c *TranslationCache) EnsureSchema(ctx context.Context) error {
	_, err := c.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS translation_cache (
			hash       TEXT PRIMARY KEY,
			source     TEXT NOT NULL,
			translated TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure cache schema: %w", err)
	}
	return nil
}

// Get retrieves a cached translation. Returns empty string and false if not found.
func (c *TranslationCache) Get(ctx context.Context, sourceText string) (string, bool) {
	hash := textutil.Hash(sourceText)

	c.mu.RLock()
	if v, ok := c.memory[hash]; ok {
		c.mu.RUnlock()
		return v, true
	}
	c.mu.RUnlock()

	var translated string
	err := c.pool.QueryRow(ctx,
		`SELECT translated FROM translation_cache WHERE hash = $1`, hash,
	).Scan(&translated)
	if err != nil {
		return "", false
	}

	c.mu.Lock()
	c.memory[hash] = translated
	c.mu.Unlock()

	return translated, true
}

// Set stores a translation in both in-memory and PostgreSQL cache.
func (c *TranslationCache) Set(ctx context.Context, sourceText, translated string) error {
	hash := textutil.Hash(sourceText)

	c.mu.Lock()
	c.memory[hash] = translated
	c.mu.Unlock()

	_, err := c.pool.Exec(ctx, `
		INSERT INTO translation_cache (hash, source, translated)
		VALUES ($1, $2, $3)
		ON CONFLICT (hash) DO UPDATE
		SET translated = EXCLUDED.translated, updated_at = now()
	`, hash, sourceText, translated)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}

	return nil
}

// Preload loads all cached translations into memory.
func (c *TranslationCache) Preload(ctx context.Context) error {
	rows, err := c.pool.Query(ctx, `SELECT hash, translated FROM translation_cache`)
	if err != nil {
		return fmt.Errorf("preload cache: %w", err)
	}
	defer rows.Close()

	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for rows.Next() {
		var hash, translated string
		if err := rows.Scan(&hash, &translated); err != nil {
			return fmt.Errorf("scan cache row: %w", err)
		}
		c.memory[hash] = translated
		count++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate cache rows: %w", err)
	}

	log.Info().Int("count", count).Msg("Preloaded translation cache")
	return nil
}
