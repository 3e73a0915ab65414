package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Store persists seed pairs in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a seed store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the seed table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS seed_pairs (
			hash       TEXT PRIMARY KEY,
			source     TEXT NOT NULL,
			translated TEXT NOT NULL,
			file       TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure seed schema: %w", err)
	}
	return nil
}

// Upsert stores entries, replacing earlier translations for the same source.
func (s *Store) Upsert(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	for _, e := range entries {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO seed_pairs (hash, source, translated, file)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (hash) DO UPDATE
			SET translated = EXCLUDED.translated, file = EXCLUDED.file
		`, e.Hash, e.Source, e.Translated, e.File)
		if err != nil {
			return fmt.Errorf("upsert seed pair %s: %w", e.Hash, err)
		}
	}

	log.Info().Int("count", len(entries)).Msg("Stored seed pairs")
	return nil
}

// All returns every stored seed pair.
func (s *Store) All(ctx context.Context) ([]Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT hash, source, translated, file FROM seed_pairs ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query seed pairs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Hash, &e.Source, &e.Translated, &e.File); err != nil {
			return nil, fmt.Errorf("scan seed row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seed rows: %w", err)
	}

	return entries, nil
}

// BuildTranslationMap returns source→translated for exact-match lookup.
func (s *Store) BuildTranslationMap(ctx context.Context) (map[string]string, error) {
	entries, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Source] = e.Translated
	}
	return m, nil
}

// ExportTSV writes entries as tab-separated source/translated lines. Tabs and
// newlines inside values are escaped so each pair stays on one line.
func ExportTSV(entries []Entry, path string) error {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(escapeTSV(e.Source))
		b.WriteByte('\t')
		b.WriteString(escapeTSV(e.Translated))
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write TSV export: %w", err)
	}

	log.Info().Int("count", len(entries)).Str("path", path).Msg("Exported seed pairs as TSV")
	return nil
}

// ExportJSON writes entries as a pretty-printed JSON array.
func ExportJSON(entries []Entry, path string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal seed entries: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write JSON export: %w", err)
	}

	log.Info().Int("count", len(entries)).Str("path", path).Msg("Exported seed pairs as JSON")
	return nil
}

func escapeTSV(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\t", "\\t")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
