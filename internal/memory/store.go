// Package memory implements a pgvector-backed translation memory: embeddings
// of previously translated strings, searched by similarity to enrich the
// online engine's prompt with reference translations.
package memory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog/log"
)

// Store handles pgvector-backed embedding storage and similarity search.
type Store struct {
	pool       *pgxpool.Pool
	dimensions int
}

// NewStore creates a new translation memory store.
func NewStore(pool *pgxpool.Pool, dimensions int) *Store {
	if dimensions <= 0 {
		dimensions = 768
	}
	return &Store{pool: pool, dimensions: dimensions}
}

// Record is a translated pair with the embedding of its source text.
type Record struct {
	Hash       string
	Source     string
	Translated string
	File       string
	Vector     []float32
}

// SearchResult is a similarity search match.
type SearchResult struct {
	Source     string
	Translated string
	Score      float64
}

// EnsureSchema creates the pgvector extension and the memory table.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return fmt.Errorf("ensure vector extension: %w", err)
	}

	_, err := s.pool.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS translation_memory (
			hash       TEXT PRIMARY KEY,
			source     TEXT NOT NULL,
			translated TEXT NOT NULL,
			file       TEXT NOT NULL DEFAULT '',
			embedding  vector(%d)
		)
	`, s.dimensions))
	if err != nil {
		return fmt.Errorf("ensure memory schema: %w", err)
	}
	return nil
}

// Upsert stores translation memory records.
func (s *Store) Upsert(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	for _, r := range records {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO translation_memory (hash, source, translated, file, embedding)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (hash) DO UPDATE
			SET translated = EXCLUDED.translated, embedding = EXCLUDED.embedding
		`, r.Hash, r.Source, r.Translated, r.File, pgvector.NewVector(r.Vector))
		if err != nil {
			return fmt.Errorf("upsert memory record %s: %w", r.Hash, err)
		}
	}

	log.Info().Int("count", len(records)).Msg("Stored translation memory records")
	return nil
}

// Search finds the top-K most similar memory entries to the query vector.
func (s *Store) Search(ctx context.Context, queryVector []float32, topK int) ([]SearchResult, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT source, translated, 1 - (embedding <=> $1) AS similarity
		FROM translation_memory
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $2
	`, pgvector.NewVector(queryVector), topK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Source, &r.Translated, &r.Score); err != nil {
			return nil, fmt.Errorf("scan search row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search rows: %w", err)
	}

	return results, nil
}
