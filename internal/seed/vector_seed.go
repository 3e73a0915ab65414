package seed

import (
	"context"
	"fmt"

	"locale-translator/internal/memory"

	"github.com/rs/zerolog/log"
)

// VectorSeeder embeds seed pair sources and stores them in the translation
// memory for similarity retrieval.
type VectorSeeder struct {
	store     *memory.Store
	embedder  *memory.EmbeddingClient
	batchSize int
}

// NewVectorSeeder creates a vector seeder.
func NewVectorSeeder(store *memory.Store, embedder *memory.EmbeddingClient, batchSize int) *VectorSeeder {
	if batchSize <= 0 {
		batchSize = 32
	}
	return &VectorSeeder{store: store, embedder: embedder, batchSize: batchSize}
}

// Seed embeds the source text of each entry and upserts the vectors.
func (vs *VectorSeeder) Seed(ctx context.Context, entries []Entry) error {
	entries = Dedupe(entries)
	if len(entries) == 0 {
		return nil
	}

	if err := vs.store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("memory schema: %w", err)
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Source
	}

	vectors, err := vs.embedder.EmbedBatch(ctx, texts, vs.batchSize)
	if err != nil {
		return fmt.Errorf("embed seed sources: %w", err)
	}
	if len(vectors) != len(entries) {
		return fmt.Errorf("embedding count mismatch: %d vectors for %d entries", len(vectors), len(entries))
	}

	records := make([]memory.Record, 0, len(entries))
	for i, e := range entries {
		if vectors[i] == nil {
			continue
		}
		records = append(records, memory.Record{
			Hash:       e.Hash,
			Source:     e.Source,
			Translated: e.Translated,
			File:       e.File,
			Vector:     vectors[i],
		})
	}

	if err := vs.store.Upsert(ctx, records); err != nil {
		return fmt.Errorf("store memory records: %w", err)
	}

	log.Info().Int("count", len(records)).Msg("Seeded translation memory")
	return nil
}
