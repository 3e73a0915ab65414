package seed

import (
	"context"
	"fmt"

	"locale-translator/internal/glossary"

	"github.com/rs/zerolog/log"
)

// GraphSeeder links seed pairs into the glossary graph so terminology
// queries can surface real translated examples next to each term.
type GraphSeeder struct {
	glossary *glossary.Glossary
}

// NewGraphSeeder creates a graph seeder.
func NewGraphSeeder(gl *glossary.Glossary) *GraphSeeder {
	return &GraphSeeder{glossary: gl}
}

// Seed ensures the term constraint, loads the built-in terminology, and
// attaches each pair to the terms its source text contains.
func (gs *GraphSeeder) Seed(ctx context.Context, entries []Entry) error {
	if err := gs.glossary.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("glossary schema: %w", err)
	}
	if err := gs.glossary.SeedBuiltinTerms(ctx); err != nil {
		return fmt.Errorf("seed builtin terms: %w", err)
	}

	linked := 0
	for _, e := range entries {
		terms, err := gs.glossary.FindRelatedTerms(ctx, e.Source, 0)
		if err != nil {
			return fmt.Errorf("find terms for %s: %w", e.Hash, err)
		}
		if len(terms) == 0 {
			continue
		}
		if err := gs.glossary.LinkExample(ctx, e.Hash, e.Source, e.Translated, terms); err != nil {
			return fmt.Errorf("link example %s: %w", e.Hash, err)
		}
		linked++
	}

	log.Info().
		Int("pairs", len(entries)).
		Int("linked", linked).
		Msg("Seeded terminology graph")
	return nil
}
