package memory

import (
	"context"
	"fmt"
	"strings"

	"locale-translator/internal/glossary"

	"github.com/rs/zerolog/log"
)

// Retriever assembles prompt context for a source string from the vector
// translation memory and the terminology glossary. Every lookup failure
// degrades to less context, never to a translation failure.
type Retriever struct {
	store    *Store
	embedder *EmbeddingClient
	glossary *glossary.Glossary
	topK     int
}

// NewRetriever creates a retriever. store, embedder and glossary may each be
// nil when the corresponding backend is unavailable.
func NewRetriever(store *Store, embedder *EmbeddingClient, gl *glossary.Glossary, topK int) *Retriever {
	if topK <= 0 {
		topK = 5
	}
	return &Retriever{store: store, embedder: embedder, glossary: gl, topK: topK}
}

// Context returns reference material for translating sourceText, formatted
// for inclusion in the model prompt. Returns "" when nothing relevant exists.
func (r *Retriever) Context(ctx context.Context, sourceText string) string {
	var b strings.Builder

	if terms := r.relatedTerms(ctx, sourceText); len(terms) > 0 {
		b.WriteString("Glossary (use these renderings exactly):\n")
		for _, t := range terms {
			fmt.Fprintf(&b, "- %s → %s\n", t.Russian, t.Ukrainian)
		}
	}

	if hits := r.similarTranslations(ctx, sourceText); len(hits) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Similar past translations:\n")
		for _, h := range hits {
			fmt.Fprintf(&b, "- %q → %q\n", h.Source, h.Translated)
		}
	}

	return b.String()
}

func (r *Retriever) relatedTerms(ctx context.Context, text string) []glossary.Term {
	if r.glossary == nil {
		return nil
	}
	terms, err := r.glossary.FindRelatedTerms(ctx, text, 8)
	if err != nil {
		log.Warn().Err(err).Msg("Glossary lookup failed, continuing without terms")
		return nil
	}
	return terms
}

func (r *Retriever) similarTranslations(ctx context.Context, text string) []SearchResult {
	if r.store == nil || r.embedder == nil {
		return nil
	}

	vec, err := r.embedder.EmbedQuery(ctx, text)
	if err != nil {
		log.Warn().Err(err).Msg("Query embedding failed, continuing without memory")
		return nil
	}

	hits, err := r.store.Search(ctx, vec, r.topK)
	if err != nil {
		log.Warn().Err(err).Msg("Memory search failed, continuing without memory")
		return nil
	}

	// Exact or near-exact hits only help the prompt; drop weak matches.
	var kept []SearchResult
	for _, h := range hits {
		if h.Score >= 0.75 {
			kept = append(kept, h)
		}
	}
	return kept
}
