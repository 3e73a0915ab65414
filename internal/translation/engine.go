package translation

import (
	"context"
	"fmt"

	"locale-translator/internal/cache"
	"locale-translator/internal/memory"
	"locale-translator/internal/pipeline"

	"github.com/rs/zerolog/log"
)

// Engine names accepted by the CLI.
const (
	EngineGoogle  = "google"
	EngineOffline = "offline"
)

// Engine turns masked source strings into translations. Implementations are
// wrapped into a pipeline.TranslateFunc via TranslateFunc.
type Engine interface {
	Translate(ctx context.Context, text string) (string, error)
}

// TranslateFunc binds an engine, an optional cache and the run context into
// the function the literal pipeline consumes.
func TranslateFunc(ctx context.Context, engine Engine, tc *cache.TranslationCache) pipeline.TranslateFunc {
	return func(text string) (string, error) {
		if tc != nil {
			if cached, ok := tc.Get(ctx, text); ok {
				return cached, nil
			}
		}

		translated, err := engine.Translate(ctx, text)
		if err != nil {
			return "", err
		}

		if tc != nil {
			if err := tc.Set(ctx, text, translated); err != nil {
				log.Warn().Err(err).Msg("Failed to cache translation")
			}
		}

		return translated, nil
	}
}

// GoogleEngine translates through the Gemini API, enriched with retrieved
// glossary and translation-memory context.
type GoogleEngine struct {
	client    *GeminiClient
	prompts   *PromptBuilder
	retriever *memory.Retriever
}

// NewGoogleEngine creates the online engine. retriever may be nil when no
// memory or glossary backend is available.
func NewGoogleEngine(apiKey, model string, retriever *memory.Retriever) (*GoogleEngine, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required for the google engine")
	}
	return &GoogleEngine{
		client:    NewGeminiClient(apiKey, model),
		prompts:   NewPromptBuilder(),
		retriever: retriever,
	}, nil
}

// Translate implements Engine.
func (e *GoogleEngine) Translate(ctx context.Context, text string) (string, error) {
	var retrieved string
	if e.retriever != nil {
		retrieved = e.retriever.Context(ctx, text)
	}

	userPrompt := e.prompts.BuildUserPrompt(text, retrieved)
	translated, err := e.client.Translate(ctx, e.prompts.GetSystemPrompt(), userPrompt)
	if err != nil {
		return "", fmt.Errorf("gemini translate: %w", err)
	}
	if translated == "" {
		return "", fmt.Errorf("gemini returned empty translation")
	}
	return translated, nil
}

// OfflineEngine translates via exact-match lookup against ingested seed
// pairs. Unknown strings pass through unchanged, so the engine is total and
// never fails a file.
type OfflineEngine struct {
	lookup map[string]string
}

// NewOfflineEngine creates an offline engine over a source→translated map.
func NewOfflineEngine(lookup map[string]string) *OfflineEngine {
	if lookup == nil {
		lookup = map[string]string{}
	}
	return &OfflineEngine{lookup: lookup}
}

// Translate implements Engine.
func (e *OfflineEngine) Translate(_ context.Context, text string) (string, error) {
	if translated, ok := e.lookup[text]; ok {
		return translated, nil
	}
	return text, nil
}
