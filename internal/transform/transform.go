// Package transform applies the translation pipeline to whole locale files.
// The full output buffer is assembled before anything touches the disk, so a
// completed run always produces a fully-formed file: structurally identical
// to the input, with zero or more value literals translated.
package transform

import (
	"fmt"
	"os"
	"strings"

	"locale-translator/internal/pipeline"
	"locale-translator/internal/scanner"
	"locale-translator/internal/textutil"

	"github.com/rs/zerolog/log"
)

// Stats summarizes one file transform.
type Stats struct {
	// Values is the number of value literals the scanner matched.
	Values int
	// Translated is how many literals were replaced.
	Translated int
	// Failed is how many literals were left as-is after a pipeline error.
	Failed int
}

// Transformer rewrites the Cyrillic value literals of a file using an
// injected translate capability.
type Transformer struct {
	translate pipeline.TranslateFunc
}

// New creates a Transformer around the given translate capability.
func New(translate pipeline.TranslateFunc) *Transformer {
	return &Transformer{translate: translate}
}

// Apply rewrites all matched value literals in text. A literal whose
// transform fails is substituted back unchanged; the failure never reaches
// the file level.
func (t *Transformer) Apply(text string) (string, Stats) {
	var stats Stats

	out := scanner.Rewrite(text, func(m scanner.Match) string {
		stats.Values++

		translated, err := pipeline.TransformLiteral(m.Literal, t.translate)
		if err != nil {
			stats.Failed++
			log.Warn().Err(err).Str("literal", textutil.Truncate(m.Literal, 60)).Msg("Literal left untranslated")
			return m.Prefix + m.Literal
		}
		if translated != m.Literal {
			stats.Translated++
		}
		return m.Prefix + translated
	})

	return out, stats
}

// TransformFile reads inputPath, writes a best-effort backup next to it,
// applies the transform, and writes the result to outputPath. A missing
// input file is the only fatal condition.
func (t *Transformer) TransformFile(inputPath, outputPath string) (Stats, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("read %s: %w", inputPath, err)
	}

	// Repair invalid UTF-8 by substitution rather than failing.
	text := strings.ToValidUTF8(string(data), "�")

	writeBackup(inputPath, text)

	out, stats := t.Apply(text)

	if err := os.WriteFile(outputPath, []byte(out), 0644); err != nil {
		return stats, fmt.Errorf("write %s: %w", outputPath, err)
	}

	log.Info().
		Str("input", inputPath).
		Str("output", outputPath).
		Int("values", stats.Values).
		Int("translated", stats.Translated).
		Int("failed", stats.Failed).
		Msg("File transformed")

	return stats, nil
}

// writeBackup persists the original text under <input>.bak. An existing
// backup is never overwritten, and failure to write one never blocks the
// transform.
func writeBackup(inputPath, text string) {
	backupPath := inputPath + ".bak"
	if _, err := os.Stat(backupPath); err == nil {
		return
	}
	if err := os.WriteFile(backupPath, []byte(text), 0644); err != nil {
		log.Warn().Err(err).Str("path", backupPath).Msg("Failed to write backup")
	}
}
