// Package seed builds translation-memory seed data from already-localized
// file pairs: a Russian locale file and its human-translated Ukrainian
// counterpart, aligned value by value.
package seed

import (
	"fmt"
	"os"
	"strings"

	"locale-translator/internal/literal"
	"locale-translator/internal/placeholder"
	"locale-translator/internal/scanner"
	"locale-translator/internal/textutil"

	"github.com/rs/zerolog/log"
)

// Entry is one aligned source/translated pair.
type Entry struct {
	Hash       string `json:"hash"`
	Source     string `json:"source"`
	Translated string `json:"translated"`
	File       string `json:"file"`
}

// ExtractPairs aligns the value literals of a source file with those of its
// translated counterpart. The two files must be structurally identical (same
// keys in the same order); a value-count mismatch is an error because the
// alignment would be silently wrong.
func ExtractPairs(sourcePath, translatedPath string) ([]Entry, error) {
	srcData, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}
	trData, err := os.ReadFile(translatedPath)
	if err != nil {
		return nil, fmt.Errorf("read translated file: %w", err)
	}

	srcText := strings.ToValidUTF8(string(srcData), "�")
	trText := strings.ToValidUTF8(string(trData), "�")

	srcMatches := scanner.Scan(srcText)
	trMatches := scanner.Scan(trText)

	if len(srcMatches) != len(trMatches) {
		return nil, fmt.Errorf("value count mismatch: %d in %s vs %d in %s",
			len(srcMatches), sourcePath, len(trMatches), translatedPath)
	}

	var entries []Entry
	skipped := 0

	for i := range srcMatches {
		src, err := literal.Decode(srcMatches[i].Literal)
		if err != nil {
			skipped++
			continue
		}
		tr, err := literal.Decode(trMatches[i].Literal)
		if err != nil {
			skipped++
			continue
		}

		// Only pairs that actually carry a translation are useful.
		if !textutil.ContainsCyrillic(src) || src == tr || tr == "" {
			skipped++
			continue
		}

		// Pairs are stored in masked form, since masked text is what the
		// engines and the cache ever see. The translated side reuses the
		// source's token indices so unmasking restores its fragments.
		maskedSrc, fragments := placeholder.Mask(src)
		maskedTr := placeholder.Align(tr, fragments)

		entries = append(entries, Entry{
			Hash:       textutil.Hash(maskedSrc),
			Source:     maskedSrc,
			Translated: maskedTr,
			File:       sourcePath,
		})
	}

	log.Info().
		Int("pairs", len(entries)).
		Int("skipped", skipped).
		Str("source", sourcePath).
		Msg("Extracted aligned translation pairs")

	return entries, nil
}

// Dedupe keeps the last entry per source hash, preserving first-seen order.
func Dedupe(entries []Entry) []Entry {
	index := make(map[string]int, len(entries))
	var out []Entry
	for _, e := range entries {
		if i, ok := index[e.Hash]; ok {
			out[i] = e
			continue
		}
		index[e.Hash] = len(out)
		out = append(out, e)
	}
	return out
}
