// Package pipeline turns one quoted value literal into its translated
// counterpart: decode, script check, placeholder masking, the injected
// translate call, restoration, and re-encoding.
package pipeline

import (
	"fmt"

	"locale-translator/internal/literal"
	"locale-translator/internal/placeholder"
	"locale-translator/internal/textutil"
)

// TranslateFunc is the single capability the pipeline consumes. It must be
// synchronous; implementations that can fail return an error and the caller
// falls back to the original literal.
type TranslateFunc func(text string) (string, error)

// TransformLiteral translates one raw quoted literal. Literals whose decoded
// value contains no Cyrillic are returned unchanged without invoking
// translate. On any error the caller must substitute the original literal:
// a bad literal is left untranslated, never allowed to corrupt the file.
func TransformLiteral(lit string, translate TranslateFunc) (string, error) {
	decoded, err := literal.Decode(lit)
	if err != nil {
		return "", err
	}

	if !textutil.ContainsCyrillic(decoded) {
		return lit, nil
	}

	masked, fragments := placeholder.Mask(decoded)

	translated, err := translate(masked)
	if err != nil {
		return "", fmt.Errorf("translate %s: %w", textutil.Truncate(masked, 40), err)
	}

	restored := placeholder.Unmask(translated, fragments)
	return literal.Encode(restored), nil
}
