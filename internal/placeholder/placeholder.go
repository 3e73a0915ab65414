// Package placeholder protects non-translatable fragments of a string
// (format placeholders, markup, entities, plural groups) behind reversible
// mask tokens so the translation backend cannot damage them.
package placeholder

import (
	"fmt"
	"regexp"
	"strings"
)

// fragmentPattern combines all protected fragment classes into a single
// alternation. Alternatives are tried in order at each position, scanning
// left-to-right without overlaps:
//
//	%1, %2...            numbered placeholders
//	{0}, {name}, {n,...} brace placeholders (no nested })
//	<br/>, <b>, </a>     markup tags
//	&nbsp; &#160;        character references
//	[one|many]           pipe-delimited alternative groups, kept whole
var fragmentPattern = regexp.MustCompile(`%\d+|\{[^}]*\}|<[^>]*>|&[a-zA-Z#0-9]+;|\[\s*[^|\]]+\s*\|\s*[^\]]+\]`)

// token returns the mask token for fragment index i.
func token(i int) string {
	return fmt.Sprintf("__MASK%d__", i)
}

// Mask replaces every protected fragment with an index-bearing token and
// returns the fragments in discovery order. Unmask with the same fragment
// slice restores the input exactly.
func Mask(text string) (string, []string) {
	var fragments []string
	masked := fragmentPattern.ReplaceAllStringFunc(text, func(m string) string {
		fragments = append(fragments, m)
		return token(len(fragments) - 1)
	})
	return masked, fragments
}

// Align replaces every occurrence of each fragment in text with that
// fragment's token. It is the inverse of Unmask, used to convert an
// already-translated string into the masked form a source string with the
// same fragments produces.
func Align(text string, fragments []string) string {
	for i, f := range fragments {
		text = strings.ReplaceAll(text, f, token(i))
	}
	return text
}

// Unmask substitutes the original fragments back for their tokens, in index
// order. Every occurrence of a token is replaced: translation backends
// occasionally duplicate a placeholder, and a dangling token is worse.
func Unmask(text string, fragments []string) string {
	for i, f := range fragments {
		text = strings.ReplaceAll(text, token(i), f)
	}
	return text
}
