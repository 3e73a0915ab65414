// Package scanner finds key-value string literals in JS/JSON locale files
// without parsing the file as a document. The file is treated as flat text
// with recognizable sub-patterns, so everything outside the matched value
// literals is preserved byte-for-byte on reconstruction.
package scanner

import "regexp"

// valuePattern matches a colon, optional whitespace, then a quoted string
// with escape support. It approximates "value position in a key:value pair"
// for both JSON and JS object literals. A colon-then-string sequence inside
// a string body also matches; that over-match is an accepted limitation of
// the pattern-match-don't-parse approach.
var valuePattern = regexp.MustCompile(`(:\s*)("(?:\\.|[^"\\])*")`)

// Match is one value-literal occurrence in the scanned text.
type Match struct {
	// Prefix is the colon and any following whitespace, verbatim.
	Prefix string
	// Literal is the raw quoted literal, including its quotes and any
	// internal escape sequences.
	Literal string
	// Start and End delimit the full match (prefix + literal) in the
	// scanned text.
	Start, End int
}

// Scan returns all value-literal matches in text, left-to-right and
// non-overlapping.
func Scan(text string) []Match {
	locs := valuePattern.FindAllStringSubmatchIndex(text, -1)
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		matches = append(matches, Match{
			Prefix:  text[loc[2]:loc[3]],
			Literal: text[loc[4]:loc[5]],
			Start:   loc[0],
			End:     loc[1],
		})
	}
	return matches
}

// Rewrite rebuilds text by substituting each match's span with the string
// returned by repl. Text between matches is copied through untouched.
func Rewrite(text string, repl func(Match) string) string {
	matches := Scan(text)
	if len(matches) == 0 {
		return text
	}

	var out []byte
	last := 0
	for _, m := range matches {
		out = append(out, text[last:m.Start]...)
		out = append(out, repl(m)...)
		last = m.End
	}
	out = append(out, text[last:]...)
	return string(out)
}
