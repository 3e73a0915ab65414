// Package literal converts between quoted string literals as they appear in
// JS/JSON source text and their logical values.
//
// The codec is deliberately partial: only the escaped quote (\") is decoded.
// Every other escape sequence (\n, \\, \uXXXX) passes through as literal
// text in both directions, which keeps the transform format-preserving
// without understanding the full source grammar.
package literal

import (
	"fmt"
	"strings"

	"locale-translator/internal/textutil"
)

// Decode strips the surrounding quotes from a literal and un-escapes \".
// The input must start and end with a double quote; anything else is a
// contract violation by the caller.
func Decode(lit string) (string, error) {
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
		return "", fmt.Errorf("not a quoted literal: %s", textutil.Truncate(lit, 40))
	}
	inner := lit[1 : len(lit)-1]
	return strings.ReplaceAll(inner, `\"`, `"`), nil
}

// Encode re-escapes inner quotes and re-adds the surrounding quotes.
func Encode(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
}
