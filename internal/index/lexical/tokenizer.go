// Package lexical implements tokenization and a corpus-wide BM25 inverted
// index over weighted game fields.
package lexical

import (
	"strings"
	"unicode"
)

// Tokenize normalizes text into lowercase terms, splitting on any run of
// non-alphanumeric characters. No stemming, no stop-word removal.
// Empty input yields nil.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
