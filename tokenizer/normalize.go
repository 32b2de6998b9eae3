package tokenizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize prepares text for bag-of-words tokenization.
// - Lowercases using Unicode case mapping
// - Removes every rune that is neither a word rune nor whitespace
// - Keeps whitespace untouched so token boundaries survive
//
// Training and inference must both go through this function.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// A Caser holds state and must not be shared between goroutines.
	lowered := cases.Lower(language.Und).String(text)

	var builder strings.Builder
	builder.Grow(len(lowered))

	for _, r := range lowered {
		if isWordRune(r) || unicode.IsSpace(r) {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

// isWordRune reports whether r is a letter, a number or an underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
