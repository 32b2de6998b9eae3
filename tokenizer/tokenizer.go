// Package tokenizer turns raw messages into bag-of-words tokens.
package tokenizer

import "strings"

// Tokenize normalizes text and splits it on whitespace.
func Tokenize(text string) []string {
	return strings.Fields(Normalize(text))
}
