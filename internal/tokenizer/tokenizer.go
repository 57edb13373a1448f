package tokenizer

import (
	"regexp"
	"strings"
)

// foldReplacer rewrites the Norwegian/Danish letters to their two-letter ASCII forms.
// It runs after lowercasing, so only the lowercase variants are needed.
var foldReplacer = strings.NewReplacer("æ", "ae", "ø", "oe", "å", "aa")

// nonIndexableRegex matches every character that cannot be part of a token.
var nonIndexableRegex = regexp.MustCompile(`[^a-z0-9 ]`)

// whitespaceRegex matches runs of whitespace.
var whitespaceRegex = regexp.MustCompile(`\s+`)

// Normalize lowercases text, folds æ/ø/å, replaces everything outside [a-z0-9 ]
// with a space and collapses whitespace. The result is trimmed.
func Normalize(text string) string {
	lowerText := strings.ToLower(text)
	folded := foldReplacer.Replace(lowerText)
	cleaned := nonIndexableRegex.ReplaceAllString(folded, " ")
	collapsed := whitespaceRegex.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(collapsed)
}

// Tokenize normalizes text and splits it into tokens, dropping tokens of length 1 or less.
func Tokenize(text string) []string {
	tokens := make([]string, 0) // Initialize as empty slice, not nil
	for _, s := range strings.Fields(Normalize(text)) {
		if len(s) > 1 {
			tokens = append(tokens, s)
		}
	}
	return tokens
}
