package drill

import (
	"fmt"
	"strings"
	"unicode"
)

// WordError describes a word that cannot be used in a drill.
type WordError struct {
	Word   string
	Reason string
}

func (e *WordError) Error() string {
	if e.Word == "" {
		return fmt.Sprintf("invalid word list: %s", e.Reason)
	}
	return fmt.Sprintf("invalid word %q: %s", e.Word, e.Reason)
}

// NormalizeWord trims and lower-cases w.
func NormalizeWord(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// NormalizeWords returns the normalized form of every word.
func NormalizeWords(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = NormalizeWord(w)
	}
	return out
}

// ValidateWords checks the configuration-time invariants of a word list:
// non-empty, every word made of letters with at least two distinct ones, and
// no duplicates after normalization. Two distinct letters guarantee that a
// shuffle different from the word exists.
func ValidateWords(words []string) error {
	if len(words) == 0 {
		return &WordError{Reason: "no words"}
	}
	seen := make(map[string]bool, len(words))
	for _, raw := range words {
		w := NormalizeWord(raw)
		if w == "" {
			return &WordError{Word: raw, Reason: "empty"}
		}
		distinct := make(map[rune]bool)
		for _, r := range w {
			if !unicode.IsLetter(r) {
				return &WordError{Word: raw, Reason: "contains a non-letter"}
			}
			distinct[r] = true
		}
		if len(distinct) < 2 {
			return &WordError{Word: raw, Reason: "needs at least two distinct letters"}
		}
		if seen[w] {
			return &WordError{Word: raw, Reason: "duplicate"}
		}
		seen[w] = true
	}
	return nil
}
