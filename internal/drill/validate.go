package drill

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidState is wrapped by every error returned from Validate.
var ErrInvalidState = errors.New("invalid drill state")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}

// Validate checks the cross-field invariants of s. It is used on states
// restored from storage; states built by NewState, Apply and Advance always
// satisfy it.
func Validate(s State) error {
	if s.Status == nil {
		return invalid("missing status")
	}
	words := s.Words.Values()
	if err := ValidateWords(words); err != nil {
		return invalid("%v", err)
	}
	for _, w := range words {
		if w != NormalizeWord(w) {
			return invalid("word %q is not normalized", w)
		}
	}
	if s.MaxWrongAttempts < 1 {
		return invalid("max wrong attempts %d", s.MaxWrongAttempts)
	}

	for w, n := range s.WrongAttempts {
		if !slices.Contains(words, w) {
			return invalid("wrong attempts for unknown word %q", w)
		}
		if n < 0 || n > s.MaxWrongAttempts {
			return invalid("wrong attempts for %q out of range: %d", w, n)
		}
	}

	word := []rune(s.Words.Current())
	if len(s.Remaining) > len(word) {
		return invalid("more remaining letters than the word has")
	}
	suffix := slices.Clone(word[len(word)-len(s.Remaining):])
	remaining := slices.Clone(s.Remaining)
	slices.Sort(suffix)
	slices.Sort(remaining)
	if !slices.Equal(suffix, remaining) {
		return invalid("remaining letters are not a permutation of the unrevealed suffix")
	}

	count := s.WrongAttempts[s.Words.Current()]
	switch st := s.Status.(type) {
	case ReadyForInput:
		if len(s.Remaining) == 0 || count >= s.MaxWrongAttempts {
			return invalid("ready for input without letters or budget")
		}
	case LetterMatched:
		if len(s.Remaining) == 0 || count >= s.MaxWrongAttempts {
			return invalid("letter matched without letters or budget")
		}
		if st.Index < 0 || st.Index > len(s.Remaining) {
			return invalid("letter matched index %d out of range", st.Index)
		}
	case LetterError:
		if len(s.Remaining) == 0 || count >= s.MaxWrongAttempts {
			return invalid("letter error without letters or budget")
		}
		if st.Index < 0 || st.Index >= len(s.Remaining) {
			return invalid("letter error index %d out of range", st.Index)
		}
	case AnswerCorrect, GameFinishedCorrect:
		if len(s.Remaining) != 0 {
			return invalid("%s with letters remaining", st.Kind())
		}
	case AnswerFailed, GameFinishedFailed:
		if len(s.Remaining) != 0 || count != s.MaxWrongAttempts {
			return invalid("%s without an exhausted budget", st.Kind())
		}
	default:
		return invalid("unknown status %T", st)
	}
	if IsFinished(s) && !s.Words.IsLast() {
		return invalid("finished before the last word")
	}
	return nil
}
