package drill

import (
	"slices"
	"unicode"
)

// Effect is a side effect requested by a transition.
type Effect int

const (
	// EffectNone requests nothing.
	EffectNone Effect = iota

	// EffectScheduleAdvance requests that Advance runs after the settle delay.
	EffectScheduleAdvance
)

func (e Effect) String() string {
	switch e {
	case EffectScheduleAdvance:
		return "schedule-advance"
	default:
		return "none"
	}
}

// Apply processes one letter input. Letters are expected in the word's
// left-to-right order regardless of the shuffle. Input in a status that does
// not accept letters returns s unchanged. Every wrong letter costs an
// attempt; one that matches no visible tile leaves the status as it was.
func Apply(s State, ev Input) (State, Effect) {
	if !acceptsInput(s.Status) {
		return s, EffectNone
	}
	expected, ok := ExpectedLetter(s)
	if !ok {
		return s, EffectNone
	}

	letter := unicode.ToLower(ev.Letter)
	idx := tileIndex(s.Remaining, letter, ev.Hint)

	if sameLetter(letter, expected) {
		if idx < 0 {
			return s, EffectNone
		}
		next := s.clone()
		next.Remaining = slices.Delete(next.Remaining, idx, idx+1)
		if len(next.Remaining) > 0 {
			next.Status = LetterMatched{Index: idx}
			return next, EffectNone
		}
		next.Status = AnswerCorrect{}
		return next, EffectScheduleAdvance
	}

	word := s.Words.Current()
	next := s.clone()
	next.WrongAttempts[word]++
	if next.WrongAttempts[word] >= next.MaxWrongAttempts {
		next.Remaining = []rune{}
		next.Status = AnswerFailed{}
		return next, EffectScheduleAdvance
	}
	if idx >= 0 {
		next.Status = LetterError{Index: idx}
	}
	return next, EffectNone
}

// Advance is the scheduled question advance. After AnswerCorrect or
// AnswerFailed it moves to the next word while the run is in progress, and
// otherwise finishes the run according to the answer that preceded it. In
// any other status it returns s unchanged.
func Advance(s State) State {
	var finished Status
	switch s.Status.(type) {
	case AnswerCorrect:
		finished = GameFinishedCorrect{}
	case AnswerFailed:
		finished = GameFinishedFailed{}
	default:
		return s
	}

	next := s.clone()
	if !IsInProgress(s) {
		next.Status = finished
		return next
	}
	next.Words = s.Words.Next()
	next.Remaining = shuffleCurrent(next)
	next.Status = ReadyForInput{}
	return next
}

// tileIndex finds the tile holding letter, preferring the hinted tile.
func tileIndex(remaining []rune, letter rune, hint *int) int {
	if hint != nil {
		h := *hint
		if h >= 0 && h < len(remaining) && sameLetter(remaining[h], letter) {
			return h
		}
	}
	return slices.IndexFunc(remaining, func(r rune) bool { return sameLetter(r, letter) })
}
