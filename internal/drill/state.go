// Package drill implements the spelling drill progress state machine.
//
// A State is a value. Apply and Advance never modify their argument; they
// return a new State whose Rev differs from the old one whenever anything
// changed, so a renderer can detect changes by comparing revisions.
package drill

import (
	"maps"
	"math/rand/v2"
	"slices"
	"unicode"

	"github.com/abhisek/spellz/internal/cursor"
)

// DefaultMaxWrongAttempts is the wrong-attempt budget per word.
const DefaultMaxWrongAttempts = 3

// State is the progress of one drill run.
type State struct {
	// Status is the current status; exactly one variant is active.
	Status Status

	// Words is the fixed question sequence focused on the active word.
	Words cursor.Cursor[string]

	// MaxWrongAttempts is the per-word wrong-attempt budget.
	MaxWrongAttempts int

	// Remaining holds the shuffled letters of the unrevealed suffix of the
	// current word.
	Remaining []rune

	// WrongAttempts counts wrong picks per word. Treated as immutable: every
	// update clones the map.
	WrongAttempts map[string]int

	// Seed drives every shuffle of the run.
	Seed uint64

	// Rev increases on every transition that changes the state.
	Rev uint64
}

// Option configures NewState.
type Option func(*State)

// WithMaxWrongAttempts sets the wrong-attempt budget per word.
func WithMaxWrongAttempts(n int) Option {
	return func(s *State) { s.MaxWrongAttempts = n }
}

// WithSeed fixes the shuffle seed.
func WithSeed(seed uint64) Option {
	return func(s *State) { s.Seed = seed }
}

// NewState starts a run over words. Invalid words or a non-positive budget
// are contract violations and panic; validate configuration input with
// ValidateWords first.
func NewState(words []string, opts ...Option) State {
	words = NormalizeWords(words)
	if err := ValidateWords(words); err != nil {
		panic(err)
	}

	s := State{
		Status:           ReadyForInput{},
		Words:            cursor.New(words),
		MaxWrongAttempts: DefaultMaxWrongAttempts,
		WrongAttempts:    map[string]int{},
		Seed:             rand.Uint64(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.MaxWrongAttempts < 1 {
		panic("drill: max wrong attempts must be positive")
	}
	s.Remaining = shuffleCurrent(s)
	return s
}

// Input is one logical letter input. Hint, when set, is the index into
// Remaining of the tile the input came from; it disambiguates duplicate
// letters.
type Input struct {
	Letter rune
	Hint   *int
}

// KeyInput is an input typed on the keyboard.
func KeyInput(r rune) Input {
	return Input{Letter: r}
}

// TileInput is an input picked from the tile at index in Remaining. It
// returns false when index does not name a tile.
func TileInput(s State, index int) (Input, bool) {
	if index < 0 || index >= len(s.Remaining) {
		return Input{}, false
	}
	hint := index
	return Input{Letter: s.Remaining[index], Hint: &hint}, true
}

// CurrentWord returns the active word.
func (s State) CurrentWord() string {
	return s.Words.Current()
}

// WrongAttemptsFor returns the wrong-attempt count of word.
func (s State) WrongAttemptsFor(word string) int {
	return s.WrongAttempts[word]
}

// Revealed returns the already assembled prefix of the current word.
func (s State) Revealed() string {
	word := []rune(s.Words.Current())
	n := len(word) - len(s.Remaining)
	if n < 0 {
		n = 0
	}
	return string(word[:n])
}

// ExpectedLetter returns the next letter of the current word, using the
// remaining count as the cursor into the word. It returns false when no
// letter is expected.
func ExpectedLetter(s State) (rune, bool) {
	word := []rune(s.Words.Current())
	i := len(word) - len(s.Remaining)
	if len(s.Remaining) == 0 || i < 0 || i >= len(word) {
		return 0, false
	}
	return word[i], true
}

// IsInProgress reports whether the run has more to play: either more words
// follow, or the current word still has letters and budget left.
func IsInProgress(s State) bool {
	return s.Words.Index() < s.Words.Len()-1 ||
		(len(s.Remaining) > 0 && s.WrongAttempts[s.Words.Current()] < s.MaxWrongAttempts)
}

// IsFinished reports whether the run reached a terminal status.
func IsFinished(s State) bool {
	switch s.Status.(type) {
	case GameFinishedCorrect, GameFinishedFailed:
		return true
	default:
		return false
	}
}

// IsSettled reports whether no question advance is owed.
func IsSettled(s State) bool {
	switch s.Status.(type) {
	case AnswerCorrect, AnswerFailed:
		return false
	default:
		return true
	}
}

// clone returns a copy of s that shares nothing mutable with it.
func (s State) clone() State {
	s.Remaining = slices.Clone(s.Remaining)
	s.WrongAttempts = maps.Clone(s.WrongAttempts)
	if s.WrongAttempts == nil {
		s.WrongAttempts = map[string]int{}
	}
	s.Rev++
	return s
}

func sameLetter(a, b rune) bool {
	return unicode.ToLower(a) == unicode.ToLower(b)
}
