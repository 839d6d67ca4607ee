package drill

// Kind identifies a Status variant. The string values are part of the
// persisted snapshot format.
type Kind string

const (
	KindReadyForInput       Kind = "ready_for_input"
	KindLetterMatched       Kind = "letter_matched"
	KindLetterError         Kind = "letter_error"
	KindAnswerCorrect       Kind = "answer_correct"
	KindAnswerFailed        Kind = "answer_failed"
	KindGameFinishedCorrect Kind = "game_finished_correct"
	KindGameFinishedFailed  Kind = "game_finished_failed"
)

// Kinds lists every status kind in declaration order.
var Kinds = []Kind{
	KindReadyForInput,
	KindLetterMatched,
	KindLetterError,
	KindAnswerCorrect,
	KindAnswerFailed,
	KindGameFinishedCorrect,
	KindGameFinishedFailed,
}

// Status is the closed set of progress statuses. Only the types declared in
// this file implement it.
type Status interface {
	Kind() Kind
	isStatus()
}

// ReadyForInput waits for the next letter of the current word.
type ReadyForInput struct{}

// LetterMatched reports that the tile at Index of the previous remaining
// letters was accepted.
type LetterMatched struct {
	Index int
}

// LetterError reports a wrong pick of the tile at Index.
type LetterError struct {
	Index int
}

// AnswerCorrect means the word was completed; a question advance is pending.
type AnswerCorrect struct{}

// AnswerFailed means the wrong-attempt budget ran out; a question advance is
// pending.
type AnswerFailed struct{}

// GameFinishedCorrect is terminal: the last word was completed.
type GameFinishedCorrect struct{}

// GameFinishedFailed is terminal: the last word ran out of attempts.
type GameFinishedFailed struct{}

func (ReadyForInput) Kind() Kind       { return KindReadyForInput }
func (LetterMatched) Kind() Kind       { return KindLetterMatched }
func (LetterError) Kind() Kind         { return KindLetterError }
func (AnswerCorrect) Kind() Kind       { return KindAnswerCorrect }
func (AnswerFailed) Kind() Kind        { return KindAnswerFailed }
func (GameFinishedCorrect) Kind() Kind { return KindGameFinishedCorrect }
func (GameFinishedFailed) Kind() Kind  { return KindGameFinishedFailed }

func (ReadyForInput) isStatus()       {}
func (LetterMatched) isStatus()       {}
func (LetterError) isStatus()         {}
func (AnswerCorrect) isStatus()       {}
func (AnswerFailed) isStatus()        {}
func (GameFinishedCorrect) isStatus() {}
func (GameFinishedFailed) isStatus()  {}

// acceptsInput reports whether letter input is processed in status st.
func acceptsInput(st Status) bool {
	switch st.(type) {
	case ReadyForInput, LetterMatched, LetterError:
		return true
	default:
		return false
	}
}
