// Package snapshot encodes drill states and inputs for the slot store and
// decodes them back. Decoding is all-or-nothing: a payload either yields a
// State that satisfies drill.Validate or a *DecodeError.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/spellz/internal/cursor"
	"github.com/abhisek/spellz/internal/drill"
	"github.com/abhisek/spellz/internal/store"
)

// Version is the current encoding version.
const Version = 1

// DecodeError reports a persisted payload that could not be restored.
type DecodeError struct {
	Slot string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s slot: %v", e.Slot, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type stateJSON struct {
	Version          int            `json:"version"`
	Words            []string       `json:"words"`
	Position         int            `json:"position"`
	MaxWrongAttempts int            `json:"maxWrongAttempts"`
	Remaining        string         `json:"remaining"`
	WrongAttempts    map[string]int `json:"wrongAttempts"`
	Status           statusJSON     `json:"status"`
	Seed             uint64         `json:"seed"`
	Rev              uint64         `json:"rev"`
}

type statusJSON struct {
	Kind        drill.Kind `json:"kind"`
	LetterIndex *int       `json:"letterIndex,omitempty"`
}

type inputJSON struct {
	Letter string `json:"letter"`
	Hint   *int   `json:"hint,omitempty"`
}

// EncodeState serializes s.
func EncodeState(s drill.State) ([]byte, error) {
	st, err := encodeStatus(s.Status)
	if err != nil {
		return nil, err
	}
	wrong := s.WrongAttempts
	if wrong == nil {
		wrong = map[string]int{}
	}
	return json.Marshal(stateJSON{
		Version:          Version,
		Words:            s.Words.Values(),
		Position:         s.Words.Index(),
		MaxWrongAttempts: s.MaxWrongAttempts,
		Remaining:        string(s.Remaining),
		WrongAttempts:    wrong,
		Status:           st,
		Seed:             s.Seed,
		Rev:              s.Rev,
	})
}

// EncodeInput serializes ev.
func EncodeInput(ev drill.Input) ([]byte, error) {
	return json.Marshal(inputJSON{Letter: string(ev.Letter), Hint: ev.Hint})
}

// DecodeState restores a State written by EncodeState.
func DecodeState(data []byte) (drill.State, error) {
	s, err := decodeState(data)
	if err != nil {
		return drill.State{}, &DecodeError{Slot: "state", Err: err}
	}
	return s, nil
}

func decodeState(data []byte) (drill.State, error) {
	if err := validate("drill-state", data); err != nil {
		return drill.State{}, err
	}
	var raw stateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return drill.State{}, fmt.Errorf("unmarshal state: %w", err)
	}
	if raw.Position >= len(raw.Words) {
		return drill.State{}, fmt.Errorf("position %d out of range for %d words", raw.Position, len(raw.Words))
	}
	status, err := decodeStatus(raw.Status)
	if err != nil {
		return drill.State{}, err
	}

	s := drill.State{
		Status:           status,
		Words:            cursor.At(raw.Words, raw.Position),
		MaxWrongAttempts: raw.MaxWrongAttempts,
		Remaining:        []rune(raw.Remaining),
		WrongAttempts:    raw.WrongAttempts,
		Seed:             raw.Seed,
		Rev:              raw.Rev,
	}
	if err := drill.Validate(s); err != nil {
		return drill.State{}, err
	}
	return s, nil
}

// DecodeInput restores an Input written by EncodeInput.
func DecodeInput(data []byte) (drill.Input, error) {
	ev, err := decodeInput(data)
	if err != nil {
		return drill.Input{}, &DecodeError{Slot: "input", Err: err}
	}
	return ev, nil
}

func decodeInput(data []byte) (drill.Input, error) {
	if err := validate("drill-input", data); err != nil {
		return drill.Input{}, err
	}
	var raw inputJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return drill.Input{}, fmt.Errorf("unmarshal input: %w", err)
	}
	letters := []rune(raw.Letter)
	return drill.Input{Letter: letters[0], Hint: raw.Hint}, nil
}

func encodeStatus(st drill.Status) (statusJSON, error) {
	switch st := st.(type) {
	case drill.LetterMatched:
		return statusJSON{Kind: st.Kind(), LetterIndex: &st.Index}, nil
	case drill.LetterError:
		return statusJSON{Kind: st.Kind(), LetterIndex: &st.Index}, nil
	case drill.ReadyForInput, drill.AnswerCorrect, drill.AnswerFailed,
		drill.GameFinishedCorrect, drill.GameFinishedFailed:
		return statusJSON{Kind: st.Kind()}, nil
	case nil:
		return statusJSON{}, errors.New("encode status: nil status")
	default:
		panic(fmt.Sprintf("snapshot: unknown status %T", st))
	}
}

func decodeStatus(raw statusJSON) (drill.Status, error) {
	index := func() int {
		if raw.LetterIndex == nil {
			return 0
		}
		return *raw.LetterIndex
	}
	switch raw.Kind {
	case drill.KindReadyForInput:
		return drill.ReadyForInput{}, nil
	case drill.KindLetterMatched:
		return drill.LetterMatched{Index: index()}, nil
	case drill.KindLetterError:
		return drill.LetterError{Index: index()}, nil
	case drill.KindAnswerCorrect:
		return drill.AnswerCorrect{}, nil
	case drill.KindAnswerFailed:
		return drill.AnswerFailed{}, nil
	case drill.KindGameFinishedCorrect:
		return drill.GameFinishedCorrect{}, nil
	case drill.KindGameFinishedFailed:
		return drill.GameFinishedFailed{}, nil
	default:
		return nil, fmt.Errorf("unknown status kind %q", raw.Kind)
	}
}

// Record is a decoded slot set. Previous and Input are either both set or
// both nil.
type Record struct {
	Current  drill.State
	Previous *drill.State
	Input    *drill.Input
}

// EncodeRecord serializes r into slots.
func EncodeRecord(r Record) (store.Slots, error) {
	var (
		slots store.Slots
		err   error
	)
	if slots.Current, err = EncodeState(r.Current); err != nil {
		return store.Slots{}, fmt.Errorf("encode current: %w", err)
	}
	if r.Previous != nil {
		if slots.Previous, err = EncodeState(*r.Previous); err != nil {
			return store.Slots{}, fmt.Errorf("encode previous: %w", err)
		}
	}
	if r.Input != nil {
		if slots.Input, err = EncodeInput(*r.Input); err != nil {
			return store.Slots{}, fmt.Errorf("encode input: %w", err)
		}
	}
	return slots, nil
}

// DecodeRecord decodes all three slots. Any malformed slot rejects the whole
// record.
func DecodeRecord(slots store.Slots) (Record, error) {
	if slots.Current == nil {
		return Record{}, &DecodeError{Slot: store.SlotCurrent, Err: errors.New("missing")}
	}
	if (slots.Previous == nil) != (slots.Input == nil) {
		return Record{}, &DecodeError{Slot: store.SlotPrevious, Err: errors.New("previous and input must be stored together")}
	}

	cur, err := decodeState(slots.Current)
	if err != nil {
		return Record{}, &DecodeError{Slot: store.SlotCurrent, Err: err}
	}
	rec := Record{Current: cur}
	if slots.Previous == nil {
		return rec, nil
	}

	prev, err := decodeState(slots.Previous)
	if err != nil {
		return Record{}, &DecodeError{Slot: store.SlotPrevious, Err: err}
	}
	ev, err := decodeInput(slots.Input)
	if err != nil {
		return Record{}, &DecodeError{Slot: store.SlotInput, Err: err}
	}
	rec.Previous = &prev
	rec.Input = &ev
	return rec, nil
}
