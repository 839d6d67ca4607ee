package store

import (
	"context"
	"time"
)

// Slot names of the persisted drill record.
const (
	SlotCurrent  = "current"
	SlotPrevious = "previous"
	SlotInput    = "input"
)

// Slots is the raw content of the three record slots. A nil field means the
// slot is absent.
type Slots struct {
	Current  []byte
	Previous []byte
	Input    []byte
}

// Empty reports whether no slot holds data.
func (s Slots) Empty() bool {
	return s.Current == nil && s.Previous == nil && s.Input == nil
}

// SlotRepo stores the in-progress drill record.
type SlotRepo interface {
	// Load returns the stored slots. ok is false when the current slot is
	// absent, which means there is no session to restore.
	Load(ctx context.Context) (slots Slots, ok bool, err error)

	// Save replaces all three slots in one transaction. Nil fields delete
	// the corresponding slot.
	Save(ctx context.Context, slots Slots) error

	// Clear deletes every slot.
	Clear(ctx context.Context) error

	// UpdatedAt returns when the current slot was last written.
	UpdatedAt(ctx context.Context) (time.Time, bool, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMUsage aggregates recorded LLM requests.
type LLMUsage struct {
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// LLMUsage sums every recorded request.
	LLMUsage(ctx context.Context) (LLMUsage, error)
}
