// Package game binds a drill State to the task queue that runs its question
// advances and to the slot store that makes a run survive a restart.
//
// A Game is owned by a single loop, the Bubble Tea update loop in the TUI.
// While an advance is pending, inputs are refused, so every mutation between
// two settled states happens inside a queued task. That is what lets Restore
// rebuild the queue from one recorded input.
package game

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/spellz/internal/drill"
	"github.com/abhisek/spellz/internal/snapshot"
	"github.com/abhisek/spellz/internal/store"
	"github.com/abhisek/spellz/internal/taskqueue"
)

// DefaultSettleDelay is how long a finished answer stays on screen before
// the next question.
const DefaultSettleDelay = 800 * time.Millisecond

// Recorder persists the record written after every accepted input.
type Recorder interface {
	Save(ctx context.Context, slots store.Slots) error
	Clear(ctx context.Context) error
}

// Game is a drill run in play.
type Game struct {
	state       drill.State
	queue       *taskqueue.Queue
	recorder    Recorder
	settleDelay time.Duration
	logger      *zap.Logger
	runID       string
}

// Option configures a Game.
type Option func(*Game)

// WithQueue runs question advances on q instead of a private queue.
func WithQueue(q *taskqueue.Queue) Option {
	return func(g *Game) { g.queue = q }
}

// WithRecorder persists every accepted input to r.
func WithRecorder(r Recorder) Option {
	return func(g *Game) { g.recorder = r }
}

// WithSettleDelay sets the delay between a finished answer and the advance.
func WithSettleDelay(d time.Duration) Option {
	return func(g *Game) { g.settleDelay = d }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// New starts a Game at state.
func New(state drill.State, opts ...Option) *Game {
	g := &Game{
		state:       state,
		settleDelay: DefaultSettleDelay,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.queue == nil {
		g.queue = taskqueue.New()
	}
	g.runID = uuid.New().String()
	g.logger = g.logger.With(zap.String("run_id", g.runID))
	return g
}

// State returns the current state.
func (g *Game) State() drill.State { return g.state }

// Queue returns the queue that runs question advances. The host drives it.
func (g *Game) Queue() *taskqueue.Queue { return g.queue }

// Stats returns the statistics of the run so far.
func (g *Game) Stats() drill.Stats { return drill.CalcStats(g.state) }

// RunID identifies this run in logs.
func (g *Game) RunID() string { return g.runID }

// Input applies ev and reports whether it was accepted. Inputs are refused
// while a question advance is pending.
func (g *Game) Input(ev drill.Input) bool {
	if g.queue.Len() > 0 {
		g.logger.Debug("input ignored while advance pending", zap.String("letter", string(ev.Letter)))
		return false
	}

	prev := g.state
	next, effect := drill.Apply(prev, ev)
	if next.Rev == prev.Rev {
		return false
	}
	g.state = next

	if effect == drill.EffectScheduleAdvance {
		g.queue.Push(g.advance, g.settleDelay)
	}
	g.logger.Debug("input applied",
		zap.String("letter", string(ev.Letter)),
		zap.String("status", string(next.Status.Kind())),
		zap.Stringer("effect", effect),
		zap.Uint64("rev", next.Rev),
	)

	g.record(prev, ev, next)
	return true
}

// Restart replaces the run with a fresh one over words and forgets the
// saved record. The budget carries over unless opts override it.
func (g *Game) Restart(words []string, opts ...drill.Option) {
	g.queue.Clear()
	rev := g.state.Rev

	opts = append([]drill.Option{drill.WithMaxWrongAttempts(g.state.MaxWrongAttempts)}, opts...)
	g.state = drill.NewState(words, opts...)
	g.state.Rev = rev + 1

	g.clearRecord()
	g.logger.Info("run restarted", zap.Int("words", g.state.Words.Len()))
}

// advance is the queued question advance.
func (g *Game) advance() {
	g.state = drill.Advance(g.state)
	g.logger.Debug("question advanced",
		zap.String("status", string(g.state.Status.Kind())),
		zap.Int("position", g.state.Words.Index()),
	)
	if drill.IsFinished(g.state) {
		stats := g.Stats()
		g.logger.Info("run finished",
			zap.String("status", string(g.state.Status.Kind())),
			zap.Int("perfect_words", stats.PerfectWords),
			zap.Int("wrong_attempts", stats.TotalWrongAttempts),
		)
		g.clearRecord()
	}
}

// scheduleOwedAdvance queues the advance an unsettled state is waiting for
// when nothing else will.
func (g *Game) scheduleOwedAdvance() {
	if !drill.IsSettled(g.state) && g.queue.Len() == 0 {
		g.queue.Push(g.advance, g.settleDelay)
	}
}

func (g *Game) record(prev drill.State, ev drill.Input, next drill.State) {
	if g.recorder == nil {
		return
	}
	slots, err := snapshot.EncodeRecord(snapshot.Record{Current: next, Previous: &prev, Input: &ev})
	if err != nil {
		g.logger.Error("encode record", zap.Error(err))
		return
	}
	// Best-effort: a failed write never interrupts play.
	if err := g.recorder.Save(context.Background(), slots); err != nil {
		g.logger.Warn("save record", zap.Error(err))
	}
}

func (g *Game) clearRecord() {
	if g.recorder == nil {
		return
	}
	if err := g.recorder.Clear(context.Background()); err != nil {
		g.logger.Warn("clear record", zap.Error(err))
	}
}
