package game

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/abhisek/spellz/internal/drill"
	"github.com/abhisek/spellz/internal/snapshot"
	"github.com/abhisek/spellz/internal/store"
)

// RestoreResult tells the caller what Restore found.
type RestoreResult int

const (
	// RestoreNone means there is no run to resume.
	RestoreNone RestoreResult = iota

	// RestoreDiscarded means a saved record was unreadable and was deleted.
	RestoreDiscarded

	// RestoreResumed means a run was rebuilt and can continue.
	RestoreResumed
)

func (r RestoreResult) String() string {
	switch r {
	case RestoreDiscarded:
		return "discarded"
	case RestoreResumed:
		return "resumed"
	default:
		return "none"
	}
}

// Restore rebuilds the saved run from repo. When a previous state and an
// input are stored, the input is replayed against the previous state so the
// queue holds exactly the tasks the input scheduled; the current snapshot is
// then swapped in and the queue is run to a settled state.
//
// The returned Game records into repo unless opts set another recorder. It
// is nil unless the result is RestoreResumed.
func Restore(ctx context.Context, repo store.SlotRepo, opts ...Option) (*Game, RestoreResult, error) {
	log := zap.NewNop()
	scratch := &Game{logger: log}
	for _, opt := range opts {
		opt(scratch)
	}
	log = scratch.logger

	slots, ok, err := repo.Load(ctx)
	if err != nil {
		return nil, RestoreNone, fmt.Errorf("load slots: %w", err)
	}
	if !ok {
		if !slots.Empty() {
			log.Warn("discarding record without a current slot")
			if err := repo.Clear(ctx); err != nil {
				return nil, RestoreNone, fmt.Errorf("clear slots: %w", err)
			}
		}
		return nil, RestoreNone, nil
	}

	rec, err := snapshot.DecodeRecord(slots)
	if err != nil {
		log.Warn("discarding unreadable record", zap.Error(err))
		if err := repo.Clear(ctx); err != nil {
			return nil, RestoreDiscarded, fmt.Errorf("clear slots: %w", err)
		}
		return nil, RestoreDiscarded, nil
	}

	// Replay without a recorder: the stored record is already correct.
	replayOpts := slices.Concat(opts, []Option{WithRecorder(nil)})

	var g *Game
	if rec.Previous != nil {
		g = New(*rec.Previous, replayOpts...)
		if !g.Input(*rec.Input) {
			g.logger.Warn("recorded input was not accepted on replay",
				zap.String("letter", string(rec.Input.Letter)))
		}
		g.state = rec.Current
	} else {
		g = New(rec.Current, replayOpts...)
	}
	g.scheduleOwedAdvance()
	if g.queue.Len() > 0 {
		g.queue.RunAllNow()
	}

	if drill.IsFinished(g.state) {
		log.Info("saved run already finished")
		if err := repo.Clear(ctx); err != nil {
			return nil, RestoreNone, fmt.Errorf("clear slots: %w", err)
		}
		return nil, RestoreNone, nil
	}

	g.recorder = scratch.recorder
	if g.recorder == nil {
		g.recorder = repo
	}
	g.logger.Info("run restored",
		zap.Int("position", g.state.Words.Index()),
		zap.String("status", string(g.state.Status.Kind())),
	)
	return g, RestoreResumed, nil
}
