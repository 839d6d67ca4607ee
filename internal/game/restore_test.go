package game

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/spellz/internal/drill"
	"github.com/abhisek/spellz/internal/snapshot"
	"github.com/abhisek/spellz/internal/store"
)

// scripts are full runs over dog, cat, fox.
var scripts = map[string][]string{
	// one slip on dog, cat failed, fox spelled cleanly
	"tile picks": {
		"wrong", "right", "right", "right",
		"wrong", "right", "wrong", "wrong",
		"right", "right", "right",
	},
	// letters on no tile count against the word too
	"off-tile letters": {
		"invisible", "right", "invisible", "right", "right",
		"invisible", "wrong", "invisible",
		"right", "invisible", "right", "right",
	},
}

func step(t *testing.T, g *Game, move string) {
	t.Helper()
	var ok bool
	switch move {
	case "right":
		ok = right(t, g)
	case "wrong":
		ok = wrong(t, g)
	case "invisible":
		ok = invisible(t, g)
	default:
		t.Fatalf("unknown move %q", move)
	}
	require.True(t, ok, "move %s refused in %s", move, g.State().Status.Kind())
}

// TestRestore_ReplayMatchesLiveRun stops a run after every input, restores
// it from the saved record, and checks the restored game equals the live
// game once the live game's pending tasks have run.
func TestRestore_ReplayMatchesLiveRun(t *testing.T) {
	for name, script := range scripts {
		for n := 1; n <= len(script); n++ {
			t.Run(fmt.Sprintf("%s/after %d inputs", name, n), func(t *testing.T) {
				repo := &memRepo{}
				live, _ := newTestGame(t, []string{"dog", "cat", "fox"}, repo)
				for _, move := range script[:n] {
					live.Queue().RunAllNow()
					step(t, live, move)
				}
				saved := repo.copy()
				live.Queue().RunAllNow()

				restored, result, err := Restore(context.Background(), saved)
				require.NoError(t, err)

				if drill.IsFinished(live.State()) {
					assert.Equal(t, RestoreNone, result)
					assert.Nil(t, restored)
					assert.True(t, saved.slots.Empty())
					return
				}
				require.Equal(t, RestoreResumed, result)
				if diff := cmp.Diff(live.State(), restored.State(), stateCmp); diff != "" {
					t.Fatalf("restored state differs (-live +restored):\n%s", diff)
				}
				assert.Equal(t, 0, restored.Queue().Len())
			})
		}
	}
}

func TestRestore_OffTileLetterCountSurvives(t *testing.T) {
	repo := &memRepo{}
	live, _ := newTestGame(t, []string{"dog", "cat"}, repo)
	require.True(t, invisible(t, live))
	require.True(t, invisible(t, live))

	g, result, err := Restore(context.Background(), repo.copy())
	require.NoError(t, err)
	require.Equal(t, RestoreResumed, result)
	assert.Equal(t, 2, g.State().WrongAttemptsFor("dog"))

	require.True(t, invisible(t, g))
	assert.Equal(t, drill.AnswerFailed{}, g.State().Status)
}

func TestRestore_ResumedGameKeepsPlaying(t *testing.T) {
	repo := &memRepo{}
	live, _ := newTestGame(t, []string{"dog", "cat"}, repo)
	spellWord(t, live)

	g, result, err := Restore(context.Background(), repo)
	require.NoError(t, err)
	require.Equal(t, RestoreResumed, result)
	assert.Equal(t, "cat", g.State().CurrentWord())
	assert.Equal(t, drill.ReadyForInput{}, g.State().Status)

	saves := repo.saves
	require.True(t, right(t, g))
	assert.Equal(t, saves+1, repo.saves, "restored game records into the repo")
}

func TestRestore_Empty(t *testing.T) {
	g, result, err := Restore(context.Background(), &memRepo{})
	require.NoError(t, err)
	assert.Equal(t, RestoreNone, result)
	assert.Nil(t, g)
}

func TestRestore_OrphanSlotsCleared(t *testing.T) {
	repo := &memRepo{slots: store.Slots{Previous: []byte("{}"), Input: []byte("{}")}}
	_, result, err := Restore(context.Background(), repo)
	require.NoError(t, err)
	assert.Equal(t, RestoreNone, result)
	assert.True(t, repo.slots.Empty())
}

func TestRestore_LoadError(t *testing.T) {
	repo := &memRepo{loadErr: errors.New("locked")}
	_, _, err := Restore(context.Background(), repo)
	assert.ErrorContains(t, err, "load slots")
}

func TestRestore_CorruptedDiscarded(t *testing.T) {
	prev := drill.NewState([]string{"dog", "cat"}, drill.WithSeed(1))
	ev := drill.KeyInput('d')
	cur, _ := drill.Apply(prev, ev)
	good, err := snapshot.EncodeRecord(snapshot.Record{Current: cur, Previous: &prev, Input: &ev})
	require.NoError(t, err)

	for name, slots := range map[string]store.Slots{
		"garbage current":  {Current: []byte("not json")},
		"bad input":        {Current: good.Current, Previous: good.Previous, Input: []byte(`{"letter":"7"}`)},
		"missing input":    {Current: good.Current, Previous: good.Previous},
		"invariant broken": {Current: []byte(`{"version":1,"words":["dog"],"position":0,"maxWrongAttempts":3,"remaining":"xyz","wrongAttempts":{},"status":{"kind":"ready_for_input"},"seed":1,"rev":0}`)},
	} {
		t.Run(name, func(t *testing.T) {
			repo := &memRepo{slots: slots}
			g, result, err := Restore(context.Background(), repo)
			require.NoError(t, err)
			assert.Equal(t, RestoreDiscarded, result)
			assert.Nil(t, g)
			assert.True(t, repo.slots.Empty())
			assert.Equal(t, 1, repo.clears)
		})
	}
}

func TestRestore_FinishedRunIsNone(t *testing.T) {
	repo := &memRepo{}
	live, _ := newTestGame(t, []string{"dog"}, repo)
	spellWord(t, live)
	require.Equal(t, drill.AnswerCorrect{}, live.State().Status)

	_, result, err := Restore(context.Background(), repo)
	require.NoError(t, err)
	assert.Equal(t, RestoreNone, result)
	assert.True(t, repo.slots.Empty())
}

func TestRestore_CurrentOnly(t *testing.T) {
	s := drill.NewState([]string{"dog", "cat"}, drill.WithSeed(4))
	s, _ = drill.Apply(s, drill.KeyInput('d'))
	slots, err := snapshot.EncodeRecord(snapshot.Record{Current: s})
	require.NoError(t, err)

	g, result, err := Restore(context.Background(), &memRepo{slots: slots})
	require.NoError(t, err)
	require.Equal(t, RestoreResumed, result)
	if diff := cmp.Diff(s, g.State(), stateCmp); diff != "" {
		t.Errorf("state differs (-want +got):\n%s", diff)
	}
	assert.Equal(t, 0, g.Queue().Len())
}

func TestRestore_CurrentOnlyOwedAdvanceRuns(t *testing.T) {
	s := drill.NewState([]string{"dog", "cat"}, drill.WithSeed(4))
	for _, r := range "dog" {
		s, _ = drill.Apply(s, drill.KeyInput(r))
	}
	require.Equal(t, drill.AnswerCorrect{}, s.Status)
	slots, err := snapshot.EncodeRecord(snapshot.Record{Current: s})
	require.NoError(t, err)

	g, result, err := Restore(context.Background(), &memRepo{slots: slots})
	require.NoError(t, err)
	require.Equal(t, RestoreResumed, result)
	assert.Equal(t, "cat", g.State().CurrentWord())
	if diff := cmp.Diff(drill.Advance(s), g.State(), stateCmp); diff != "" {
		t.Errorf("state differs (-want +got):\n%s", diff)
	}
}

func TestRestore_SQLiteStore(t *testing.T) {
	st, err := store.Open("file:restore_sqlite?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	repo := st.SlotRepo()

	live, _ := newTestGame(t, []string{"dog", "cat"}, repo)
	require.True(t, wrong(t, live))
	require.True(t, right(t, live))

	g, result, err := Restore(context.Background(), repo)
	require.NoError(t, err)
	require.Equal(t, RestoreResumed, result)
	if diff := cmp.Diff(live.State(), g.State(), stateCmp); diff != "" {
		t.Errorf("state differs (-live +restored):\n%s", diff)
	}
}
