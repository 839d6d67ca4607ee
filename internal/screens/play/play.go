// Package play is the drill screen. It turns key presses into drill inputs,
// drives the game's task queue from Bubble Tea ticks and animates the letter
// tiles with a queue of its own.
package play

import (
	"fmt"
	"slices"
	"strconv"
	"time"
	"unicode"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/spellz/internal/drill"
	"github.com/abhisek/spellz/internal/game"
	"github.com/abhisek/spellz/internal/router"
	"github.com/abhisek/spellz/internal/screen"
	"github.com/abhisek/spellz/internal/screens/summary"
	"github.com/abhisek/spellz/internal/taskqueue"
	"github.com/abhisek/spellz/internal/ui/layout"
)

// Tile flash durations.
const (
	matchFlash = 150 * time.Millisecond
	errorFlash = 400 * time.Millisecond
)

// tickMsg wakes the screen at the deadline it was armed for.
type tickMsg struct {
	at time.Time
}

// Options configures the screen.
type Options struct {
	// Now must be the clock of the game's queue. Defaults to time.Now.
	Now    func() time.Time
	Logger *zap.Logger
}

// PlayScreen implements screen.Screen for a drill run.
type PlayScreen struct {
	game   *game.Game
	anim   *taskqueue.Queue
	now    func() time.Time
	logger *zap.Logger

	// tiles gives each entry of Remaining a stable identity, so a flash
	// follows its tile when an earlier one moves to the answer.
	tiles []int
	// errFlash maps a tile to the task that ends its error flash.
	errFlash map[int]taskqueue.ID
	// fresh is the task that ends the highlight of the last matched letter.
	fresh taskqueue.ID

	tickAt     time.Time
	advanced   bool
	done       bool
	stopObserv func()
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.StatusProvider = (*PlayScreen)(nil)

// New creates a PlayScreen over g.
func New(g *game.Game, opts Options) *PlayScreen {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	s := &PlayScreen{
		game:     g,
		anim:     taskqueue.New(taskqueue.WithClock(opts.Now)),
		now:      opts.Now,
		logger:   opts.Logger,
		errFlash: make(map[int]taskqueue.ID),
	}
	s.stopObserv = g.Queue().OnExecute(func() { s.advanced = true })
	s.resetTiles()
	return s
}

func (s *PlayScreen) Init() tea.Cmd {
	return s.schedule()
}

func (s *PlayScreen) Title() string {
	return "Spell the word"
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "a-z", Description: "Type a letter"},
		{Key: "1-9", Description: "Pick a tile"},
		{Key: "Esc", Description: "Home"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *PlayScreen) HeaderStatus() string {
	st := s.game.State()
	used := st.WrongAttemptsFor(st.CurrentWord())
	return fmt.Sprintf("✗ %d/%d", used, st.MaxWrongAttempts)
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.at.Equal(s.tickAt) {
			s.tickAt = time.Time{}
		}
		now := s.now()
		s.game.Queue().RunDue(now)
		s.anim.RunDue(now)

	case tea.KeyMsg:
		if ev, ok := s.keyInput(msg.String()); ok {
			s.input(ev)
		}
	}

	if s.advanced {
		s.advanced = false
		s.resetTiles()
	}
	if drill.IsFinished(s.game.State()) {
		return s, s.finish()
	}
	return s, s.schedule()
}

// keyInput maps a key to a drill input: a letter is typed, a digit picks
// the tile at that position.
func (s *PlayScreen) keyInput(key string) (drill.Input, bool) {
	r, size := utf8.DecodeRuneInString(key)
	if size != len(key) {
		return drill.Input{}, false
	}
	switch {
	case unicode.IsLetter(r):
		return drill.KeyInput(r), true
	case r >= '1' && r <= '9':
		n, _ := strconv.Atoi(key)
		return drill.TileInput(s.game.State(), n-1)
	}
	return drill.Input{}, false
}

func (s *PlayScreen) input(ev drill.Input) {
	onTile := slices.ContainsFunc(s.game.State().Remaining, func(r rune) bool {
		return unicode.ToLower(r) == unicode.ToLower(ev.Letter)
	})
	if !s.game.Input(ev) {
		return
	}
	if _, failed := s.game.State().Status.(drill.AnswerFailed); !onTile && !failed {
		// Costs an attempt without touching any tile.
		return
	}
	switch st := s.game.State().Status.(type) {
	case drill.LetterMatched:
		s.dropTile(st.Index)
		s.flashFresh()
	case drill.AnswerCorrect:
		s.resetTiles()
		s.flashFresh()
	case drill.LetterError:
		s.flashError(s.tiles[st.Index])
	case drill.AnswerFailed:
		s.resetTiles()
	}
}

// flashError marks tile in error until its flash ends. A repeat flash on
// the same tile replaces the pending one.
func (s *PlayScreen) flashError(tile int) {
	if id, ok := s.errFlash[tile]; ok {
		s.anim.Remove(id)
	}
	s.errFlash[tile] = s.anim.Push(func() { delete(s.errFlash, tile) }, errorFlash)
}

func (s *PlayScreen) flashFresh() {
	if s.fresh != 0 {
		s.anim.Remove(s.fresh)
	}
	s.fresh = s.anim.Push(func() { s.fresh = 0 }, matchFlash)
}

// dropTile follows the removal of Remaining[i] into the answer.
func (s *PlayScreen) dropTile(i int) {
	tile := s.tiles[i]
	if id, ok := s.errFlash[tile]; ok {
		s.anim.Remove(id)
		delete(s.errFlash, tile)
	}
	s.tiles = slices.Delete(s.tiles, i, i+1)
}

// resetTiles cancels every animation and numbers the tiles of the current
// question afresh.
func (s *PlayScreen) resetTiles() {
	s.anim.Clear()
	clear(s.errFlash)
	s.fresh = 0
	n := len(s.game.State().Remaining)
	s.tiles = make([]int, n)
	for i := range n {
		s.tiles[i] = i
	}
}

// schedule arms a tick for the earliest pending task of either queue unless
// an outstanding tick fires no later.
func (s *PlayScreen) schedule() tea.Cmd {
	deadline, ok := s.nextDeadline()
	if !ok {
		return nil
	}
	if !s.tickAt.IsZero() && !deadline.Before(s.tickAt) {
		return nil
	}
	s.tickAt = deadline
	return tea.Tick(max(deadline.Sub(s.now()), 0), func(time.Time) tea.Msg {
		return tickMsg{at: deadline}
	})
}

func (s *PlayScreen) nextDeadline() (time.Time, bool) {
	g, gok := s.game.Queue().NextDeadline()
	a, aok := s.anim.NextDeadline()
	switch {
	case gok && aok:
		if a.Before(g) {
			return a, true
		}
		return g, true
	case gok:
		return g, true
	default:
		return a, aok
	}
}

func (s *PlayScreen) finish() tea.Cmd {
	if s.done {
		return nil
	}
	s.done = true
	s.stopObserv()
	s.resetTiles()
	st := s.game.State()
	s.logger.Info("showing summary", zap.String("status", string(st.Status.Kind())))
	next := summary.New(s.game.Stats(), st)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}
