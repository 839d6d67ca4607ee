package home

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/spellz/internal/config"
	"github.com/abhisek/spellz/internal/drill"
	"github.com/abhisek/spellz/internal/game"
	"github.com/abhisek/spellz/internal/router"
	"github.com/abhisek/spellz/internal/screen"
	"github.com/abhisek/spellz/internal/screens/play"
	"github.com/abhisek/spellz/internal/taskqueue"
	"github.com/abhisek/spellz/internal/ui/components"
	"github.com/abhisek/spellz/internal/ui/layout"
	"github.com/abhisek/spellz/internal/ui/theme"
	"github.com/abhisek/spellz/internal/wordlist"
)

// StartMsg starts a run as if Enter was pressed.
type StartMsg struct{}

// wordsReadyMsg carries the words for a new run.
type wordsReadyMsg struct {
	words []string
	err   error
}

// Options are the dependencies of the home screen.
type Options struct {
	Game config.GameConfig

	// Recorder persists new runs. Nil disables persistence.
	Recorder game.Recorder

	// Generator produces themed lists. Nil means the theme is ignored.
	Generator *wordlist.Generator

	Logger *zap.Logger
	Now    func() time.Time
	Seed   func() uint64
}

// HomeScreen asks for an optional theme and starts a run.
type HomeScreen struct {
	opts    Options
	input   components.TextInput
	loading bool
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Seed == nil {
		opts.Seed = rand.Uint64
	}
	input := components.NewTextInput("any theme, or leave empty", 40)
	input.SetValue(opts.Game.Theme)
	return &HomeScreen{opts: opts, input: input}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.input.Init()
}

func (h *HomeScreen) Resume() tea.Cmd {
	h.loading = false
	return h.input.Init()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case wordsReadyMsg:
		return h.handleWords(msg)

	case StartMsg:
		return h, h.start()

	case tea.KeyMsg:
		if h.loading {
			return h, nil
		}
		if msg.String() == "enter" {
			return h, h.start()
		}
	}

	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

func (h *HomeScreen) start() tea.Cmd {
	if h.loading {
		return nil
	}
	h.loading = true
	h.errMsg = ""
	return h.resolveWords(strings.TrimSpace(h.input.Value()))
}

// resolveWords loads or generates the words off the update loop.
func (h *HomeScreen) resolveWords(theme string) tea.Cmd {
	src := wordlist.Source{
		File:  h.opts.Game.WordsFile,
		Theme: theme,
		Count: h.opts.Game.WordCount,
		Seed:  h.opts.Seed(),
	}
	gen, logger := h.opts.Generator, h.opts.Logger
	return func() tea.Msg {
		words, err := wordlist.Resolve(context.Background(), src, gen, logger)
		return wordsReadyMsg{words: words, err: err}
	}
}

func (h *HomeScreen) handleWords(msg wordsReadyMsg) (screen.Screen, tea.Cmd) {
	h.loading = false
	if msg.err != nil {
		h.errMsg = msg.err.Error()
		return h, nil
	}
	g := h.newGame(msg.words)
	next := play.New(g, play.Options{Now: h.opts.Now, Logger: h.opts.Logger})
	return h, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

// newGame starts a run over words and drops any saved record.
func (h *HomeScreen) newGame(words []string) *game.Game {
	cfg := h.opts.Game
	state := drill.NewState(words,
		drill.WithMaxWrongAttempts(cfg.MaxWrongAttempts),
		drill.WithSeed(h.opts.Seed()),
	)
	opts := []game.Option{
		game.WithQueue(taskqueue.New(taskqueue.WithClock(h.opts.Now))),
		game.WithSettleDelay(cfg.SettleDelay),
		game.WithLogger(h.opts.Logger),
	}
	if h.opts.Recorder != nil {
		if err := h.opts.Recorder.Clear(context.Background()); err != nil {
			h.opts.Logger.Warn("clear saved run", zap.Error(err))
		}
		opts = append(opts, game.WithRecorder(h.opts.Recorder))
	}
	g := game.New(state, opts...)
	h.opts.Logger.Info("run started", zap.String("run_id", g.RunID()), zap.Int("words", len(words)))
	return g
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderBanner(width)))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Put the letters back in order."))
	b.WriteString("\n\n")

	prompt := "Theme"
	if h.opts.Generator == nil {
		prompt = "Theme (needs a language model, the bundled words are used)"
	}
	if h.opts.Game.WordsFile != "" {
		prompt = "Words come from " + h.opts.Game.WordsFile
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(prompt)))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.input.View()))
	b.WriteString("\n\n")

	switch {
	case h.loading:
		b.WriteString(theme.Subtitle.Width(width).Render("Finding words..."))
	case h.errMsg != "":
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Incorrect.Render(h.errMsg)))
	default:
		b.WriteString(theme.Subtitle.Width(width).Render("Press Enter to start"))
	}

	return layout.Center(b.String(), width, height)
}
