// Package resume offers to continue a run restored from the store.
package resume

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/spellz/internal/game"
	"github.com/abhisek/spellz/internal/router"
	"github.com/abhisek/spellz/internal/screen"
	"github.com/abhisek/spellz/internal/screens/home"
	"github.com/abhisek/spellz/internal/screens/play"
	"github.com/abhisek/spellz/internal/ui/layout"
	"github.com/abhisek/spellz/internal/ui/theme"
)

// ResumeScreen asks whether to continue a saved run. It is pushed above the
// home screen; declining drops the record and has home start a fresh run.
type ResumeScreen struct {
	game     *game.Game
	recorder game.Recorder
	playOpts play.Options
}

var _ screen.Screen = (*ResumeScreen)(nil)
var _ screen.KeyHintProvider = (*ResumeScreen)(nil)

// New creates a ResumeScreen for the restored g. recorder is cleared when
// the player declines.
func New(g *game.Game, recorder game.Recorder, opts play.Options) *ResumeScreen {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &ResumeScreen{game: g, recorder: recorder, playOpts: opts}
}

func (s *ResumeScreen) Init() tea.Cmd {
	return nil
}

func (s *ResumeScreen) Title() string {
	return "Welcome back"
}

func (s *ResumeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Y", Description: "Continue"},
		{Key: "N", Description: "New run"},
	}
}

func (s *ResumeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "y", "Y", "enter":
		next := play.New(s.game, s.playOpts)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case "n", "N":
		if s.recorder != nil {
			if err := s.recorder.Clear(context.Background()); err != nil {
				s.playOpts.Logger.Warn("clear saved run", zap.Error(err))
			}
		}
		s.playOpts.Logger.Info("saved run declined", zap.String("run_id", s.game.RunID()))
		return s, func() tea.Msg { return router.PopScreenMsg{Then: home.StartMsg{}} }
	}
	return s, nil
}

func (s *ResumeScreen) View(width, height int) string {
	st := s.game.State()
	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("You have an unfinished run"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("Word %d of %d, %d spelled so far.", st.Words.Index()+1, st.Words.Len(), st.Words.Index())))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Body.Render("Continue where you left off? (y/n)")))
	return layout.Center(b.String(), width, height)
}
