package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellz/internal/drill"
	"github.com/abhisek/spellz/internal/router"
	"github.com/abhisek/spellz/internal/screen"
	"github.com/abhisek/spellz/internal/ui/components"
	"github.com/abhisek/spellz/internal/ui/layout"
	"github.com/abhisek/spellz/internal/ui/theme"
)

// SummaryScreen displays the statistics of a finished run.
type SummaryScreen struct {
	stats drill.Stats
	state drill.State
	menu  components.Menu
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for the run that ended in state.
func New(stats drill.Stats, state drill.State) *SummaryScreen {
	return &SummaryScreen{
		stats: stats,
		state: state,
		menu: components.NewMenu([]components.MenuItem{
			{Label: "New words", Action: func() tea.Cmd {
				return func() tea.Msg { return router.PopToRootMsg{} }
			}},
			{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
		}),
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder

	headline := "Run complete!"
	if _, ok := s.state.Status.(drill.GameFinishedFailed); ok {
		headline = "Good try!"
	}
	b.WriteString(theme.Title.Width(width).Render(headline))
	b.WriteString("\n\n")

	total := s.state.Words.Len()
	b.WriteString(theme.Body.Width(width).Align(lipgloss.Center).Render(fmt.Sprintf(
		"Perfect words: %d/%d        Wrong attempts: %d",
		s.stats.PerfectWords, total, s.stats.TotalWrongAttempts)))
	b.WriteString("\n")
	if s.stats.HasWorst {
		b.WriteString(theme.Subtitle.Width(width).Render(
			fmt.Sprintf("Practice this one: %s", s.stats.WorstWord)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, w := range s.state.Words.Values() {
		n := s.state.WrongAttemptsFor(w)
		line := theme.Correct.Render("✓ " + w)
		if n > 0 {
			line = theme.Incorrect.Render(fmt.Sprintf("✗ %s (%d)", w, n))
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))

	return layout.Center(b.String(), width, height)
}
