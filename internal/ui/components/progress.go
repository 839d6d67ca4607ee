package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/spellz/internal/ui/theme"
)

// ProgressBar shows how far through a run the player is, one cell per word.
type ProgressBar struct {
	Done  int
	Total int
	Width int
}

// NewProgressBar creates a progress bar for done of total words.
func NewProgressBar(done, total, width int) ProgressBar {
	return ProgressBar{Done: done, Total: total, Width: width}
}

// View renders the bar followed by "done/total".
func (p ProgressBar) View() string {
	label := fmt.Sprintf("  %d/%d", p.Done, p.Total)
	if p.Total <= 0 {
		return label
	}

	cells := max(p.Width-len(label), p.Total)
	filled := min(max(cells*p.Done/p.Total, 0), cells)

	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", cells-filled)) +
		theme.Hint.Render(label)
}
