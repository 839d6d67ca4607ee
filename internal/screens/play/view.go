package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellz/internal/drill"
	"github.com/abhisek/spellz/internal/ui/components"
	"github.com/abhisek/spellz/internal/ui/layout"
	"github.com/abhisek/spellz/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	st := s.game.State()

	var b strings.Builder
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("Word %d of %d", st.Words.Index()+1, st.Words.Len())))
	b.WriteString("\n\n")
	b.WriteString(center(components.TileRow(s.answerTiles(st), false), width))
	b.WriteString("\n\n")
	b.WriteString(center(components.TileRow(s.remainingTiles(st), true), width))
	b.WriteString("\n\n")
	b.WriteString(center(statusLine(st), width))
	b.WriteString("\n\n")
	bar := components.NewProgressBar(st.Words.Index(), st.Words.Len(), min(width-8, 40))
	b.WriteString(center(bar.View(), width))

	return layout.Center(b.String(), width, height)
}

// answerTiles shows the revealed prefix of the word, then one empty slot per
// letter still to place. A failed answer shows the whole word in error.
func (s *PlayScreen) answerTiles(st drill.State) []components.Tile {
	revealed := []rune(st.Revealed())
	tiles := make([]components.Tile, 0, len(revealed)+len(st.Remaining))

	failed := false
	switch st.Status.(type) {
	case drill.AnswerFailed, drill.GameFinishedFailed:
		failed = true
	}
	for i, r := range revealed {
		state := components.TileMatched
		switch {
		case failed:
			state = components.TileError
		case s.fresh != 0 && i == len(revealed)-1:
			state = components.TileFresh
		}
		tiles = append(tiles, components.Tile{Letter: r, State: state})
	}
	for range st.Remaining {
		tiles = append(tiles, components.Tile{State: components.TileEmpty})
	}
	return tiles
}

func (s *PlayScreen) remainingTiles(st drill.State) []components.Tile {
	tiles := make([]components.Tile, len(st.Remaining))
	for i, r := range st.Remaining {
		state := components.TileIdle
		if i < len(s.tiles) {
			if _, ok := s.errFlash[s.tiles[i]]; ok {
				state = components.TileError
			}
		}
		tiles[i] = components.Tile{Letter: r, State: state}
	}
	return tiles
}

func statusLine(st drill.State) string {
	left := st.MaxWrongAttempts - st.WrongAttemptsFor(st.CurrentWord())
	switch st.Status.(type) {
	case drill.LetterMatched:
		return theme.Correct.Render("Nice!")
	case drill.LetterError:
		return theme.Incorrect.Render(fmt.Sprintf("Not that one. %d %s left.", left, plural(left, "try", "tries")))
	case drill.AnswerCorrect:
		return theme.Correct.Render("Correct!")
	case drill.AnswerFailed:
		return theme.Incorrect.Render(fmt.Sprintf("The word was %q.", st.CurrentWord()))
	default:
		return theme.Hint.Render("Type the letters in order.")
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func center(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
