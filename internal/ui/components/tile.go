package components

import (
	"strconv"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellz/internal/ui/theme"
)

// TileState selects how a letter tile is drawn.
type TileState int

const (
	TileIdle TileState = iota
	TileMatched
	TileError
	TileFresh
	TileEmpty
)

var tileStyles = map[TileState]lipgloss.Style{
	TileIdle:    theme.TileIdle,
	TileMatched: theme.TileMatched,
	TileError:   theme.TileError,
	TileFresh:   theme.TileFresh,
	TileEmpty:   theme.TileEmpty,
}

// Tile is one letter box.
type Tile struct {
	Letter rune
	State  TileState
}

// View renders the tile.
func (t Tile) View() string {
	letter := string(t.Letter)
	if t.Letter == 0 {
		letter = " "
	}
	return tileStyles[t.State].Render(letter)
}

// TileRow renders tiles side by side. With numbered set, each tile gets its
// 1-based position underneath for tiles 1 to 9.
func TileRow(tiles []Tile, numbered bool) string {
	if len(tiles) == 0 {
		return ""
	}
	cols := make([]string, 0, 2*len(tiles))
	for i, t := range tiles {
		cell := t.View()
		if numbered {
			label := " "
			if i < 9 {
				label = strconv.Itoa(i + 1)
			}
			cell = lipgloss.JoinVertical(lipgloss.Center, cell, theme.Hint.Render(label))
		}
		if i > 0 {
			cols = append(cols, " ")
		}
		cols = append(cols, cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}
