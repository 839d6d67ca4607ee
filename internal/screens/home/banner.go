package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellz/internal/ui/theme"
)

const bannerArt = `
 ███████╗██████╗ ███████╗██╗     ██╗     ███████╗
 ██╔════╝██╔══██╗██╔════╝██║     ██║     ╚══███╔╝
 ███████╗██████╔╝█████╗  ██║     ██║       ███╔╝
 ╚════██║██╔═══╝ ██╔══╝  ██║     ██║      ███╔╝
 ███████║██║     ███████╗███████╗███████╗███████╗
 ╚══════╝╚═╝     ╚══════╝╚══════╝╚══════╝╚══════╝`

const bannerCompact = "S P E L L Z"

// renderBanner returns the banner in the primary color, or a compact
// fallback for terminals narrower than 51 columns.
func renderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 51 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
