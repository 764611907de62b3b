package initial

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/numline/internal/ui/theme"
)

const bannerArt = `
 ███╗   ██╗██╗   ██╗███╗   ███╗██╗     ██╗███╗   ██╗███████╗
 ████╗  ██║██║   ██║████╗ ████║██║     ██║████╗  ██║██╔════╝
 ██╔██╗ ██║██║   ██║██╔████╔██║██║     ██║██╔██╗ ██║█████╗
 ██║╚██╗██║██║   ██║██║╚██╔╝██║██║     ██║██║╚██╗██║██╔══╝
 ██║ ╚████║╚██████╔╝██║ ╚═╝ ██║███████╗██║██║ ╚████║███████╗
 ╚═╝  ╚═══╝ ╚═════╝ ╚═╝     ╚═╝╚══════╝╚═╝╚═╝  ╚═══╝╚══════╝`

const bannerCompact = "N U M L I N E"

// RenderBanner returns the banner styled in the primary color. Uses a
// compact fallback for terminals narrower than 62 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 62 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
