package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wellnest/internal/ui/theme"
)

const logoArt = ` ██╗    ██╗███████╗██╗     ██╗     ███╗   ██╗███████╗███████╗████████╗
 ██║    ██║██╔════╝██║     ██║     ████╗  ██║██╔════╝██╔════╝╚══██╔══╝
 ██║ █╗ ██║█████╗  ██║     ██║     ██╔██╗ ██║█████╗  ███████╗   ██║
 ██║███╗██║██╔══╝  ██║     ██║     ██║╚██╗██║██╔══╝  ╚════██║   ██║
 ╚███╔███╔╝███████╗███████╗███████╗██║ ╚████║███████╗███████║   ██║
  ╚══╝╚══╝ ╚══════╝╚══════╝╚══════╝╚═╝  ╚═══╝╚══════╝╚══════╝   ╚═╝`

const logoCompact = "W E L L N E S T"

// LogoWidth is the column width of the full block-letter logo.
const LogoWidth = 70

// RenderLogo returns the block-letter title, falling back to spaced
// capitals when the area is narrower than the art.
func RenderLogo(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < LogoWidth+1 {
		return style.Render(logoCompact)
	}
	return style.Render(logoArt)
}
