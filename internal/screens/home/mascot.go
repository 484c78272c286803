package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wellnest/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Green sprout
	MascotCelebrating                      // In bloom; something was recorded today
	MascotAlert                            // Drooping; last check-in flagged as urgent
)

const mascotIdle = `  \ | /
 ( ◕ ◕ )
  ( ‿ )
 ~~╨~~`

const mascotCelebrating = ` ✿ \ | / ✿
   ( ★ ★ )
    ( ◡ )
   ~~╨~~`

const mascotAlert = `  \ | /   !
 ( • • )
  ( ︵ )
 ~~╨~~`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(variant MascotVariant) string {
	art, fg := mascotIdle, theme.Primary

	switch variant {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.Accent
	case MascotAlert:
		art, fg = mascotAlert, theme.Warning
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
