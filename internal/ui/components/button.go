package components

import (
	"strings"

	"github.com/abhisek/wellnest/internal/ui/theme"
)

// ButtonRow renders labels side by side with the one at selected
// highlighted. Out of range selections highlight nothing.
func ButtonRow(labels []string, selected int) string {
	out := make([]string, len(labels))
	for i, label := range labels {
		if i == selected {
			out[i] = theme.ButtonActive.Render("▸ " + label)
		} else {
			out[i] = theme.ButtonInactive.Render(label)
		}
	}
	return strings.Join(out, "  ")
}
