package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wellnest/internal/ui/theme"
)

// StepBar shows how many of total questions are answered. Each question
// gets its own segment while they fit in width, otherwise the bar is
// scaled down proportionally.
func StepBar(label string, answered, total, width int) string {
	answered = min(max(answered, 0), total)
	counter := fmt.Sprintf("  %d/%d", answered, total)
	head := lipgloss.NewStyle().Foreground(theme.Text).Render(label)

	room := width - lipgloss.Width(head) - lipgloss.Width(counter) - 2
	if room < 4 || total <= 0 {
		return head + theme.Hint.Render(counter)
	}

	var bar string
	if seg := room / total; seg >= 2 {
		cells := make([]string, total)
		for i := range cells {
			style := theme.ProgressEmpty
			if i < answered {
				style = theme.ProgressFilled
			}
			cells[i] = style.Render(strings.Repeat(" ", seg-1))
		}
		bar = strings.Join(cells, " ")
	} else {
		filled := room * answered / total
		bar = theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
			theme.ProgressEmpty.Render(strings.Repeat(" ", room-filled))
	}
	return head + "  " + bar + theme.Hint.Render(counter)
}
