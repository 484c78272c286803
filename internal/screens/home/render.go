package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wellnest/internal/ui/components"
	"github.com/abhisek/wellnest/internal/ui/theme"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

func centered(s string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(s)
}

// renderStatusBar summarizes the stored profile in a bordered box.
func renderStatusBar(sum summary, cw int, compact bool) string {
	recorded := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var parts []string
	if compact {
		parts = append(parts, recorded.Render(fmt.Sprintf("✚%d/%d", sum.recorded, sum.total)))
	} else {
		parts = append(parts, recorded.Render(fmt.Sprintf("✚ %d OF %d AREAS CHECKED", sum.recorded, sum.total)))
	}

	switch {
	case sum.risk != "":
		label := "MOOD "
		if compact {
			label = ""
		}
		parts = append(parts, dim.Render(label)+theme.RiskStyle(sum.risk).Render(strings.ToUpper(sum.risk)))
	case !compact:
		parts = append(parts, dim.Render("NO WELLBEING CHECK YET"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(parts, "  "))
}

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(labels []string, selected, cw int, disabled map[int]bool) string {
	off := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	buttons := make([]string, 0, len(labels))
	for i, label := range labels {
		if disabled[i] {
			buttons = append(buttons, off.Render(label))
			continue
		}
		buttons = append(buttons, components.MenuButton(label, i == selected, buttonWidth))
	}
	return centered(strings.Join(buttons, "\n"), cw)
}

// renderMenuCompact renders menu items as plain lines for terminals
// where bordered buttons would overflow.
func renderMenuCompact(labels []string, selected, cw int, disabled map[int]bool) string {
	lines := make([]string, 0, len(labels))
	for i, label := range labels {
		switch {
		case disabled[i]:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render("   "+label))
		case i == selected:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ "+label+" "))
		default:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render("   "+label))
		}
	}
	return centered(strings.Join(lines, "\n"), cw)
}

// renderLLMBanner warns that the model-backed flows are unavailable.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an LLM API key to enable the symptom check and planner (see wellnest --help)")
}
