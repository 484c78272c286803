// Package layout draws the application chrome: the header with the
// current screen and account, the key hint footer and the frame between.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wellnest/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// compact thresholds apply to the content area, not the terminal.
	compactWidth  = 100
	compactHeight = 22
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompact reports whether a content area of the given size should use
// the condensed screen layouts.
func IsCompact(width, contentHeight int) bool {
	return width < compactWidth || contentHeight < compactHeight
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Wellnest needs a little more room.\n\nResize to at least %d×%d\n%s",
			MinWidth, MinHeight, theme.Hint.Render(fmt.Sprintf("now %d×%d", width, height))))
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader shows the brand on the left, title in the middle and
// status (the signed-in account) on the right.
func RenderHeader(title, status string, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" ✿ Wellnest")
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	acct := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := max(width-4, 0)
	side := max((inner-lipgloss.Width(mid))/2, lipgloss.Width(brand)+1)
	left := lipgloss.NewStyle().Width(side).Render(brand)
	right := lipgloss.NewStyle().Width(max(inner-side-lipgloss.Width(mid), 0)).Align(lipgloss.Right).Render(acct)

	return bar(width).Render(left + mid + right)
}

// RenderFooter lists the key hints of the active screen.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(" ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString(desc.Render("  ·  "))
		}
		b.WriteString(key.Render(h.Key) + " " + desc.Render(h.Description))
	}
	return bar(width).Render(b.String())
}

// RenderFrame stacks header, content and footer, giving content whatever
// height the two bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rest).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
