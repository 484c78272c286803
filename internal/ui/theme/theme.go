// Package theme holds the palette and the shared lipgloss styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Calm greens on slate.
var (
	Primary   = lipgloss.Color("#10B981") // emerald
	Secondary = lipgloss.Color("#38BDF8") // sky
	Accent    = lipgloss.Color("#FBBF24") // amber
	Success   = lipgloss.Color("#22C55E")
	Warning   = lipgloss.Color("#F97316")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Hint  = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	// Answer options.
	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Chosen     = lipgloss.NewStyle().Foreground(Success).Bold(true)

	Failure = lipgloss.NewStyle().Foreground(Error).Bold(true)

	ProgressFilled = lipgloss.NewStyle().Background(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)

	ButtonActive   = lipgloss.NewStyle().Background(Primary).Foreground(BgDark).Bold(true).Padding(0, 2)
	ButtonInactive = lipgloss.NewStyle().Foreground(TextDim).Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 2)
)

// riskColors maps the screening bands, mildest first.
var riskColors = map[string]lipgloss.Style{
	"Low":      lipgloss.NewStyle().Foreground(Success),
	"Moderate": lipgloss.NewStyle().Foreground(Accent),
	"High":     lipgloss.NewStyle().Foreground(Warning),
}

// RiskStyle colors a screening band. Unknown bands, Severe included,
// get the error color.
func RiskStyle(band string) lipgloss.Style {
	s, ok := riskColors[band]
	if !ok {
		s = lipgloss.NewStyle().Foreground(Error)
	}
	return s.Bold(true)
}
