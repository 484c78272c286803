package assessment

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wellnest/internal/ui/theme"
	"github.com/abhisek/wellnest/internal/wellness"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
	headStyle  = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
)

func paragraph(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(text)
}

func field(label, value string, width int) string {
	return labelStyle.Render(label) + "\n" + paragraph(value, width)
}

func failure(msg string, width int) string {
	return theme.Failure.Render("Something went wrong") + "\n" + paragraph(msg, width)
}

// RenderDiagnosis shows the symptom-check result.
func RenderDiagnosis(d wellness.Diagnosis, width int) string {
	var b strings.Builder
	b.WriteString(headStyle.Render("Likely diagnosis"))
	b.WriteString("\n\n")
	b.WriteString(field("Diagnosis", d.Diagnosis, width))
	b.WriteString("\n\n")
	b.WriteString(field("Explanation", d.Explanation, width))
	if d.Failed() {
		b.WriteString("\n\n")
		b.WriteString(failure(d.FailureMessage(), width))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Not medical advice. See a doctor if symptoms persist or worsen."))
	return b.String()
}

// RenderScreening shows the quiz tally and, when present, the model's
// interpretation.
func RenderScreening(s wellness.Screening, width int) string {
	var b strings.Builder
	b.WriteString(headStyle.Render("Your wellbeing check"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Score  "))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(fmt.Sprintf("%d / %d", s.Total, s.Max)))
	b.WriteString(labelStyle.Render("    Risk  "))
	b.WriteString(theme.RiskStyle(string(s.Band)).Render(string(s.Band)))

	if s.Analyzed {
		b.WriteString("\n\n")
		b.WriteString(field("Assessment", s.Diagnosis, width))
		b.WriteString("\n\n")
		b.WriteString(field("Recommendation", s.Recommendation, width))
		b.WriteString("\n\n")
		b.WriteString(labelStyle.Render("Professional support advised  "))
		b.WriteString(paragraph(s.TreatmentRequired, width/2))
	}
	if s.Failed() {
		b.WriteString("\n\n")
		b.WriteString(failure(s.FailureMessage(), width))
	}
	if s.Urgent {
		b.WriteString("\n\n")
		b.WriteString(renderHelplines(width))
	}
	return b.String()
}

func renderHelplines(width int) string {
	lines := []string{
		lipgloss.NewStyle().Width(width).Foreground(theme.Error).Bold(true).Render(wellness.CrisisMessage),
	}
	for _, h := range wellness.Helplines {
		lines = append(lines, paragraph("• "+h.Name+" ("+h.Hours+")  "+h.URL, width))
	}
	return strings.Join(lines, "\n")
}

// RenderPlan shows the three plan sections.
func RenderPlan(p wellness.Plan, width int) string {
	if p.Failed() {
		return failure(p.FailureMessage(), width)
	}
	var sections []string
	for _, sec := range []struct {
		title string
		items []string
	}{
		{"Diet", p.Diet},
		{"Sleep", p.Sleep},
		{"Exercise", p.Exercise},
	} {
		lines := []string{headStyle.Render(sec.title)}
		for _, it := range sec.items {
			lines = append(lines, paragraph("• "+it, width))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	return strings.Join(sections, "\n\n")
}
