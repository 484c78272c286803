package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/wellnest/internal/environment"
	"github.com/abhisek/wellnest/internal/nutrition"
	"github.com/abhisek/wellnest/internal/wellness"
)

func heading(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("─", 60))
}

func bullets(w io.Writer, items []string) {
	for _, it := range items {
		fmt.Fprintf(w, "  • %s\n", it)
	}
}

func renderDiagnosis(w io.Writer, d wellness.Diagnosis) {
	heading(w, "Likely diagnosis")
	fmt.Fprintf(w, "Diagnosis:    %s\n", d.Diagnosis)
	fmt.Fprintf(w, "Explanation:  %s\n", d.Explanation)
	fmt.Fprintln(w, "\nThis is not medical advice. See a doctor if symptoms persist or worsen.")
}

func renderScreening(w io.Writer, s wellness.Screening) {
	heading(w, "Mental-health screening")
	fmt.Fprintf(w, "Score:        %d / %d\n", s.Total, s.Max)
	fmt.Fprintf(w, "Risk level:   %s\n", s.Band)
	if s.Analyzed {
		fmt.Fprintf(w, "Assessment:   %s\n", s.Diagnosis)
		fmt.Fprintf(w, "Advice:       %s\n", s.Recommendation)
		fmt.Fprintf(w, "Treatment:    %s\n", s.TreatmentRequired)
	}
	if s.Urgent {
		fmt.Fprintf(w, "\n%s\n", wellness.CrisisMessage)
		for _, h := range wellness.Helplines {
			fmt.Fprintf(w, "  • %s (%s): %s\n", h.Name, h.Hours, h.URL)
		}
	}
}

func renderPlan(w io.Writer, p wellness.Plan) {
	if p.Failed() {
		return
	}
	for _, sec := range []struct {
		title string
		items []string
	}{
		{"Diet", p.Diet},
		{"Sleep", p.Sleep},
		{"Exercise", p.Exercise},
	} {
		heading(w, sec.title)
		bullets(w, sec.items)
		fmt.Fprintln(w)
	}
}

func renderAnalysis(w io.Writer, a nutrition.Analysis) {
	heading(w, a.FoodName)
	fmt.Fprintln(w, a.Summary)
	fmt.Fprintln(w)
	n := a.Nutrition
	for _, row := range [][2]string{
		{"Calories", n.Calories},
		{"Protein", n.Protein},
		{"Carbs", n.Carbs},
		{"Fiber", n.Fiber},
		{"Fat", n.Fat},
		{"Vitamins", n.Vitamins},
	} {
		fmt.Fprintf(w, "%-10s %s\n", row[0]+":", row[1])
	}
	fmt.Fprintf(w, "\n%s\n", a.Recommendation)
}

func renderConditions(w io.Writer, c environment.Conditions) {
	fmt.Fprintf(w, "AQI:          %d (%s)\n", c.AQI, environment.AQILevel(c.AQI))
	fmt.Fprintf(w, "Temperature:  %.1f°C (feels like %.1f°C)\n", c.Temperature, c.ApparentTemperature)
	fmt.Fprintf(w, "Humidity:     %.0f%%\n", c.Humidity)
	fmt.Fprintf(w, "Wind:         %.1f km/h\n", c.WindSpeed)
}

func renderAdvisory(w io.Writer, a environment.Advisory) {
	heading(w, a.Location)
	renderConditions(w, a.Conditions)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Risk level:   %s\n", a.RiskLevel)
	fmt.Fprintln(w, a.Summary)
	fmt.Fprintln(w)
	bullets(w, a.Guidelines)
}
