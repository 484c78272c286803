package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/wellnest/internal/wellness"
)

func TestRenderScreening_UrgentListsHelplines(t *testing.T) {
	var buf bytes.Buffer
	renderScreening(&buf, wellness.Screening{Total: 31, Max: 60, Band: wellness.RiskHigh, Urgent: true})

	out := buf.String()
	assert.Contains(t, out, wellness.CrisisMessage)
	for _, h := range wellness.Helplines {
		assert.Contains(t, out, h.Name)
		assert.Contains(t, out, h.URL)
	}
}

func TestRenderScreening_NoHelplinesWhenNotUrgent(t *testing.T) {
	var buf bytes.Buffer
	renderScreening(&buf, wellness.Screening{Total: 5, Max: 60, Band: wellness.RiskLow})

	assert.NotContains(t, buf.String(), "Vandrevala")
}
