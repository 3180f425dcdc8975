package dashboard_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/kiranshivaraju/reportaudit/internal/dashboard"
	"github.com/kiranshivaraju/reportaudit/pkg/models"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func init() {
	// Plain output keeps assertions independent of the test terminal.
	lipgloss.SetColorProfile(termenv.Ascii)
}

func riskyResult() models.AnalysisResult {
	return models.AnalysisResult{
		IsSafe:                  false,
		SafetyRiskDescription:   "Freeze stat jumped out on AHU-1.",
		TechnicalScore:          2,
		TechnicalAnalysis:       "Masked the symptom.",
		ProfessionalismScore:    3,
		ProfessionalismAnalysis: "Informal.",
		OverridesActive:         true,
		OverridesList:           []string{"AHU-1 Freeze Stat", "SF-1 VFD"},
		NetworkIssues:           true,
		FollowUpRequired:        true,
		FollowUpDetails:         "Remove the jumper on **AHU-1**.",
		CoachFeedback:           "Never bypass a freeze stat.",
		ClientRewrite:           "### Summary\n- Reset **AHU-1**\n\nUnit running.",
	}
}

func TestRender_Risky(t *testing.T) {
	out := dashboard.New(100).Render(riskyResult(), dashboard.Context{TechnicianName: "Alex Smith"})

	assert.Contains(t, out, "CRITICAL SAFETY RISK DETECTED")
	assert.Contains(t, out, "Freeze stat jumped out on AHU-1.")
	assert.Contains(t, out, "2/5")
	assert.Contains(t, out, "3/5")
	assert.Contains(t, out, "Points in Hand: AHU-1 Freeze Stat, SF-1 VFD")
	assert.Contains(t, out, "Network Issues: Detected")
	assert.Contains(t, out, "Action Required")
	assert.Contains(t, out, "Remove the jumper on AHU-1.")
	assert.Contains(t, out, "Never bypass a freeze stat.")
	assert.Contains(t, out, "• Reset AHU-1")
	assert.Contains(t, out, "Technician: Alex Smith")
	assert.Contains(t, out, "Site: Not specified")
	assert.NotContains(t, out, "**")
	assert.NotContains(t, out, "###")
}

func TestRender_SafeOmitsConditionalFields(t *testing.T) {
	r := riskyResult()
	r.IsSafe = true
	r.OverridesActive = false
	r.NetworkIssues = false
	r.FollowUpRequired = false

	out := dashboard.New(100).Render(r, dashboard.Context{})

	assert.Contains(t, out, "SAFETY COMPLIANT")
	assert.Contains(t, out, "No safety interlocks or critical devices appear to be compromised.")
	assert.Contains(t, out, "Overrides Active: NO")
	assert.Contains(t, out, "Network Issues: None")
	assert.Contains(t, out, "No follow-up required")
	assert.NotContains(t, out, "Points in Hand")
	assert.NotContains(t, out, "AHU-1 Freeze Stat")
	assert.NotContains(t, out, "Freeze stat jumped out")
	assert.NotContains(t, out, "Remove the jumper")
}

func TestScoreBar(t *testing.T) {
	d := dashboard.New(80)
	assert.Equal(t, "███░░", d.ScoreBar(3))
	assert.Equal(t, "█████", d.ScoreBar(5))
	assert.Equal(t, "░░░░░", d.ScoreBar(0))
	assert.Equal(t, "█████", d.ScoreBar(9))
	assert.Equal(t, "░░░░░", d.ScoreBar(-1))
}

func TestBlocks(t *testing.T) {
	out := dashboard.New(80).Blocks("### Work Performed\n- Cleaned **electrode**\n\nBurner fired.")
	lines := strings.Split(out, "\n")

	assert.Equal(t, "Work Performed", strings.TrimRight(lines[0], " "))
	assert.Equal(t, "• Cleaned electrode", strings.TrimRight(lines[1], " "))
	assert.Equal(t, "", strings.TrimSpace(lines[2]))
	assert.Equal(t, "Burner fired.", strings.TrimRight(lines[3], " "))
}
