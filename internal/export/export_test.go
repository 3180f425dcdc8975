package export_test

import (
	"testing"
	"time"

	"github.com/kiranshivaraju/reportaudit/internal/export"
	"github.com/kiranshivaraju/reportaudit/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportTime = time.Date(2025, 3, 14, 16, 45, 0, 0, time.UTC)

func unsafeResult() models.AnalysisResult {
	return models.AnalysisResult{
		IsSafe:                  false,
		SafetyRiskDescription:   "Low pressure switch overridden in software on CH-2.",
		TechnicalScore:          2,
		TechnicalAnalysis:       "Symptom masked.",
		ProfessionalismScore:    3,
		ProfessionalismAnalysis: "Informal.",
		OverridesActive:         true,
		OverridesList:           []string{"CH-2 Low Pressure Switch", "CH-2 Enable"},
		NetworkIssues:           true,
		FollowUpRequired:        true,
		FollowUpDetails:         "Restore the **CH-2** safety input and inspect the **compressor**.",
		CoachFeedback:           "Never override a safety.",
		ClientRewrite:           "### Service Summary\n- **Chiller 2** tripped on low pressure.\n\nTechnician restarted the unit.",
	}
}

func safeResult() models.AnalysisResult {
	return models.AnalysisResult{
		IsSafe:                  true,
		SafetyRiskDescription:   "should never be printed",
		TechnicalScore:          5,
		TechnicalAnalysis:       "Thorough.",
		ProfessionalismScore:    4,
		ProfessionalismAnalysis: "Clear.",
		OverridesActive:         false,
		OverridesList:           []string{"stale point"},
		FollowUpRequired:        false,
		FollowUpDetails:         "stale follow-up",
		CoachFeedback:           "Great work.",
		ClientRewrite:           "Replaced the **Belimo actuator**.",
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		site string
		f    export.Format
		want string
	}{
		{"Downtown Office Plaza", export.FormatPDF, "Report_Downtown_Office_Plaza_2025-03-14.pdf"},
		{"Memorial Hospital - East Wing", export.FormatText, "Report_Memorial_Hospital___East_Wing_2025-03-14.txt"},
		{"", export.FormatPDF, "Report_Site_2025-03-14.pdf"},
		{"Café #3", export.FormatText, "Report_Caf___3_2025-03-14.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, export.FileName(tt.site, tt.f, exportTime))
		})
	}
}

func TestFileName_UsesUTCDate(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	now := time.Date(2025, 3, 15, 2, 0, 0, 0, loc)
	assert.Equal(t, "Report_Site_2025-03-14.txt", export.FileName("", export.FormatText, now))
}

func TestParseFormat(t *testing.T) {
	f, err := export.ParseFormat("txt")
	require.NoError(t, err)
	assert.Equal(t, export.FormatText, f)
	assert.Equal(t, "text/plain; charset=utf-8", f.ContentType())

	f, err = export.ParseFormat("text")
	require.NoError(t, err)
	assert.Equal(t, export.FormatText, f)

	f, err = export.ParseFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", f.ContentType())

	_, err = export.ParseFormat("docx")
	assert.Error(t, err)
}
