package export

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/kiranshivaraju/reportaudit/internal/markdown"
	"github.com/kiranshivaraju/reportaudit/pkg/models"
)

const rule = "------------------------------------------"

var textTemplate = template.Must(template.New("summary").Funcs(template.FuncMap{
	"yesno": func(b bool) string {
		if b {
			return "YES"
		}
		return "NO"
	},
}).Parse(`TECHNICIAN REPORT SUMMARY
==========================================
Date: {{.Date}}
Job Site: {{.Site}}
Technician: {{.Technician}}

CLIENT-READY REPORT:
` + rule + `
{{.Rewrite}}

OPERATIONAL ANALYSIS:
` + rule + `
Safety Status: {{if .R.IsSafe}}COMPLIANT{{else}}CRITICAL RISK DETECTED{{end}}
{{- if not .R.IsSafe}}
Risk Detail: {{.R.RiskDescription}}{{end}}

Technical Knowledge Score: {{.R.TechnicalScore}}/5
Professionalism Score: {{.R.ProfessionalismScore}}/5

Overrides Active: {{yesno .R.OverridesActive}}
{{- if .R.OverridesActive}}
Points in Hand: {{.Points}}{{end}}
Network Issues: {{yesno .R.NetworkIssues}}

Follow-up Required: {{yesno .R.FollowUpRequired}}
{{- if .R.FollowUpRequired}}
Next Steps: {{.NextSteps}}{{end}}

` + rule + `
Audit generated by Technician Report Analyzers
`))

type textData struct {
	R          models.AnalysisResult
	Date       string
	Site       string
	Technician string
	Rewrite    string
	Points     string
	NextSteps  string
}

// Text renders the plain-text summary. Bold markers are removed, not rendered.
func Text(r models.AnalysisResult, meta Meta) []byte {
	data := textData{
		R:          r,
		Date:       printedDate(meta.Now),
		Site:       orNA(meta.JobSiteName),
		Technician: orNA(meta.TechnicianName),
		Rewrite:    strings.TrimRight(markdown.StripBold(r.ClientRewrite), " \n"),
		Points:     strings.Join(r.PointsInHand(), ", "),
		NextSteps:  markdown.StripBold(r.NextSteps()),
	}

	var buf bytes.Buffer
	// Execute only fails on writer errors; bytes.Buffer has none.
	_ = textTemplate.Execute(&buf, data)
	return buf.Bytes()
}
