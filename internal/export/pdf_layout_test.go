package export

import (
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/kiranshivaraju/reportaudit/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monoMeasure treats every rune as 0.2 x point size millimetres wide.
func monoMeasure(s string, f Font) float64 {
	return float64(utf8.RuneCountInString(s)) * f.Size * 0.2
}

func texts(p Page) []Op {
	var out []Op
	for _, op := range p.Ops {
		if op.Kind == OpText {
			out = append(out, op)
		}
	}
	return out
}

func allText(doc Document) string {
	var b strings.Builder
	for _, p := range doc.Pages {
		for _, op := range texts(p) {
			b.WriteString(op.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func layoutResult(isSafe bool, rewrite string) models.AnalysisResult {
	return models.AnalysisResult{
		IsSafe:                isSafe,
		SafetyRiskDescription: "Freeze stat jumped out on **AHU-1**.",
		TechnicalScore:        2,
		ProfessionalismScore:  4,
		OverridesActive:       false,
		OverridesList:         []string{"AHU-1 Freeze Stat"},
		ClientRewrite:         rewrite,
	}
}

var layoutMeta = Meta{TechnicianName: "Alex Smith", JobSiteName: "Downtown Office Plaza", Now: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)}

func rewriteLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("Line %d of the **rewrite**", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestLayoutPDF_FirstPage(t *testing.T) {
	doc := LayoutPDF(layoutResult(true, "### Summary\n- Replaced **actuator**"), layoutMeta, monoMeasure)
	require.Len(t, doc.Pages, 1)

	ops := doc.Pages[0].Ops
	header := ops[0]
	assert.Equal(t, OpRect, header.Kind)
	assert.Equal(t, Op{Kind: OpRect, W: PageWidth, H: headerHeight, Style: "F", Fill: slate900, Draw: slate900}, header)

	txt := allText(doc)
	assert.Contains(t, txt, "Technician Report Analysis\n")
	assert.Contains(t, txt, "DATE: 3/14/2025\n")
	assert.Contains(t, txt, "TECHNICIAN: Alex Smith\n")
	assert.Contains(t, txt, "JOB SITE: Downtown Office Plaza\n")
	assert.Contains(t, txt, "SAFETY COMPLIANT\n")
	assert.Contains(t, txt, safeSentence+"\n")
	assert.Contains(t, txt, "Technical Knowledge: 2/5\n")
	assert.Contains(t, txt, "Professionalism: 4/5\n")
	assert.Contains(t, txt, "Client-Ready Report\n")
	assert.Contains(t, txt, "### Summary\n- Replaced actuator\n")
	assert.NotContains(t, txt, "Freeze stat", "risk text must not print for a safe result")
	assert.NotContains(t, txt, "Points in Hand")
	assert.NotContains(t, txt, "**")
}

func TestLayoutPDF_UnsafeBanner(t *testing.T) {
	doc := LayoutPDF(layoutResult(false, "x"), layoutMeta, monoMeasure)

	var banner Op
	for _, op := range doc.Pages[0].Ops {
		if op.Kind == OpRect && op.Style == "FD" {
			banner = op
		}
	}
	assert.Equal(t, red50, banner.Fill)
	assert.Equal(t, red600, banner.Draw)
	assert.Equal(t, 85.0, banner.Y)
	assert.Equal(t, bannerHeight, banner.H)

	txt := allText(doc)
	assert.Contains(t, txt, "CRITICAL SAFETY RISK DETECTED\n")
	assert.Contains(t, txt, "Freeze stat jumped out on **AHU-1**.\n")
	assert.NotContains(t, txt, safeSentence)
}

func TestLayoutPDF_UnsafeWithoutDescription(t *testing.T) {
	r := layoutResult(false, "x")
	r.SafetyRiskDescription = ""
	txt := allText(LayoutPDF(r, layoutMeta, monoMeasure))
	assert.Contains(t, txt, "Risks detected.\n")
}

func TestLayoutPDF_Pagination(t *testing.T) {
	// 17 rewrite lines fit on the first page and 43 on each continuation page.
	tests := []struct {
		lines int
		pages int
	}{
		{1, 1},
		{17, 1},
		{18, 2},
		{60, 2},
		{61, 3},
		{189, 5},
		{190, 6},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d lines", tt.lines), func(t *testing.T) {
			doc := LayoutPDF(layoutResult(true, rewriteLines(tt.lines)), layoutMeta, monoMeasure)
			require.Len(t, doc.Pages, tt.pages)

			printed := 0
			for i, p := range doc.Pages {
				ops := texts(p)
				footer := ops[len(ops)-1]
				assert.Equal(t, fmt.Sprintf("Generated by Technician Report Analysis - Page %d of %d", i+1, tt.pages), footer.Text)
				assert.Equal(t, footerY, footer.Y)
				assert.Equal(t, 8.0, footer.Font.Size)

				for j, op := range ops[:len(ops)-1] {
					assert.LessOrEqual(t, op.Y, contentBottom, "text below the content bound on page %d", i+1)
					if i > 0 && j == 0 {
						assert.Equal(t, continuationY, op.Y, "continuation pages restart at the top margin")
					}
					if strings.HasPrefix(op.Text, "Line ") {
						printed++
					}
				}
			}
			assert.Equal(t, tt.lines, printed)
		})
	}
}

func TestLayoutPDF_OneFooterPerPage(t *testing.T) {
	doc := LayoutPDF(layoutResult(true, rewriteLines(100)), layoutMeta, monoMeasure)
	for _, p := range doc.Pages {
		n := 0
		for _, op := range texts(p) {
			if strings.HasPrefix(op.Text, "Generated by") {
				n++
			}
		}
		assert.Equal(t, 1, n)
	}
}

func TestWrap(t *testing.T) {
	f := Font{Size: 10} // 2mm per rune

	lines := wrap("the quick brown fox jumps", 20, f, monoMeasure)
	assert.Equal(t, []string{"the quick", "brown fox", "jumps"}, lines)

	lines = wrap("first\n\n   \nsecond\n", 100, f, monoMeasure)
	assert.Equal(t, []string{"first", "", "", "second"}, lines)

	lines = wrap("AHU-1-SUPPLY-FAN-VFD ok", 10, f, monoMeasure)
	assert.Equal(t, []string{"AHU-1", "-SUPP", "LY-FA", "N-VFD", "ok"}, lines)

	for _, l := range wrap(strings.Repeat("word ", 200), contentWidth, Font{Size: 11}, monoMeasure) {
		assert.LessOrEqual(t, monoMeasure(l, Font{Size: 11}), contentWidth)
	}
}
