// Package dashboard renders an audit result for the terminal.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kiranshivaraju/reportaudit/internal/markdown"
	"github.com/kiranshivaraju/reportaudit/pkg/models"
)

const (
	safeTitle    = "SAFETY COMPLIANT"
	unsafeTitle  = "CRITICAL SAFETY RISK DETECTED"
	safeSentence = "No safety interlocks or critical devices appear to be compromised."
	notSpecified = "Not specified"
	minWidth     = 40
)

// Context is the submission metadata shown under the dashboard.
type Context struct {
	TechnicianName string
	JobSiteName    string
}

// Renderer draws dashboards at a fixed width.
type Renderer struct {
	styles Styles
	width  int
}

// New returns a Renderer for the given terminal width.
func New(width int) *Renderer {
	if width < minWidth {
		width = minWidth
	}
	return &Renderer{styles: DefaultStyles(), width: width}
}

// Render returns the full dashboard for r.
func (d *Renderer) Render(r models.AnalysisResult, ctx Context) string {
	sections := []string{
		d.banner(r),
		d.metrics(r),
		d.operations(r),
		d.followUp(r),
		d.section("Coach's Feedback", d.styles.Coach.Width(d.width).Render(r.CoachFeedback)),
		d.section("Client-Ready Report", d.Blocks(r.ClientRewrite)),
		d.context(ctx),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (d *Renderer) banner(r models.AnalysisResult) string {
	style, title, desc := d.styles.SafeBanner, safeTitle, safeSentence
	if !r.IsSafe {
		style, title, desc = d.styles.UnsafeBanner, unsafeTitle, r.RiskDescription()
	}
	inner := d.width - style.GetHorizontalFrameSize()
	return style.Width(inner).Render(d.styles.Bold.Render(title) + "\n" + desc)
}

func (d *Renderer) metrics(r models.AnalysisResult) string {
	cardWidth := (d.width-1)/2 - d.styles.Card.GetHorizontalFrameSize()
	left := d.card("Technical Knowledge", r.TechnicalScore, r.TechnicalAnalysis, cardWidth)
	right := d.card("Professionalism", r.ProfessionalismScore, r.ProfessionalismAnalysis, cardWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (d *Renderer) card(title string, score int, analysis string, width int) string {
	band := d.bandStyle(score)
	head := fmt.Sprintf("%s  %s", d.styles.Title.Render(title), band.Render(fmt.Sprintf("%d/%d", score, models.MaxScore)))
	body := d.styles.Body.Width(width).Render(analysis)
	return d.styles.Card.Width(width).Render(head + "\n" + body + "\n" + d.ScoreBar(score))
}

func (d *Renderer) bandStyle(score int) lipgloss.Style {
	switch models.BandFor(score) {
	case models.ScoreBandGood:
		return d.styles.Good
	case models.ScoreBandFair:
		return d.styles.Fair
	default:
		return d.styles.Poor
	}
}

// ScoreBar draws one filled cell per point, clamped to the 0..5 scale.
func (d *Renderer) ScoreBar(score int) string {
	filled := max(0, min(score, models.MaxScore))
	return d.bandStyle(score).Render(strings.Repeat("█", filled)) +
		d.styles.Empty.Render(strings.Repeat("░", models.MaxScore-filled))
}

func (d *Renderer) operations(r models.AnalysisResult) string {
	var b strings.Builder
	b.WriteString("Overrides Active: ")
	if r.OverridesActive {
		b.WriteString(d.styles.Alert.Render("YES"))
		b.WriteString("\n")
		b.WriteString(d.styles.Bold.Render("Points in Hand:") + " " + strings.Join(r.PointsInHand(), ", "))
	} else {
		b.WriteString(d.styles.Badge.Render("NO"))
	}
	b.WriteString("\nNetwork Issues: ")
	if r.NetworkIssues {
		b.WriteString(d.styles.Alert.Render("Detected"))
	} else {
		b.WriteString(d.styles.Badge.Render("None"))
	}
	return d.section("Operational Status", d.styles.Body.Width(d.width).Render(b.String()))
}

func (d *Renderer) followUp(r models.AnalysisResult) string {
	if !r.FollowUpRequired {
		return d.section("Follow-up", d.styles.Muted.Render("No follow-up required"))
	}
	details := d.runs(markdown.Inline(r.NextSteps()), d.styles.Body)
	return d.section("Follow-up", d.styles.Alert.Render("Action Required")+"\n"+
		lipgloss.NewStyle().Width(d.width).Render(details))
}

func (d *Renderer) context(ctx Context) string {
	tech, site := ctx.TechnicianName, ctx.JobSiteName
	if tech == "" {
		tech = notSpecified
	}
	if site == "" {
		site = notSpecified
	}
	return d.styles.Muted.Render(fmt.Sprintf("Technician: %s   Site: %s", tech, site))
}

func (d *Renderer) section(title, body string) string {
	return d.styles.Section.Render(title) + "\n" + body
}

// Blocks renders text in the markdown subset, one output line per block.
func (d *Renderer) Blocks(text string) string {
	var lines []string
	for b := range markdown.Blocks(text) {
		switch b.Kind {
		case markdown.KindHeader:
			lines = append(lines, d.styles.Header.Render(b.Text))
		case markdown.KindBullet:
			lines = append(lines, d.styles.Bullet.Render("•")+" "+d.runs(b.Runs, d.styles.Body))
		case markdown.KindSpacer:
			lines = append(lines, "")
		default:
			lines = append(lines, d.runs(b.Runs, d.styles.Body))
		}
	}
	return lipgloss.NewStyle().Width(d.width).Render(strings.Join(lines, "\n"))
}

func (d *Renderer) runs(runs []markdown.Run, plain lipgloss.Style) string {
	var b strings.Builder
	for _, r := range runs {
		if r.Bold {
			b.WriteString(plain.Bold(true).Render(r.Text))
		} else {
			b.WriteString(plain.Render(r.Text))
		}
	}
	return b.String()
}
