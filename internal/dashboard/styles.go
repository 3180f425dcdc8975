package dashboard

import "github.com/charmbracelet/lipgloss"

// Styles holds the terminal styles used by the dashboard.
type Styles struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style

	SafeBanner   lipgloss.Style
	UnsafeBanner lipgloss.Style

	Card  lipgloss.Style
	Good  lipgloss.Style
	Fair  lipgloss.Style
	Poor  lipgloss.Style
	Empty lipgloss.Style

	Alert  lipgloss.Style
	Badge  lipgloss.Style
	Coach  lipgloss.Style
	Header lipgloss.Style
	Bullet lipgloss.Style
}

var (
	slate900   = lipgloss.Color("#0f172a")
	slate600   = lipgloss.Color("#475569")
	slate200   = lipgloss.Color("#e2e8f0")
	emerald600 = lipgloss.Color("#059669")
	amber600   = lipgloss.Color("#d97706")
	red600     = lipgloss.Color("#dc2626")
	blue600    = lipgloss.Color("#2563eb")
)

// DefaultStyles returns the dashboard palette.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(slate900).
			Bold(true),
		Section: lipgloss.NewStyle().
			Foreground(slate900).
			Bold(true).
			Underline(true).
			MarginTop(1),
		Body:  lipgloss.NewStyle().Foreground(slate600),
		Muted: lipgloss.NewStyle().Foreground(slate600).Italic(true),
		Bold:  lipgloss.NewStyle().Bold(true),

		SafeBanner: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(emerald600).
			Foreground(emerald600).
			Padding(0, 1),
		UnsafeBanner: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(red600).
			Foreground(red600).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(slate200).
			Padding(0, 1),
		Good:  lipgloss.NewStyle().Foreground(emerald600).Bold(true),
		Fair:  lipgloss.NewStyle().Foreground(amber600).Bold(true),
		Poor:  lipgloss.NewStyle().Foreground(red600).Bold(true),
		Empty: lipgloss.NewStyle().Foreground(slate200),

		Alert:  lipgloss.NewStyle().Foreground(red600).Bold(true),
		Badge:  lipgloss.NewStyle().Foreground(slate600).Bold(true),
		Coach:  lipgloss.NewStyle().Foreground(blue600),
		Header: lipgloss.NewStyle().Foreground(slate900).Bold(true),
		Bullet: lipgloss.NewStyle().Foreground(blue600),
	}
}
