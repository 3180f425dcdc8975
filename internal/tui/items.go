package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/kiranshivaraju/reportaudit/pkg/models"
)

const (
	// ShortTimestampLayout matches the history sidebar, e.g. "Mar 14, 09:30".
	ShortTimestampLayout = "Jan 2, 15:04"
	previewRunes         = 80
)

// historyItem adapts models.ReportHistoryItem to list.Item.
type historyItem struct {
	item models.ReportHistoryItem
	loc  *time.Location
}

func (i historyItem) Title() string {
	return fmt.Sprintf("%s  %s", i.item.Timestamp.In(i.loc).Format(ShortTimestampLayout), Badge(i.item.Analysis))
}

func (i historyItem) Description() string {
	parts := []string{Preview(i.item.ReportText, previewRunes)}
	if i.item.TechnicianName != "" {
		parts = append(parts, i.item.TechnicianName)
	}
	if i.item.JobSiteName != "" {
		parts = append(parts, i.item.JobSiteName)
	}
	return strings.Join(parts, " · ")
}

func (i historyItem) FilterValue() string {
	return i.item.ReportText + " " + i.item.TechnicianName + " " + i.item.JobSiteName
}

// Badge is the safe/risk marker shown next to a history entry.
func Badge(r models.AnalysisResult) string {
	if r.IsSafe {
		return "[Safe]"
	}
	return "[Risk]"
}

// Preview collapses whitespace and truncates text to n runes with an ellipsis.
func Preview(text string, n int) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) <= n {
		return flat
	}
	return strings.TrimRight(string(runes[:n-1]), " ") + "…"
}
