package models

import "time"

// ReportHistoryItem is one completed audit. It is created once, when the
// provider call succeeds, and never mutated afterwards.
type ReportHistoryItem struct {
	ID             string         `json:"id"`
	Timestamp      time.Time      `json:"timestamp"`
	ReportText     string         `json:"reportText"`
	Analysis       AnalysisResult `json:"analysis"`
	TechnicianName string         `json:"technicianName,omitempty"`
	JobSiteName    string         `json:"jobSiteName,omitempty"`
}
