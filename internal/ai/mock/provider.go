// Package mock provides in-process AI providers for tests and offline demos.
package mock

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/kiranshivaraju/reportaudit/pkg/models"
)

// MockProvider satisfies models.AIProvider for testing.
type MockProvider struct {
	Name_       string
	AnalyzeFunc func(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error)

	calls atomic.Int64
}

func (m *MockProvider) Name() string { return m.Name_ }

func (m *MockProvider) Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error) {
	m.calls.Add(1)
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, req)
	}
	return models.AnalysisResult{}, nil
}

// Calls returns how many times Analyze has been invoked.
func (m *MockProvider) Calls() int { return int(m.calls.Load()) }

// riskMarkers are phrases that mark a report as unsafe in the canned audit.
var riskMarkers = []string{"overrode", "override", "jumped", "jumper", "bypass", "in hand", "disabled", "forced"}

// NewMockProvider returns a MockProvider that audits reports with a keyword
// heuristic, so the full pipeline can run without network access.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Name_:       "mock",
		AnalyzeFunc: func(_ context.Context, req models.AnalysisRequest) (models.AnalysisResult, error) { return Audit(req.ReportText), nil },
	}
}

// NewResultProvider returns a MockProvider that always returns result.
func NewResultProvider(result models.AnalysisResult) *MockProvider {
	return &MockProvider{
		Name_: "mock-fixed",
		AnalyzeFunc: func(_ context.Context, _ models.AnalysisRequest) (models.AnalysisResult, error) {
			return result, nil
		},
	}
}

// NewFailingProvider returns a MockProvider that always returns the given error.
func NewFailingProvider(err error) *MockProvider {
	return &MockProvider{
		Name_: "mock-failing",
		AnalyzeFunc: func(_ context.Context, _ models.AnalysisRequest) (models.AnalysisResult, error) {
			return models.AnalysisResult{}, err
		},
	}
}

// NewTimeoutProvider returns a MockProvider that blocks until context is cancelled.
func NewTimeoutProvider() *MockProvider {
	return &MockProvider{
		Name_: "mock-timeout",
		AnalyzeFunc: func(ctx context.Context, _ models.AnalysisRequest) (models.AnalysisResult, error) {
			<-ctx.Done()
			return models.AnalysisResult{}, fmt.Errorf("%w: %v", models.ErrInferenceTimeout, ctx.Err())
		},
	}
}

// Audit is the canned judgment used by NewMockProvider.
func Audit(report string) models.AnalysisResult {
	lower := strings.ToLower(report)
	var hits []string
	for _, m := range riskMarkers {
		if strings.Contains(lower, m) {
			hits = append(hits, m)
		}
	}
	network := strings.Contains(lower, "offline") || strings.Contains(lower, "comm") || strings.Contains(lower, "network")

	res := models.AnalysisResult{
		IsSafe:                  len(hits) == 0,
		TechnicalScore:          4,
		TechnicalAnalysis:       "Troubleshooting followed the sequence of operation.",
		ProfessionalismScore:    4,
		ProfessionalismAnalysis: "Clear and objective.",
		NetworkIssues:           network,
		CoachFeedback:           "Document setpoints before and after each change.",
		ClientRewrite:           "### Service Summary\n- Site visit completed.\n\n" + firstSentence(report),
	}
	if len(hits) > 0 {
		res.SafetyRiskDescription = "Report indicates a safety device or point was left out of automatic control (" + strings.Join(hits, ", ") + ")."
		res.TechnicalScore = 2
		res.ProfessionalismScore = 3
		res.TechnicalAnalysis = "Symptom was masked instead of diagnosed."
		res.OverridesActive = true
		res.OverridesList = []string{"Point left in Hand per field report"}
		res.FollowUpRequired = true
		res.FollowUpDetails = "Return the overridden **equipment** to automatic control and verify the **safety interlock**."
		res.CoachFeedback = "Never leave a safety bypassed without a documented return-to-service plan."
	}
	return res
}

func firstSentence(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".!?"); i >= 0 {
		return s[:i+1]
	}
	return s
}

// Compile-time check that MockProvider implements AIProvider.
var _ models.AIProvider = (*MockProvider)(nil)
