package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrMalformedResult is returned when a syntactically valid response does not
// carry every required AnalysisResult field with the expected type.
var ErrMalformedResult = errors.New("analysis result is malformed")

// AnalysisResult is the structured audit judgment returned by the AI provider.
// Optional fields are only meaningful when their companion boolean is true.
type AnalysisResult struct {
	IsSafe                  bool     `json:"isSafe"`
	SafetyRiskDescription   string   `json:"safetyRiskDescription,omitempty"`
	TechnicalScore          int      `json:"technicalScore"`
	TechnicalAnalysis       string   `json:"technicalAnalysis"`
	ProfessionalismScore    int      `json:"professionalismScore"`
	ProfessionalismAnalysis string   `json:"professionalismAnalysis"`
	OverridesActive         bool     `json:"overridesActive"`
	OverridesList           []string `json:"overridesList,omitempty"`
	NetworkIssues           bool     `json:"networkIssues"`
	FollowUpRequired        bool     `json:"followUpRequired"`
	FollowUpDetails         string   `json:"followUpDetails,omitempty"`
	CoachFeedback           string   `json:"coachFeedback"`
	ClientRewrite           string   `json:"clientRewrite"`
}

// RiskDescription returns the safety risk text, or "" when the result is safe.
func (r AnalysisResult) RiskDescription() string {
	if r.IsSafe {
		return ""
	}
	return r.SafetyRiskDescription
}

// PointsInHand returns the overridden points, or nil when no overrides are active.
func (r AnalysisResult) PointsInHand() []string {
	if !r.OverridesActive {
		return nil
	}
	return r.OverridesList
}

// NextSteps returns the follow-up details, or "" when no follow-up is required.
func (r AnalysisResult) NextSteps() string {
	if !r.FollowUpRequired {
		return ""
	}
	return r.FollowUpDetails
}

// wireResult mirrors AnalysisResult with pointer fields so that absent
// required fields can be told apart from zero values.
type wireResult struct {
	IsSafe                  *bool     `json:"isSafe"`
	SafetyRiskDescription   *string   `json:"safetyRiskDescription"`
	TechnicalScore          *float64  `json:"technicalScore"`
	TechnicalAnalysis       *string   `json:"technicalAnalysis"`
	ProfessionalismScore    *float64  `json:"professionalismScore"`
	ProfessionalismAnalysis *string   `json:"professionalismAnalysis"`
	OverridesActive         *bool     `json:"overridesActive"`
	OverridesList           []string  `json:"overridesList"`
	NetworkIssues           *bool     `json:"networkIssues"`
	FollowUpRequired        *bool     `json:"followUpRequired"`
	FollowUpDetails         *string   `json:"followUpDetails"`
	CoachFeedback           *string   `json:"coachFeedback"`
	ClientRewrite           *string   `json:"clientRewrite"`
}

// DecodeAnalysisResult parses a provider response body and checks that every
// required field is present. JSON syntax errors are returned unwrapped so the
// caller can classify them; schema violations wrap ErrMalformedResult.
func DecodeAnalysisResult(data []byte) (AnalysisResult, error) {
	var w wireResult
	if err := json.Unmarshal(data, &w); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return AnalysisResult{}, fmt.Errorf("%w: field %q has wrong type", ErrMalformedResult, typeErr.Field)
		}
		return AnalysisResult{}, err
	}

	var missing []string
	if w.IsSafe == nil {
		missing = append(missing, "isSafe")
	}
	if w.TechnicalScore == nil {
		missing = append(missing, "technicalScore")
	}
	if w.TechnicalAnalysis == nil {
		missing = append(missing, "technicalAnalysis")
	}
	if w.ProfessionalismScore == nil {
		missing = append(missing, "professionalismScore")
	}
	if w.ProfessionalismAnalysis == nil {
		missing = append(missing, "professionalismAnalysis")
	}
	if w.OverridesActive == nil {
		missing = append(missing, "overridesActive")
	}
	if w.NetworkIssues == nil {
		missing = append(missing, "networkIssues")
	}
	if w.FollowUpRequired == nil {
		missing = append(missing, "followUpRequired")
	}
	if w.CoachFeedback == nil {
		missing = append(missing, "coachFeedback")
	}
	if w.ClientRewrite == nil {
		missing = append(missing, "clientRewrite")
	}
	if len(missing) > 0 {
		return AnalysisResult{}, fmt.Errorf("%w: missing %s", ErrMalformedResult, strings.Join(missing, ", "))
	}

	technical, err := wholeScore("technicalScore", *w.TechnicalScore)
	if err != nil {
		return AnalysisResult{}, err
	}
	professionalism, err := wholeScore("professionalismScore", *w.ProfessionalismScore)
	if err != nil {
		return AnalysisResult{}, err
	}

	// An empty list and an absent one mean the same thing; keep a single
	// representation so stored results reload unchanged.
	if len(w.OverridesList) == 0 {
		w.OverridesList = nil
	}

	return AnalysisResult{
		IsSafe:                  *w.IsSafe,
		SafetyRiskDescription:   deref(w.SafetyRiskDescription),
		TechnicalScore:          technical,
		TechnicalAnalysis:       *w.TechnicalAnalysis,
		ProfessionalismScore:    professionalism,
		ProfessionalismAnalysis: *w.ProfessionalismAnalysis,
		OverridesActive:         *w.OverridesActive,
		OverridesList:           w.OverridesList,
		NetworkIssues:           *w.NetworkIssues,
		FollowUpRequired:        *w.FollowUpRequired,
		FollowUpDetails:         deref(w.FollowUpDetails),
		CoachFeedback:           *w.CoachFeedback,
		ClientRewrite:           *w.ClientRewrite,
	}, nil
}

func wholeScore(field string, v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: %s must be a whole number, got %v", ErrMalformedResult, field, v)
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s out of range, got %v", ErrMalformedResult, field, v)
	}
	return int(v), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
