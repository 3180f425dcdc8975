// Package models contains shared data models used across the reportaudit codebase.
package models

import (
	"context"
	"errors"
)

// Errors every AIProvider reports through. Providers wrap the underlying cause.
var (
	ErrMissingCredential   = errors.New("no credential supplied and none configured")
	ErrProviderUnavailable = errors.New("ai provider unavailable")
	ErrInferenceTimeout    = errors.New("ai inference timeout")
	ErrInvalidResponse     = errors.New("ai provider returned invalid response")
)

// AIProvider is the core interface that all AI integrations must implement.
// Never call specific AI providers directly; inject this interface.
type AIProvider interface {
	// Analyze audits a technician field report. The credential has already
	// been resolved by the caller and is never empty.
	Analyze(ctx context.Context, req AnalysisRequest) (AnalysisResult, error)
	// Name returns the provider identifier (e.g., "gemini", "openai").
	Name() string
}

// AnalysisRequest is the input to an AI analysis operation.
type AnalysisRequest struct {
	ReportText string
	Credential string
}
