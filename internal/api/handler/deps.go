// Package handler implements the dashboard API endpoints.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/kiranshivaraju/reportaudit/internal/api/response"
	"github.com/kiranshivaraju/reportaudit/internal/audit"
	"github.com/kiranshivaraju/reportaudit/internal/history"
	"github.com/kiranshivaraju/reportaudit/pkg/models"
)

// Auditor submits reports for analysis.
type Auditor interface {
	Submit(ctx context.Context, sub audit.Submission) (*models.ReportHistoryItem, error)
}

// History is the read/clear view of the audit log the handlers need.
type History interface {
	Items() []models.ReportHistoryItem
	Get(id string) (models.ReportHistoryItem, error)
	Clear(ctx context.Context) ([]models.ReportHistoryItem, error)
	Ping(ctx context.Context) error
}

// Sampler returns demo submissions.
type Sampler interface {
	Sample(kind audit.SampleKind) (audit.Submission, error)
}

var (
	_ Auditor = (*audit.Service)(nil)
	_ History = (*history.Store)(nil)
	_ Sampler = (*audit.Sampler)(nil)
)

// writeAuditError maps orchestrator and history errors to the error envelope.
func writeAuditError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, audit.ErrMissingCredential):
		response.Error(w, http.StatusBadRequest, "MISSING_CREDENTIAL",
			"Please enter a valid API key.", nil)
	case errors.Is(err, audit.ErrAuditTimeout):
		response.Error(w, http.StatusGatewayTimeout, "AUDIT_TIMEOUT",
			"The AI provider took too long and the audit was cancelled", nil)
	case errors.Is(err, audit.ErrAuditFailed):
		response.Error(w, http.StatusBadGateway, "AUDIT_FAILED", err.Error(), nil)
	case errors.Is(err, history.ErrNotLoaded), errors.Is(err, history.ErrPersist):
		response.Error(w, http.StatusServiceUnavailable, "HISTORY_UNAVAILABLE",
			"The audit completed but could not be saved to history", nil)
	default:
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"An unexpected error occurred", nil)
	}
}
