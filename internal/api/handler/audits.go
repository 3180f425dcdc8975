package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kiranshivaraju/reportaudit/internal/api/response"
	"github.com/kiranshivaraju/reportaudit/internal/audit"
)

type submitRequest struct {
	ReportText     string `json:"reportText"`
	TechnicianName string `json:"technicianName"`
	JobSiteName    string `json:"jobSiteName"`
	APIKey         string `json:"apiKey"`
}

// NewSubmitHandler returns the handler for POST /api/v1/audits.
// A blank report is accepted and answered with 204.
func NewSubmitHandler(svc Auditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		item, err := svc.Submit(r.Context(), audit.Submission{
			ReportText:     req.ReportText,
			TechnicianName: req.TechnicianName,
			JobSiteName:    req.JobSiteName,
			Credential:     req.APIKey,
		})
		if err != nil {
			writeAuditError(w, err)
			return
		}
		if item == nil {
			response.NoContent(w)
			return
		}
		response.Created(w, item)
	}
}
