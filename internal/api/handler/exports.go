package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/kiranshivaraju/reportaudit/internal/api/response"
	"github.com/kiranshivaraju/reportaudit/internal/export"
	"github.com/kiranshivaraju/reportaudit/pkg/models"
)

type exportRequest struct {
	Analysis       json.RawMessage `json:"analysis"`
	TechnicianName string          `json:"technicianName"`
	JobSiteName    string          `json:"jobSiteName"`
}

// NewExportHandler returns the handler for POST /api/v1/exports. The
// analysis is validated the same way a provider response is.
func NewExportHandler(now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, ok := parseFormat(w, r)
		if !ok {
			return
		}

		var req exportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if len(req.Analysis) == 0 {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "analysis is required", nil)
			return
		}
		result, err := models.DecodeAnalysisResult(req.Analysis)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
			return
		}

		writeExport(w, format, result, export.Meta{
			TechnicianName: req.TechnicianName,
			JobSiteName:    req.JobSiteName,
			Now:            now(),
		})
	}
}

func parseFormat(w http.ResponseWriter, r *http.Request) (export.Format, bool) {
	raw := r.URL.Query().Get("format")
	if raw == "" {
		return export.FormatText, true
	}
	f, err := export.ParseFormat(raw)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return "", false
	}
	return f, true
}

func writeExport(w http.ResponseWriter, format export.Format, result models.AnalysisResult, meta export.Meta) {
	var body []byte
	switch format {
	case export.FormatPDF:
		var buf bytes.Buffer
		if err := export.PDF(&buf, result, meta); err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Could not generate PDF", nil)
			return
		}
		body = buf.Bytes()
	default:
		body = export.Text(result, meta)
	}
	response.File(w, format.ContentType(), export.FileName(meta.JobSiteName, format, meta.Now), body)
}
