package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kiranshivaraju/reportaudit/internal/api/response"
	"github.com/kiranshivaraju/reportaudit/internal/audit"
)

type sampleResponse struct {
	ReportText     string `json:"reportText"`
	TechnicianName string `json:"technicianName"`
	JobSiteName    string `json:"jobSiteName"`
}

// NewSampleHandler returns the handler for GET /api/v1/samples/{kind}.
func NewSampleHandler(s Sampler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := s.Sample(audit.SampleKind(chi.URLParam(r, "kind")))
		if err != nil {
			response.Error(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
			return
		}
		response.JSON(w, sampleResponse{
			ReportText:     sub.ReportText,
			TechnicianName: sub.TechnicianName,
			JobSiteName:    sub.JobSiteName,
		})
	}
}
