package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kiranshivaraju/reportaudit/internal/api/response"
	"github.com/kiranshivaraju/reportaudit/internal/export"
	"github.com/kiranshivaraju/reportaudit/internal/history"
	"github.com/kiranshivaraju/reportaudit/internal/markdown"
	"github.com/kiranshivaraju/reportaudit/pkg/models"
)

type historyDetail struct {
	Item   models.ReportHistoryItem `json:"item"`
	Blocks []markdown.Block         `json:"blocks"`
}

// NewListHistoryHandler returns the handler for GET /api/v1/history.
func NewListHistoryHandler(h History) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := h.Items()
		if items == nil {
			items = []models.ReportHistoryItem{}
		}
		response.Collection(w, items, response.Meta{Total: len(items)})
	}
}

// NewGetHistoryHandler returns the handler for GET /api/v1/history/{id}.
func NewGetHistoryHandler(h History) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, ok := lookup(w, r, h)
		if !ok {
			return
		}
		response.JSON(w, historyDetail{
			Item:   item,
			Blocks: markdown.Collect(item.Analysis.ClientRewrite),
		})
	}
}

// NewClearHistoryHandler returns the handler for DELETE /api/v1/history.
func NewClearHistoryHandler(h History) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.Clear(r.Context()); err != nil {
			response.Error(w, http.StatusServiceUnavailable, "HISTORY_UNAVAILABLE",
				"History could not be cleared", nil)
			return
		}
		response.NoContent(w)
	}
}

// NewExportHistoryHandler returns the handler for
// GET /api/v1/history/{id}/export. The stored item's own technician and
// site are used as export metadata.
func NewExportHistoryHandler(h History, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, ok := parseFormat(w, r)
		if !ok {
			return
		}
		item, ok := lookup(w, r, h)
		if !ok {
			return
		}
		writeExport(w, format, item.Analysis, export.Meta{
			TechnicianName: item.TechnicianName,
			JobSiteName:    item.JobSiteName,
			Now:            now(),
		})
	}
}

func lookup(w http.ResponseWriter, r *http.Request, h History) (models.ReportHistoryItem, bool) {
	item, err := h.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "NOT_FOUND", "History item not found", nil)
		} else {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
		}
		return models.ReportHistoryItem{}, false
	}
	return item, true
}
