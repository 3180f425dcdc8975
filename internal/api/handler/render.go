package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kiranshivaraju/reportaudit/internal/api/response"
	"github.com/kiranshivaraju/reportaudit/internal/markdown"
)

// NewRenderHandler returns the handler for POST /api/v1/render.
func NewRenderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text *string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.Text == nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "text is required", nil)
			return
		}
		response.JSON(w, markdown.Collect(*req.Text))
	}
}
