package handler

import (
	"net/http"

	"github.com/kiranshivaraju/reportaudit/internal/api/response"
)

// NewHealthHandler reports whether the history backend is reachable.
func NewHealthHandler(h History) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{"history": "ok"}
		if err := h.Ping(r.Context()); err != nil {
			checks["history"] = "degraded"
			response.Error(w, http.StatusServiceUnavailable, "DEGRADED",
				"History backend is unreachable", checks)
			return
		}
		response.JSON(w, map[string]any{
			"status":   "ok",
			"services": checks,
		})
	}
}
