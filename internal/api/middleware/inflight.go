package middleware

import (
	"net/http"

	"github.com/kiranshivaraju/reportaudit/internal/api/response"
	"golang.org/x/sync/semaphore"
)

// InFlight rejects a request while limit others are still being served.
// It keeps a second audit from being submitted while one is pending.
type InFlight struct {
	sem *semaphore.Weighted
}

// NewInFlight creates an InFlight guard admitting limit concurrent requests.
func NewInFlight(limit int64) *InFlight {
	if limit <= 0 {
		limit = 1
	}
	return &InFlight{sem: semaphore.NewWeighted(limit)}
}

func (f *InFlight) Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !f.sem.TryAcquire(1) {
			w.Header().Set("Retry-After", "5")
			response.Error(w, http.StatusConflict,
				"AUDIT_IN_FLIGHT", "An audit is already in progress", nil)
			return
		}
		defer f.sem.Release(1)
		next.ServeHTTP(w, r)
	})
}
