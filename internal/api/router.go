package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	mw "github.com/kiranshivaraju/reportaudit/internal/api/middleware"
	"github.com/kiranshivaraju/reportaudit/internal/api/response"
	"go.uber.org/zap"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	Logger      *zap.Logger
	CORSOrigins []string
	// InFlight guards audit submission; nil admits concurrent submissions.
	InFlight *mw.InFlight

	HealthHandler        http.HandlerFunc
	SubmitAuditHandler   http.HandlerFunc
	ListHistoryHandler   http.HandlerFunc
	GetHistoryHandler    http.HandlerFunc
	ClearHistoryHandler  http.HandlerFunc
	ExportHistoryHandler http.HandlerFunc
	ExportHandler        http.HandlerFunc
	RenderHandler        http.HandlerFunc
	SampleHandler        http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.Logger(logger))
	r.Use(mw.Recovery(logger))
	if len(deps.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: deps.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", mw.RequestIDHeader},
			ExposedHeaders: []string{"Content-Disposition", mw.RequestIDHeader},
			MaxAge:         300,
		}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", orNotImplemented(deps.HealthHandler))

		r.Group(func(r chi.Router) {
			if deps.InFlight != nil {
				r.Use(deps.InFlight.Guard)
			}
			r.Post("/audits", orNotImplemented(deps.SubmitAuditHandler))
		})

		r.Get("/history", orNotImplemented(deps.ListHistoryHandler))
		r.Delete("/history", orNotImplemented(deps.ClearHistoryHandler))
		r.Get("/history/{id}", orNotImplemented(deps.GetHistoryHandler))
		r.Get("/history/{id}/export", orNotImplemented(deps.ExportHistoryHandler))

		r.Post("/exports", orNotImplemented(deps.ExportHandler))
		r.Post("/render", orNotImplemented(deps.RenderHandler))
		r.Get("/samples/{kind}", orNotImplemented(deps.SampleHandler))
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
