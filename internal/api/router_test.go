package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kiranshivaraju/reportaudit/internal/api"
	mw "github.com/kiranshivaraju/reportaudit/internal/api/middleware"
	"github.com/stretchr/testify/assert"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func serve(h http.Handler, method, path string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_RoutesWired(t *testing.T) {
	router := api.NewRouter(api.Dependencies{
		HealthHandler:        ok,
		SubmitAuditHandler:   ok,
		ListHistoryHandler:   ok,
		GetHistoryHandler:    ok,
		ClearHistoryHandler:  ok,
		ExportHistoryHandler: ok,
		ExportHandler:        ok,
		RenderHandler:        ok,
		SampleHandler:        ok,
	})

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/health"},
		{http.MethodPost, "/api/v1/audits"},
		{http.MethodGet, "/api/v1/history"},
		{http.MethodDelete, "/api/v1/history"},
		{http.MethodGet, "/api/v1/history/abc"},
		{http.MethodGet, "/api/v1/history/abc/export"},
		{http.MethodPost, "/api/v1/exports"},
		{http.MethodPost, "/api/v1/render"},
		{http.MethodGet, "/api/v1/samples/risky"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec := serve(router, rt.method, rt.path, nil)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(mw.RequestIDHeader))
		})
	}
}

func TestRouter_UnwiredIsNotImplemented(t *testing.T) {
	router := api.NewRouter(api.Dependencies{})
	rec := serve(router, http.MethodPost, "/api/v1/render", nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_IMPLEMENTED")
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := api.NewRouter(api.Dependencies{})
	rec := serve(router, http.MethodGet, "/api/v1/clusters", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_CORS(t *testing.T) {
	router := api.NewRouter(api.Dependencies{
		CORSOrigins:   []string{"http://localhost:5173"},
		HealthHandler: ok,
	})

	rec := serve(router, http.MethodGet, "/api/v1/health", func(r *http.Request) {
		r.Header.Set("Origin", "http://localhost:5173")
	})
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = serve(router, http.MethodGet, "/api/v1/health", func(r *http.Request) {
		r.Header.Set("Origin", "http://evil.example")
	})
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_InFlightGuardsOnlyAudits(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	router := api.NewRouter(api.Dependencies{
		InFlight: mw.NewInFlight(1),
		SubmitAuditHandler: func(w http.ResponseWriter, r *http.Request) {
			close(entered)
			<-release
			w.WriteHeader(http.StatusCreated)
		},
		ListHistoryHandler: ok,
	})

	done := make(chan int)
	go func() {
		done <- serve(router, http.MethodPost, "/api/v1/audits", nil).Code
	}()
	<-entered

	assert.Equal(t, http.StatusConflict, serve(router, http.MethodPost, "/api/v1/audits", nil).Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/history", nil).Code)

	close(release)
	assert.Equal(t, http.StatusCreated, <-done)
}
