package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	mw "github.com/kiranshivaraju/reportaudit/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestRequestID_Generated(t *testing.T) {
	var seen string
	h := mw.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = mw.GetRequestID(r)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(mw.RequestIDHeader))
}

func TestRequestID_Propagated(t *testing.T) {
	var seen string
	h := mw.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = mw.GetRequestID(r)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(mw.RequestIDHeader, "req-123")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "req-123", seen)
}

func TestRecovery_CatchesPanic(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := mw.Recovery(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, w))
	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestRecovery_NoPanic(t *testing.T) {
	h := mw.Recovery(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestLogger_SetsStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := mw.RequestID(mw.Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})))

	r := httptest.NewRequest(http.MethodPost, "/api/v1/audits", nil)
	r.Header.Set(mw.RequestIDHeader, "req-9")
	h.ServeHTTP(httptest.NewRecorder(), r)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/api/v1/audits", fields["path"])
	assert.Equal(t, int64(http.StatusCreated), fields["status"])
	assert.Equal(t, "req-9", fields["request_id"])
}

func TestInFlight_RejectsConcurrent(t *testing.T) {
	guard := mw.NewInFlight(1)
	entered := make(chan struct{})
	release := make(chan struct{})
	h := guard.Guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.WriteHeader(http.StatusCreated)
	}))

	first := httptest.NewRecorder()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/", nil))
	}()
	<-entered

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, "AUDIT_IN_FLIGHT", errorCode(t, second))

	close(release)
	wg.Wait()
	assert.Equal(t, http.StatusCreated, first.Code)
}

func TestInFlight_ReleasesAfterCompletion(t *testing.T) {
	h := mw.NewInFlight(1).Guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for range 3 {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
