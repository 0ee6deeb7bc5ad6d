package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStartupStatusProgress(t *testing.T) {
	status := NewStartupStatus(StepDatabase, StepMigrations, StepSeed, StepServices)
	handler := status.Handler(zap.NewNop())

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, 0, decode[startupResponse](t, rec).Progress)

	status.SetCurrentStep(StepMigrations)
	status.CompleteStep(StepDatabase)
	status.CompleteStep(StepMigrations)

	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	snap := decode[startupResponse](t, rec)
	assert.Equal(t, 50, snap.Progress)
	assert.Equal(t, StepMigrations, snap.Current)
	assert.False(t, status.IsReady())

	status.MarkReady()
	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[startupResponse](t, rec).Ready)
}

func TestRequireReadyGatesAPI(t *testing.T) {
	status := NewStartupStatus(StepDatabase)
	handler := status.RequireReady(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(path string) int {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusServiceUnavailable, serve("/api/challenge"))
	assert.Equal(t, http.StatusNoContent, serve("/healthz"))

	status.MarkReady()
	assert.Equal(t, http.StatusNoContent, serve("/api/challenge"))
}
