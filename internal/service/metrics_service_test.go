package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceDomainCounters(t *testing.T) {
	m := NewMetricsService()

	m.PhotoUploaded(1024)
	m.PhotoUploaded(2048)
	m.StudentsImported(3)
	m.StudentsImported(0)
	m.SessionCompleted()
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, "snapself_photos_uploaded_total 2")
	assert.Contains(t, body, "snapself_students_imported_total 3")
	assert.Contains(t, body, "snapself_sessions_completed_total 1")
	assert.Contains(t, body, "cache_hit_ratio 0.5")
}

func scrape(t *testing.T, m *MetricsService) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetricsServiceHandlerServesRegistry(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/schools", http.StatusOK, 10*time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `http_requests_total{method="GET",path="/api/v1/schools",status="200"} 1`)
	assert.Contains(t, body, "snapself_photos_uploaded_total 0")
}

func TestNilMetricsServiceIsSafe(t *testing.T) {
	var m *MetricsService
	m.PhotoUploaded(1)
	m.SessionCreated()
	m.MarkRecorded("ABSENT")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
