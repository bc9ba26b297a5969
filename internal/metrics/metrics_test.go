package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-api/internal/database"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.LoginAttempt("success")
		m.AuthRejected("MISSING_TOKEN")
		m.SetBuildInfo("dev")
	})

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	rec := httptest.NewRecorder()
	m.Instrument(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestCountersIncrement(t *testing.T) {
	m := New()
	m.LoginAttempt("success")
	m.LoginAttempt("wrong_password")
	m.LoginAttempt("wrong_password")
	m.AuthRejected("INVALID_TOKEN")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.loginAttempts.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.loginAttempts.WithLabelValues("wrong_password")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authRejections.WithLabelValues("INVALID_TOKEN")))
}

func TestInstrumentUsesRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Instrument)
	r.Get("/api/projects/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", m.Handler())

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "/api/projects/{id}", "404")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "portfolio_http_requests_total"))
}

func TestObservePool(t *testing.T) {
	m := New()
	m.ObservePool(func() database.PoolStats {
		return database.PoolStats{TotalConns: 4, IdleConns: 3, AcquiredConns: 1}
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "portfolio_db_pool_total_conns 4")
	assert.Contains(t, body, "portfolio_db_pool_idle_conns 3")
	assert.Contains(t, body, "portfolio_db_pool_acquired_conns 1")

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.ObservePool(nil) })
}
