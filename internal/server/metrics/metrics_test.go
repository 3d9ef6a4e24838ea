package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/questions", 200, 10*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/questions", 200, 20*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/questions", 401, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/questions", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("POST", "/questions", "401")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.requestDuration))
}

func TestAuthFailure(t *testing.T) {
	m := New()
	m.AuthFailure("revoked")
	m.AuthFailure("revoked")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.authFailures.WithLabelValues("revoked")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "/healthz", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `qaforum_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
