package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.ObserveEvaluation("success")
	r.ObserveEvaluation("success")
	r.ObserveEvaluation("error")
	r.SetHistorySize(7)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.evaluations.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.evaluations.WithLabelValues("error")))
	assert.Equal(t, 7.0, testutil.ToFloat64(r.historySize))
}

func TestHTTPHandlerExposesMetrics(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)
	r.ObserveEvaluation("success")

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `tcalc_evaluations_total{outcome="success"} 1`)
	assert.Contains(t, rec.Body.String(), "tcalc_history_records")
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveEvaluation("success")
	r.SetHistorySize(3)
}
