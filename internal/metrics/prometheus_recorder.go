package metrics

import (
	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	evaluations *prom.CounterVec
	historySize prom.Gauge
}

// NewPrometheusRecorder constructs and registers the calculator metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		evaluations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "tcalc",
			Name:      "evaluations_total",
			Help:      "Evaluate requests by outcome (success, error, noop)",
		}, []string{"outcome"}),
		historySize: prom.NewGauge(prom.GaugeOpts{
			Namespace: "tcalc",
			Name:      "history_records",
			Help:      "Number of records currently held in the history log",
		}),
	}
	reg.MustRegister(pr.evaluations, pr.historySize)
	return pr
}

func (p *PrometheusRecorder) ObserveEvaluation(outcome string) {
	p.evaluations.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) SetHistorySize(n int) {
	p.historySize.Set(float64(n))
}
