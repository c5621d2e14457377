// Package metrics records calculator activity. The Prometheus recorder is
// only wired when a metrics address is configured; otherwise NoopRecorder
// is used.
package metrics

// Recorder observes engine and history activity.
type Recorder interface {
	ObserveEvaluation(outcome string)
	SetHistorySize(n int)
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) ObserveEvaluation(string) {}
func (NoopRecorder) SetHistorySize(int)       {}
