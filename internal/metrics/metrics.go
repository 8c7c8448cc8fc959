// Package metrics records wkhtml tool invocations as Prometheus metrics and
// writes them in the node_exporter textfile format.
package metrics

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/alnah/go-wkhtmlapp"
)

const namespace = "wkhtmlapp"

// Result label values.
const (
	ResultSuccess   = "success"
	ResultRendering = "rendering_error"
	ResultService   = "service_error"
	ResultTimeout   = "timeout"
	ResultCanceled  = "canceled"
)

var _ wkhtmlapp.Observer = (*Recorder)(nil)

// Recorder implements wkhtmlapp.Observer using Prometheus metrics.
type Recorder struct {
	reg      *prom.Registry
	runs     *prom.CounterVec
	duration *prom.HistogramVec
}

// NewRecorder constructs the collectors and registers them on reg. A nil reg
// gets a private registry.
func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	r := &Recorder{
		reg: reg,
		runs: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Tool invocations by tool, input flow and result",
		}, []string{"tool", "flow", "result"}),
		duration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of tool invocations",
			Buckets:   prom.ExponentialBuckets(0.1, 2, 10),
		}, []string{"tool", "flow"}),
	}
	reg.MustRegister(r.runs, r.duration)
	return r
}

// ObserveRun records one finished invocation.
func (r *Recorder) ObserveRun(ev wkhtmlapp.RunEvent) {
	if r == nil {
		return
	}
	tool := ToolLabel(ev.Binary)
	flow := ev.Flow.String()
	r.runs.WithLabelValues(tool, flow, ResultLabel(ev.Err)).Inc()
	r.duration.WithLabelValues(tool, flow).Observe(ev.Duration.Seconds())
}

// Registry returns the registry the collectors live in.
func (r *Recorder) Registry() *prom.Registry {
	return r.reg
}

// WriteTextfile writes all metrics to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, r.reg)
}

// ToolLabel reduces a binary path to its executable name.
func ToolLabel(binary string) string {
	base := filepath.Base(binary)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ResultLabel classifies a run error.
func ResultLabel(err error) string {
	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ResultTimeout
	case errors.Is(err, context.Canceled):
		return ResultCanceled
	case errors.Is(err, wkhtmlapp.ErrService):
		return ResultService
	default:
		return ResultRendering
	}
}
