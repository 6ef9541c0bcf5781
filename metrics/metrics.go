// Package metrics holds the counters and gauges of cfrand and exports them in
// the Prometheus text format.
package metrics

import (
	"io"

	vm "github.com/VictoriaMetrics/metrics"
)

var set = vm.NewSet()

func init() {
	registerLogMetrics()
}

// NewCounter returns the counter with the given name, creating it on first
// use. The name may carry Prometheus labels, eg. `name{label="value"}`.
func NewCounter(name string) *vm.Counter {
	return set.GetOrCreateCounter(name)
}

// NewGauge returns the gauge with the given name that reports the value of f.
func NewGauge(name string, f func() float64) *vm.Gauge {
	return set.GetOrCreateGauge(name, f)
}

// WritePrometheus writes all metrics to w. Process metrics of the Go runtime
// are included if withProcessMetrics is set.
func WritePrometheus(w io.Writer, withProcessMetrics bool) {
	set.WritePrometheus(w)
	if withProcessMetrics {
		vm.WriteProcessMetrics(w)
	}
}
