package metrics

import (
	"github.com/safing/cfrand/log"
)

func registerLogMetrics() {
	NewGauge(`cfrand_log_lines{level="warning"}`, func() float64 {
		return float64(log.TotalWarningLogLines())
	})
	NewGauge(`cfrand_log_lines{level="error"}`, func() float64 {
		return float64(log.TotalErrorLogLines())
	})
	NewGauge(`cfrand_log_lines{level="critical"}`, func() float64 {
		return float64(log.TotalCriticalLogLines())
	})
	NewGauge(`cfrand_log_lines_dropped`, func() float64 {
		return float64(log.DroppedLines())
	})
}
