package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds every logmon collector, kept apart from the global default registry
	Registry = prometheus.NewRegistry()

	LinesScanned = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "logmon_lines_scanned_total",
		Help: "Lines classified across all runs.",
	})

	Matches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "logmon_matches_total",
		Help: "Lines matching a danger pattern, by category.",
	}, []string{"category"})

	AlertsEmitted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "logmon_alerts_total",
		Help: "Alerts emitted, by kind.",
	}, []string{"kind"})

	Runs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "logmon_runs_total",
		Help: "Completed runs, by result (clean, alerted, failed).",
	}, []string{"result"})

	ConfigReloads = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "logmon_config_reloads_total",
		Help: "Successful configuration reloads.",
	})

	CursorOffset = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "logmon_cursor_offset_bytes",
		Help: "Byte offset consumed by follow mode.",
	})
)

func init() {
	Registry.MustRegister(LinesScanned, Matches, AlertsEmitted, Runs, ConfigReloads, CursorOffset)
}

// Handler serves the logmon registry in the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
