package bench

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const modeLabel = "mode"

var (
	buildCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "build_count_total",
		Help: "The number of trees built.",
	},
		[]string{modeLabel},
	)

	buildLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "build_latency",
		Help: "The time to build a tree.",
	},
		[]string{modeLabel},
	)
)

func instrumentBuild(mode string, start time.Time) {
	labels := prometheus.Labels{modeLabel: mode}
	buildCount.With(labels).Inc()
	buildLatency.With(labels).Observe(time.Since(start).Seconds())
}
