package models

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generatedBodyCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "generated_body_count_total",
		Help: "The total number of generated bodies.",
	})
)

func instrumentGeneratedBody() {
	generatedBodyCount.Inc()
}
