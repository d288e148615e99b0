package octree

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	modeLabel    = "mode"
	errTypeLabel = "error_type"
)

var (
	insertCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "octree_insert_count_total",
		Help: "The total number of bodies inserted into trees.",
	}, []string{
		modeLabel,
	})

	insertErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "octree_insert_errors",
		Help: "The errors that occured while inserting a body.",
	}, []string{
		modeLabel,
		errTypeLabel,
	})

	insertDepth = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "octree_insert_depth",
		Help:    "The depth at which inserted bodies come to rest.",
		Buckets: prometheus.LinearBuckets(0, 4, 17),
	}, []string{
		modeLabel,
	})

	nodeCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "octree_node_count_total",
		Help: "The total number of tree nodes materialized.",
	}, []string{
		modeLabel,
	})
)

func instrumentInsert(mode string, depth int) {
	insertCount.
		With(prometheus.Labels{modeLabel: mode}).
		Inc()
	insertDepth.
		With(prometheus.Labels{modeLabel: mode}).
		Observe(float64(depth))
}

func instrumentInsertError(mode string, err error) {
	insertErrors.
		With(prometheus.Labels{
			modeLabel:    mode,
			errTypeLabel: errors.Type(err),
		}).
		Inc()
}

func instrumentNodeCreated(mode string) {
	nodeCount.
		With(prometheus.Labels{modeLabel: mode}).
		Inc()
}
