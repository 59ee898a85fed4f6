package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "community",
		Subsystem: "gateway",
		Name:      "mutation_outcomes_total",
		Help:      "Mutation results by name and outcome kind.",
	}, []string{"mutation", "outcome"})

	batchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "community",
		Subsystem: "gateway",
		Name:      "batches_total",
		Help:      "Mutation batches by gateway disposition.",
	}, []string{"status"})

	batchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "community",
		Subsystem: "gateway",
		Name:      "batch_size",
		Help:      "Number of mutations per batch.",
		Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
	})
)

func ObserveMutation(name, outcome string) {
	mutationOutcomes.WithLabelValues(name, outcome).Inc()
}

func ObserveBatch(status string, size int) {
	batchesTotal.WithLabelValues(status).Inc()
	if size > 0 {
		batchSize.Observe(float64(size))
	}
}
