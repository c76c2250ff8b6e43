package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kinovzor_client",
			Name:      "mutations_total",
			Help:      "Mutations accepted into the shard executor.",
		},
		[]string{"op"},
	)

	mutationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kinovzor_client",
			Name:      "mutation_failures_total",
			Help:      "Mutations whose job returned an error after retries.",
		},
		[]string{"op"},
	)

	staleDetailDropsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "kinovzor_client",
			Name:      "stale_detail_results_dropped_total",
			Help:      "Detail fetch results discarded because their epoch expired.",
		},
	)
)
