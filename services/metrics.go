package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeFound      = "found"
	outcomeNoPath     = "no_path"
	outcomeBadRequest = "bad_request"
)

var (
	pathQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flightroute_path_queries_total",
		Help: "Path queries by algorithm and outcome",
	}, []string{"algorithm", "outcome"})

	pathQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flightroute_path_query_duration_seconds",
		Help:    "Traversal time in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
	}, []string{"algorithm"})

	pathHops = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flightroute_path_hops",
		Help:    "Edges in returned paths",
		Buckets: []float64{1, 2, 3, 4, 6, 8, 12, 16, 24, 32},
	}, []string{"algorithm"})
)
