package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ontoview",
		Name:      "query_duration_seconds",
		Help:      "Time spent executing a named SPARQL query.",
		Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
	}, []string{"query"})

	QueryRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ontoview",
		Name:      "query_rows_total",
		Help:      "Solutions returned by a named SPARQL query.",
	}, []string{"query"})

	QueryErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ontoview",
		Name:      "query_errors_total",
		Help:      "Failed executions of a named SPARQL query.",
	}, []string{"query"})

	GraphTriples = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "ontoview",
		Name:      "graph_triples",
		Help:      "Distinct triples in the loaded ontology graph.",
	})
)

// ObserveQuery records one execution of query.
func ObserveQuery(query string, started time.Time, rows int, err error) {
	QueryDuration.WithLabelValues(query).Observe(time.Since(started).Seconds())
	if err != nil {
		QueryErrors.WithLabelValues(query).Inc()
		return
	}
	QueryRows.WithLabelValues(query).Add(float64(rows))
}
