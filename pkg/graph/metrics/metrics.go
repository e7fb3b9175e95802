package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline metrics
	DocumentsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pdfkg_documents_processed_total",
			Help: "Total number of documents processed",
		},
		[]string{"status"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pdfkg_stage_duration_seconds",
			Help: "Time spent in each pipeline stage",
		},
		[]string{"stage"},
	)

	// Extraction metrics
	EntitiesExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pdfkg_entities_extracted_total",
			Help: "Number of entity spans extracted",
		},
		[]string{"category"},
	)

	TriplesExtracted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pdfkg_triples_extracted_total",
			Help: "Number of relationship triples extracted",
		},
	)

	// Graph metrics
	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pdfkg_graph_nodes",
		Help: "Nodes in the most recently built graph",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pdfkg_graph_edges",
		Help: "Edges in the most recently built graph",
	})
)
