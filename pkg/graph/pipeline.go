package graph

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/athapong/pdfkg/pkg/graph/analytics"
	"github.com/athapong/pdfkg/pkg/graph/metrics"
)

// Result is the immutable artifact tuple of one Process call. Each call
// produces a new Result; nothing is merged into a previous one.
type Result struct {
	DocumentID string
	Text       string
	Entities   []EntitySpan
	Keywords   []string
	Triples    []Triple
	Graph      *KnowledgeGraph
	Analysis   analytics.Analysis
}

// Pipeline runs the full text-to-graph pass: normalize, annotate once,
// extract keywords and triples from the shared annotation, build the graph.
// It is synchronous and single-document; concurrent use is not supported.
type Pipeline struct {
	annotator Annotator
	builder   *Builder
	topK      int
	logger    *logrus.Logger
}

// NewPipeline creates a pipeline around one annotator.
func NewPipeline(annotator Annotator) *Pipeline {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Pipeline{
		annotator: annotator,
		builder:   NewBuilder(),
		topK:      DefaultTopKeywords,
		logger:    logger,
	}
}

// WithTopKeywords overrides the keyword ranking cap.
func (p *Pipeline) WithTopKeywords(topK int) *Pipeline {
	if topK > 0 {
		p.topK = topK
	}
	return p
}

// WithGraphLimits overrides the node/edge caps of built graphs.
func (p *Pipeline) WithGraphLimits(maxNodes, maxEdges int) *Pipeline {
	p.builder.WithLimits(maxNodes, maxEdges)
	return p
}

// Process normalizes rawText and runs the extraction stages over it. Empty
// input (including input that normalizes to empty) yields a Result with an
// empty graph without invoking the annotator. An annotator failure is
// returned as an error, distinct from the empty case.
func (p *Pipeline) Process(ctx context.Context, rawText string) (*Result, error) {
	timer := prometheus.NewTimer(metrics.StageDuration.WithLabelValues("process"))
	defer timer.ObserveDuration()

	result := &Result{
		DocumentID: uuid.New().String(),
		Text:       NormalizeText(rawText),
	}

	if result.Text == "" {
		p.logger.WithField("doc_id", result.DocumentID).Info("no text available, skipping extraction")
		result.Graph = p.builder.Build(nil, nil)
		metrics.DocumentsProcessed.WithLabelValues("empty").Inc()
		return result, nil
	}

	annotateTimer := prometheus.NewTimer(metrics.StageDuration.WithLabelValues("annotate"))
	ann, err := p.annotator.Annotate(ctx, result.Text)
	annotateTimer.ObserveDuration()
	if err != nil {
		metrics.DocumentsProcessed.WithLabelValues("error").Inc()
		return nil, errors.Wrap(err, "annotating text")
	}

	result.Entities = ann.Entities
	result.Keywords = ExtractKeywords(ann, p.topK)
	result.Triples = ExtractTriples(ann)
	result.Graph = p.builder.Build(result.Entities, result.Triples)

	analyzeTimer := prometheus.NewTimer(metrics.StageDuration.WithLabelValues("analyze"))
	result.Analysis, err = analytics.Analyze(result.Text)
	analyzeTimer.ObserveDuration()
	if err != nil {
		metrics.DocumentsProcessed.WithLabelValues("error").Inc()
		return nil, errors.Wrap(err, "analyzing text")
	}

	for _, span := range result.Entities {
		metrics.EntitiesExtracted.WithLabelValues(span.Label).Inc()
	}
	metrics.TriplesExtracted.Add(float64(len(result.Triples)))
	metrics.GraphNodes.Set(float64(result.Graph.NodeCount()))
	metrics.GraphEdges.Set(float64(result.Graph.EdgeCount()))
	metrics.DocumentsProcessed.WithLabelValues("success").Inc()

	p.logger.WithFields(logrus.Fields{
		"doc_id":   result.DocumentID,
		"entities": len(result.Entities),
		"keywords": len(result.Keywords),
		"triples":  len(result.Triples),
		"nodes":    result.Graph.NodeCount(),
		"edges":    result.Graph.EdgeCount(),
	}).Info("document processed")

	return result, nil
}
