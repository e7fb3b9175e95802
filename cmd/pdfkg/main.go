package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/athapong/pdfkg/pkg/graph"
	"github.com/athapong/pdfkg/pkg/graph/export"
	"github.com/athapong/pdfkg/pkg/graph/processors"
	"github.com/athapong/pdfkg/pkg/graph/render"
	"github.com/athapong/pdfkg/pkg/graph/visualizer"
)

var (
	envFile         = flag.String("env", ".env", "Path to environment file")
	inputFile       = flag.String("input", "", "Input PDF file")
	outputDir       = flag.String("out-dir", "output", "Directory for exported artifacts")
	topK            = flag.Int("top-k", graph.DefaultTopKeywords, "Number of keywords to rank")
	visualize       = flag.Bool("visualize", false, "Generate an HTML visualization of the knowledge graph")
	visualizeOutput = flag.String("viz-output", "knowledge_graph.html", "Output file for the visualization")
	logLevel        = flag.String("log-level", "info", "Logging level (debug, info, warn, error)")
)

func main() {
	flag.Parse()

	logger := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatalf("Invalid log level: %v", err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if err := godotenv.Load(*envFile); err != nil {
		logger.Debugf("No env file loaded from %s: %v", *envFile, err)
	}

	if *inputFile == "" {
		logger.Fatal("Input PDF must be specified")
	}

	content, err := os.ReadFile(*inputFile)
	if err != nil {
		logger.Fatalf("Failed to read input file: %v", err)
	}

	text, err := processors.ExtractPDFText(content)
	if err != nil {
		logger.Warnf("No text available: %v", err)
		return
	}

	pipeline := graph.NewPipeline(processors.NewNLPProcessor()).
		WithTopKeywords(*topK).
		WithGraphLimits(envInt(logger, "PDFKG_MAX_NODES"), envInt(logger, "PDFKG_MAX_EDGES"))

	ctx := context.Background()
	result, err := pipeline.Process(ctx, text)
	if err != nil {
		logger.Fatalf("Failed to process document: %v", err)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		logger.Fatalf("Failed to create output directory: %v", err)
	}
	writeArtifact(logger, *outputDir, "entities.csv", func() ([]byte, error) {
		return export.EntitiesCSV(result.Entities)
	})
	writeArtifact(logger, *outputDir, "relationships.csv", func() ([]byte, error) {
		return export.TriplesCSV(result.Triples)
	})
	writeArtifact(logger, *outputDir, "knowledge_graph.json", func() ([]byte, error) {
		return export.MarshalGraph(result.Graph)
	})
	writeArtifact(logger, *outputDir, "text_analysis.json", func() ([]byte, error) {
		return json.MarshalIndent(result.Analysis, "", "  ")
	})

	logger.Infof("Knowledge graph generated with %d nodes and %d edges",
		result.Graph.NodeCount(), result.Graph.EdgeCount())

	if *visualize {
		payload := render.Sanitize(result.Graph)
		viz := visualizer.NewD3Visualizer(*visualizeOutput)
		if err := viz.Visualize(payload); err != nil {
			logger.Errorf("Failed to visualize knowledge graph: %v", err)
		} else {
			logger.Infof("Visualization saved to %s", *visualizeOutput)
		}
	}
}

func writeArtifact(logger *logrus.Logger, dir, name string, build func() ([]byte, error)) {
	data, err := build()
	if err != nil {
		logger.Errorf("Failed to build %s: %v", name, err)
		return
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Errorf("Failed to write %s: %v", path, err)
		return
	}
	logger.Infof("Wrote %s", path)
}

// envInt reads a positive integer env var, 0 when unset or unparsable
// (callers treat 0 as "keep default").
func envInt(logger *logrus.Logger, key string) int {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		logger.Warnf("Ignoring invalid %s=%q", key, raw)
		return 0
	}
	return n
}
