// Package export serializes pipeline artifacts into write-only snapshot
// formats: CSV tables for entities and relationships, and a node-link JSON
// form of the knowledge graph. The node-link form round-trips: parsing it
// back yields an equivalent graph.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"

	"github.com/athapong/pdfkg/pkg/graph"
)

// nodeLink mirrors the node-link JSON schema: graph attributes plus flat
// node and link lists.
type nodeLink struct {
	Directed   bool         `json:"directed"`
	Multigraph bool         `json:"multigraph"`
	Nodes      []graph.Node `json:"nodes"`
	Links      []graph.Edge `json:"links"`
}

// MarshalGraph serializes g into indented node-link JSON. Every node and
// edge attribute present at build time appears in the output. A nil graph
// serializes as an empty document.
func MarshalGraph(g *graph.KnowledgeGraph) ([]byte, error) {
	doc := nodeLink{
		Nodes: make([]graph.Node, 0),
		Links: make([]graph.Edge, 0),
	}
	if g != nil {
		doc.Nodes = g.Nodes()
		doc.Links = g.Edges()
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encoding graph")
	}
	return data, nil
}

// ParseGraph reconstructs a knowledge graph from node-link JSON produced by
// MarshalGraph. Node and edge insertion order follows the serialized order,
// so a marshal/parse cycle preserves graph structure exactly.
func ParseGraph(data []byte) (*graph.KnowledgeGraph, error) {
	var doc nodeLink
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decoding graph")
	}

	g := graph.NewKnowledgeGraph()
	// Parsed snapshots may legitimately exceed the build-time caps.
	g.SetLimits(len(doc.Nodes)+len(doc.Links)*2, len(doc.Links))

	for _, n := range doc.Nodes {
		g.AddNode(n.Text, n.Category, n.Size)
	}
	for _, e := range doc.Links {
		g.AddEdge(e.Source, e.Target, e.Label)
	}
	return g, nil
}

// EntitiesCSV renders entity spans as a CSV table with a header row.
func EntitiesCSV(spans []graph.EntitySpan) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"text", "label", "start", "end"}}
	for _, s := range spans {
		records = append(records, []string{
			s.Text, s.Label, strconv.Itoa(s.Start), strconv.Itoa(s.End),
		})
	}
	if err := w.WriteAll(records); err != nil {
		return nil, errors.Wrap(err, "writing entities csv")
	}
	return buf.Bytes(), nil
}

// TriplesCSV renders relationship triples as a CSV table with a header row.
func TriplesCSV(triples []graph.Triple) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"subject", "predicate", "object", "type"}}
	for _, t := range triples {
		records = append(records, []string{t.Subject, t.Predicate, t.Object, t.Kind})
	}
	if err := w.WriteAll(records); err != nil {
		return nil, errors.Wrap(err, "writing relationships csv")
	}
	return buf.Bytes(), nil
}
