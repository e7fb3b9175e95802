package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athapong/pdfkg/pkg/graph"
)

func TestSanitizeEmptyGraph(t *testing.T) {
	payload := Sanitize(graph.NewKnowledgeGraph())
	assert.Empty(t, payload.Nodes)
	assert.Empty(t, payload.Edges)

	payload = Sanitize(nil)
	assert.Empty(t, payload.Nodes)
	assert.Empty(t, payload.Edges)
}

func TestSanitizeUniqueIdentifiers(t *testing.T) {
	g := graph.NewKnowledgeGraph()
	long := strings.Repeat("x", 70)
	// Distinct node keys sharing the first 60 characters collide after
	// truncation.
	g.AddNode(long+"a", graph.CategoryPerson, 20)
	g.AddNode(long+"b", graph.CategoryPerson, 20)
	g.AddNode(long+"c", graph.CategoryPerson, 20)

	payload := Sanitize(g)
	require.Len(t, payload.Nodes, 3)

	seen := make(map[string]bool)
	for _, n := range payload.Nodes {
		assert.False(t, seen[n.ID], "duplicate identifier %q", n.ID)
		seen[n.ID] = true
	}
}

func TestSanitizeDropsSelfLoops(t *testing.T) {
	g := graph.NewKnowledgeGraph()
	g.AddEdge("Alice", "Alice", "knows")
	g.AddEdge("Alice", "Bob", "met")

	payload := Sanitize(g)
	require.Len(t, payload.Edges, 1)
	assert.NotEqual(t, payload.Edges[0].Source, payload.Edges[0].Target)
}

func TestSanitizeTrimCollisionDisambiguated(t *testing.T) {
	// Distinct node keys that trim to the same identifier stay distinct in
	// the payload, and the edge between them is not a self-loop.
	g := graph.NewKnowledgeGraph()
	g.AddEdge("  Alice", "Alice  ", "mirrors")

	payload := Sanitize(g)
	require.Len(t, payload.Nodes, 2)
	assert.NotEqual(t, payload.Nodes[0].ID, payload.Nodes[1].ID)
	require.Len(t, payload.Edges, 1)
	assert.NotEqual(t, payload.Edges[0].Source, payload.Edges[0].Target)
}

func TestSanitizeEdgeEndpointsExist(t *testing.T) {
	g := graph.NewKnowledgeGraph()
	g.AddNode("Alice", graph.CategoryPerson, 20)
	g.AddNode("Bob", graph.CategoryPerson, 20)
	g.AddEdge("Alice", "Bob", "met")

	payload := Sanitize(g)
	ids := make(map[string]bool)
	for _, n := range payload.Nodes {
		ids[n.ID] = true
	}
	for _, e := range payload.Edges {
		assert.True(t, ids[e.Source])
		assert.True(t, ids[e.Target])
	}
}

func TestSanitizeLabelTruncation(t *testing.T) {
	g := graph.NewKnowledgeGraph()
	long := strings.Repeat("n", 45)
	g.AddNode(long, graph.CategoryPerson, 20)

	payload := Sanitize(g)
	require.Len(t, payload.Nodes, 1)
	label := payload.Nodes[0].Label
	assert.Equal(t, 30, len([]rune(label)))
	assert.True(t, strings.HasSuffix(label, "…"))
}

func TestSanitizePlaceholderForEmptyKey(t *testing.T) {
	assert.Equal(t, "unknown", safeID("   "))
}

func TestSanitizeColors(t *testing.T) {
	g := graph.NewKnowledgeGraph()
	g.AddNode("Alice", graph.CategoryPerson, 20)
	g.AddNode("Acme", graph.CategoryOrg, 20)
	g.AddNode("thing", "SOMETHING_ELSE", 20)
	g.AddEdge("Alice", "Acme", "works")

	payload := Sanitize(g)
	colors := make(map[string]string)
	for _, n := range payload.Nodes {
		colors[n.ID] = n.Color
	}
	assert.Equal(t, "#ff7f0e", colors["Alice"])
	assert.Equal(t, "#2ca02c", colors["Acme"])
	assert.Equal(t, "#1f77b4", colors["thing"])
	require.Len(t, payload.Edges, 1)
	assert.Equal(t, "#666666", payload.Edges[0].Color)
}
