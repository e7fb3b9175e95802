package visualizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athapong/pdfkg/pkg/graph/render"
)

func TestVisualizeWritesHTML(t *testing.T) {
	payload := &render.Payload{
		Nodes: []render.Node{
			{ID: "Alice", Label: "Alice", Size: 20, Color: "#ff7f0e"},
			{ID: "Bob", Label: "Bob", Size: 20, Color: "#ff7f0e"},
		},
		Edges: []render.Edge{
			{Source: "Alice", Target: "Bob", Label: "met", Color: "#666666"},
		},
	}

	out := filepath.Join(t.TempDir(), "viz", "graph.html")
	viz := NewD3Visualizer(out)
	require.NoError(t, viz.Visualize(payload))

	html, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(html), `"id":"Alice"`)
	assert.Contains(t, string(html), "Nodes: 2, Edges: 1")
}
