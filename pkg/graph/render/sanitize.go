// Package render projects a knowledge graph into a payload safe for
// visualization surfaces with stricter identifier and label constraints
// than the domain model. The payload is a presentation artifact: it is
// regenerated on every render request and never read back.
package render

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/athapong/pdfkg/pkg/graph"
)

const (
	maxIDLength    = 60
	maxLabelLength = 30
	placeholderID  = "unknown"

	edgeColor    = "#666666"
	defaultColor = "#1f77b4"
)

var categoryColors = map[string]string{
	graph.CategoryPerson:    "#ff7f0e",
	graph.CategoryOrg:       "#2ca02c",
	graph.CategoryGPE:       "#d62728",
	graph.CategoryProduct:   "#9467bd",
	graph.CategoryEvent:     "#8c564b",
	graph.CategoryWorkOfArt: "#e377c2",
}

// Node is a sanitized graph node: a unique identifier, a display label
// truncated for readability, and a category color.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Size  int    `json:"size"`
	Color string `json:"color"`
}

// Edge connects two sanitized node identifiers. Self-loops and edges whose
// endpoints were dropped never appear.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
	Color  string `json:"color"`
}

// Payload is the sanitized projection of a knowledge graph.
type Payload struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Sanitize produces a render payload with pairwise-distinct node
// identifiers, no self-loops, and no edges referencing missing nodes. It
// never fails; malformed content degrades by being dropped.
func Sanitize(g *graph.KnowledgeGraph) *Payload {
	payload := &Payload{Nodes: make([]Node, 0), Edges: make([]Edge, 0)}
	if g == nil || g.NodeCount() == 0 {
		return payload
	}

	safeIDs := make(map[string]string, g.NodeCount())
	taken := make(map[string]bool, g.NodeCount())

	for _, node := range g.Nodes() {
		id := safeID(node.Text)
		for salt := len(taken); taken[id]; salt++ {
			id = fmt.Sprintf("%s_%04x", safeID(node.Text), collisionHash(id, salt))
		}
		taken[id] = true
		safeIDs[node.Text] = id

		payload.Nodes = append(payload.Nodes, Node{
			ID:    id,
			Label: safeLabel(node.Text),
			Size:  node.Size,
			Color: nodeColor(node.Category),
		})
	}

	for _, edge := range g.Edges() {
		su, okU := safeIDs[edge.Source]
		sv, okV := safeIDs[edge.Target]
		if !okU || !okV || su == sv {
			continue
		}
		payload.Edges = append(payload.Edges, Edge{
			Source: su,
			Target: sv,
			Label:  safeLabel(edge.Label),
			Color:  edgeColor,
		})
	}

	return payload
}

func safeID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return placeholderID
	}
	return truncate(s, maxIDLength)
}

func safeLabel(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= maxLabelLength {
		return s
	}
	return string(runes[:maxLabelLength-1]) + "…"
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// collisionHash disambiguates a colliding identifier deterministically from
// the identifier and the number of identifiers assigned so far.
func collisionHash(id string, assigned int) uint32 {
	h := fnv.New32a()
	h.Write([]byte(id))
	fmt.Fprintf(h, "#%d", assigned)
	return h.Sum32() & 0xffff
}

func nodeColor(category string) string {
	if color, ok := categoryColors[category]; ok {
		return color
	}
	return defaultColor
}
