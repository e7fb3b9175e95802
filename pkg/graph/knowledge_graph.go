package graph

import (
	"github.com/sirupsen/logrus"
)

// DefaultNodeSize is the render size attached to every node at build time.
const DefaultNodeSize = 20

// Default caps on graph growth; nodes and edges past the cap are dropped.
const (
	DefaultMaxNodes = 1000
	DefaultMaxEdges = 5000
)

// Node is one knowledge-graph node, keyed by the exact entity surface text.
// Category is "" for nodes created from relationship endpoints that were
// never extracted as entities.
type Node struct {
	Text     string `json:"id"`
	Category string `json:"category,omitempty"`
	Size     int    `json:"size"`
}

// Edge is an undirected edge between two node keys, labeled with the
// predicate of the relationship that produced it.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

type edgeKey struct{ a, b string }

func keyFor(u, v string) edgeKey {
	if u > v {
		u, v = v, u
	}
	return edgeKey{u, v}
}

// KnowledgeGraph is an undirected simple graph of entities keyed by surface
// text (case-sensitive, exact match; no alias merging). Node and edge
// iteration follows insertion order, so identical inputs always produce
// structurally identical graphs.
type KnowledgeGraph struct {
	nodes     map[string]*Node
	nodeOrder []string
	edges     map[edgeKey]*Edge
	edgeOrder []edgeKey

	maxNodes int
	maxEdges int
	logger   *logrus.Logger
}

// NewKnowledgeGraph creates an empty graph with the default growth caps.
func NewKnowledgeGraph() *KnowledgeGraph {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &KnowledgeGraph{
		nodes:    make(map[string]*Node),
		edges:    make(map[edgeKey]*Edge),
		maxNodes: DefaultMaxNodes,
		maxEdges: DefaultMaxEdges,
		logger:   logger,
	}
}

// SetLimits overrides the node/edge caps. Non-positive values keep the
// current cap.
func (g *KnowledgeGraph) SetLimits(maxNodes, maxEdges int) {
	if maxNodes > 0 {
		g.maxNodes = maxNodes
	}
	if maxEdges > 0 {
		g.maxEdges = maxEdges
	}
}

// AddNode inserts a node keyed by text. When the same surface text arrives
// again the first-seen category and size win; conflicting later categories
// are ignored (first-wins policy). Returns false when the node cap dropped
// a new node.
func (g *KnowledgeGraph) AddNode(text, category string, size int) bool {
	if text == "" {
		return false
	}
	if _, exists := g.nodes[text]; exists {
		return true
	}
	if len(g.nodeOrder) >= g.maxNodes {
		g.logger.WithField("node", text).Warn("node cap reached, dropping node")
		return false
	}
	if size <= 0 {
		size = DefaultNodeSize
	}
	g.nodes[text] = &Node{Text: text, Category: category, Size: size}
	g.nodeOrder = append(g.nodeOrder, text)
	return true
}

// AddEdge inserts or updates the undirected edge between u and v, creating
// endpoint nodes on demand. When the same unordered pair recurs the label
// is overwritten by the latest call (last-write-wins; labels are not
// aggregated). Returns false when a cap dropped the edge or an endpoint.
func (g *KnowledgeGraph) AddEdge(u, v, label string) bool {
	if u == "" || v == "" {
		return false
	}
	if !g.AddNode(u, "", DefaultNodeSize) || !g.AddNode(v, "", DefaultNodeSize) {
		return false
	}

	key := keyFor(u, v)
	if existing, ok := g.edges[key]; ok {
		existing.Label = label
		return true
	}
	if len(g.edgeOrder) >= g.maxEdges {
		g.logger.WithFields(logrus.Fields{"source": u, "target": v}).
			Warn("edge cap reached, dropping edge")
		return false
	}
	g.edges[key] = &Edge{Source: u, Target: v, Label: label}
	g.edgeOrder = append(g.edgeOrder, key)
	return true
}

// Nodes returns the nodes in insertion order.
func (g *KnowledgeGraph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodeOrder))
	for _, key := range g.nodeOrder {
		out = append(out, *g.nodes[key])
	}
	return out
}

// Edges returns the edges in insertion order with their current labels.
func (g *KnowledgeGraph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edgeOrder))
	for _, key := range g.edgeOrder {
		out = append(out, *g.edges[key])
	}
	return out
}

// NodeCount reports the number of nodes.
func (g *KnowledgeGraph) NodeCount() int { return len(g.nodeOrder) }

// EdgeCount reports the number of distinct undirected edges.
func (g *KnowledgeGraph) EdgeCount() int { return len(g.edgeOrder) }

// HasNode reports whether a node with the exact surface text exists.
func (g *KnowledgeGraph) HasNode(text string) bool {
	_, ok := g.nodes[text]
	return ok
}

// NodeCategory returns the category recorded for a node key, "" when the
// node is unknown or uncategorized.
func (g *KnowledgeGraph) NodeCategory(text string) string {
	if n, ok := g.nodes[text]; ok {
		return n.Category
	}
	return ""
}

// Degree counts edge endpoints incident to the node; a self-loop counts
// twice, matching the usual graph-theoretic convention.
func (g *KnowledgeGraph) Degree(text string) int {
	d := 0
	for _, key := range g.edgeOrder {
		e := g.edges[key]
		if e.Source == text {
			d++
		}
		if e.Target == text {
			d++
		}
	}
	return d
}

// DegreeDistribution maps degree value to the number of nodes with that
// degree.
func (g *KnowledgeGraph) DegreeDistribution() map[int]int {
	dist := make(map[int]int)
	for _, key := range g.nodeOrder {
		dist[g.Degree(key)]++
	}
	return dist
}

// CategoryCounts maps entity category to the number of nodes carrying it.
// Uncategorized nodes are skipped.
func (g *KnowledgeGraph) CategoryCounts() map[string]int {
	counts := make(map[string]int)
	for _, key := range g.nodeOrder {
		if cat := g.nodes[key].Category; cat != "" {
			counts[cat]++
		}
	}
	return counts
}

// Density is 2E / N(N-1), zero for graphs with fewer than two nodes.
func (g *KnowledgeGraph) Density() float64 {
	n := len(g.nodeOrder)
	if n < 2 {
		return 0
	}
	return 2 * float64(len(g.edgeOrder)) / (float64(n) * float64(n-1))
}

// Builder folds entity spans and relationship triples into a fresh
// KnowledgeGraph. Every Build starts from an empty graph; the builder holds
// no accumulated state across calls.
type Builder struct {
	maxNodes int
	maxEdges int
	logger   *logrus.Logger
}

// NewBuilder creates a Builder with the default caps.
func NewBuilder() *Builder {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Builder{
		maxNodes: DefaultMaxNodes,
		maxEdges: DefaultMaxEdges,
		logger:   logger,
	}
}

// WithLimits overrides the node/edge caps applied to built graphs.
func (b *Builder) WithLimits(maxNodes, maxEdges int) *Builder {
	if maxNodes > 0 {
		b.maxNodes = maxNodes
	}
	if maxEdges > 0 {
		b.maxEdges = maxEdges
	}
	return b
}

// Build creates one node per distinct entity surface text (first-seen
// category wins) and one undirected edge per triple, creating endpoint
// nodes on demand for subjects/objects that were never extracted as
// entities. Recurring node pairs overwrite the edge label (last-write-wins).
func (b *Builder) Build(spans []EntitySpan, triples []Triple) *KnowledgeGraph {
	g := NewKnowledgeGraph()
	g.SetLimits(b.maxNodes, b.maxEdges)

	for _, span := range spans {
		g.AddNode(span.Text, span.Label, DefaultNodeSize)
	}
	for _, t := range triples {
		g.AddEdge(t.Subject, t.Object, t.Predicate)
	}

	b.logger.WithFields(logrus.Fields{
		"nodes": g.NodeCount(),
		"edges": g.EdgeCount(),
	}).Debug("graph built")
	return g
}
