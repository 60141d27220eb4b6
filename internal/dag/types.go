package dag

import (
	"context"

	"github.com/specialistvlad/resolvegrid/internal/config"
	"github.com/specialistvlad/resolvegrid/internal/depgraph"
	"github.com/zclconf/go-cty/cty"
)

// Context is threaded through resolution and edge firing. Values collects
// the result of every resolved vertex, keyed by vertex name.
type Context struct {
	context.Context
	Values map[string]cty.Value
}

// NewContext wraps ctx with an empty value table.
func NewContext(ctx context.Context) *Context {
	return &Context{
		Context: ctx,
		Values:  make(map[string]cty.Value),
	}
}

// Graph is the dependency graph built from a manifest model.
type Graph struct {
	*depgraph.Graph[*Context]

	// nodes holds every node keyed by vertex name.
	nodes map[string]*Node
	// order keeps the declaration order of the model.
	order []*Node
}

// Node is the vertex kind backing a manifest `vertex` block.
type Node struct {
	// Name is the unique vertex name from the manifest.
	Name string
	// Config is the manifest definition.
	Config *config.Vertex
	// Vertex is the handle of this node in the graph.
	Vertex depgraph.VertexID

	// deps lists dependency names in link order.
	deps []string
	// pending counts dependency edges that have not fired yet.
	pending int
}

// Node returns the node with the given name.
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Nodes returns all nodes in declaration order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.order))
	copy(out, g.order)
	return out
}

// NodeOf returns the node behind a vertex handle.
func (g *Graph) NodeOf(v depgraph.VertexID) *Node {
	return g.nodes[g.ID(v).(string)]
}

// Dependencies returns the names this node depends on.
func (n *Node) Dependencies() []string {
	out := make([]string, len(n.deps))
	copy(out, n.deps)
	return out
}
