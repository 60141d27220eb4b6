package depgraph

import (
	"fmt"
	"log/slog"
	"strings"
)

// New creates an empty graph.
func New[C Context](opts ...Option) *Graph[C] {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return &Graph[C]{logger: o.logger}
}

// AddVertex allocates a vertex resolved by r. A nil r gives the base
// behaviour, where Resolve always reports false.
func (g *Graph[C]) AddVertex(r Resolver[C], opts ...VertexOption) VertexID {
	var cfg vertexConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	id := VertexID(len(g.vertices))
	g.vertices = append(g.vertices, &vertex[C]{
		id:       cfg.id,
		resolver: r,
		outgoing: newEdgeSet(),
		incoming: newEdgeSet(),
	})
	g.logger.Debug("Vertex added.", "vertex", id, "id", cfg.id)
	return id
}

// ID returns the opaque identity assigned with WithID.
func (g *Graph[C]) ID(v VertexID) any {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.vertex(v).id
}

// Len returns the number of vertices.
func (g *Graph[C]) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.vertices)
}

// EdgeCount returns the number of currently connected edges.
func (g *Graph[C]) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := 0
	for _, e := range g.edges {
		if e.state == edgeConnected {
			n++
		}
	}
	return n
}

// Vertices returns every vertex handle in insertion order.
func (g *Graph[C]) Vertices() []VertexID {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]VertexID, len(g.vertices))
	for i := range g.vertices {
		out[i] = VertexID(i)
	}
	return out
}

// Describe renders a vertex and its dependencies for logs, e.g.
// "app -> [base, lib]".
func (g *Graph[C]) Describe(v VertexID) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	vx := g.vertex(v)
	deps := make([]string, 0, vx.outgoing.len())
	for _, e := range vx.outgoing.snapshot() {
		deps = append(deps, fmt.Sprint(g.label(g.edges[e].view.source)))
	}
	return fmt.Sprintf("%v -> [%s]", g.label(v), strings.Join(deps, ", "))
}

// label returns the identity of v, or its handle when it has none.
func (g *Graph[C]) label(v VertexID) any {
	if id := g.vertices[v].id; id != nil {
		return id
	}
	return fmt.Sprintf("#%d", v)
}

// lookup returns v and its label, taking the read lock itself.
func (g *Graph[C]) lookup(v VertexID) (*vertex[C], any) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.vertex(v), g.label(v)
}

// vertex looks up v. The caller holds the lock.
func (g *Graph[C]) vertex(v VertexID) *vertex[C] {
	if v < 0 || int(v) >= len(g.vertices) {
		panic(fmt.Sprintf("depgraph: unknown vertex %d", v))
	}
	return g.vertices[v]
}

// edge looks up e. The caller holds the lock.
func (g *Graph[C]) edge(e EdgeID) *edge[C] {
	if e < 0 || int(e) >= len(g.edges) {
		panic(fmt.Sprintf("depgraph: unknown edge %d", e))
	}
	return g.edges[e]
}
