package depgraph

import (
	"fmt"

	"github.com/specialistvlad/resolvegrid/internal/ctxlog"
)

// AddEdge connects e, which must sink to v. It panics, without touching any
// adjacency set, when the edge belongs to another sink.
func (g *Graph[C]) AddEdge(v VertexID, e EdgeID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.vertex(v)
	ed := g.edge(e)
	if ed.view.sink != v {
		panic(fmt.Sprintf("depgraph: edge %d must sink to vertex %d, not %d", e, v, ed.view.sink))
	}
	g.connectLocked(ed)
}

// DependsOn declares that v depends on source. Every call allocates and
// connects a new edge carrying action, so repeated calls create parallel
// edges that fire and disconnect independently.
func (g *Graph[C]) DependsOn(v, source VertexID, action Action[C]) EdgeID {
	if action == nil {
		panic("depgraph: edge action must not be nil")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	e := g.newEdgeLocked(source, v, action)
	g.connectLocked(g.edges[e])
	return e
}

// UndependsOn disconnects every edge v declared on source. Each callback runs
// on an edge right before it is disconnected. Concurrent calls never take the
// same edge. It returns the number of edges this call removed; zero is not an
// error.
func (g *Graph[C]) UndependsOn(v, source VertexID, onDisconnect ...func(Edge)) int {
	removed := 0
	for _, ed := range g.claimDeclared(v, source) {
		for _, fn := range onDisconnect {
			if fn != nil {
				fn(ed.view)
			}
		}
		if g.retire(ed) {
			removed++
		}
	}
	return removed
}

// claimDeclared marks the unclaimed edges v declared on source as taken and
// returns them.
func (g *Graph[C]) claimDeclared(v, source VertexID) []*edge[C] {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.vertex(source)
	var claimed []*edge[C]
	for _, e := range g.vertex(v).outgoing.snapshot() {
		if ed := g.edges[e]; ed.view.source == source && !ed.claimed {
			ed.claimed = true
			claimed = append(claimed, ed)
		}
	}
	return claimed
}

// retire disconnects ed and reports whether it was still connected.
func (g *Graph[C]) retire(ed *edge[C]) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	connected := ed.state == edgeConnected
	g.disconnectLocked(ed)
	return connected
}

// Disconnect removes every edge touching v, leaving it isolated.
func (g *Graph[C]) Disconnect(v VertexID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	vx := g.vertex(v)
	for _, e := range vx.incoming.snapshot() {
		g.disconnectLocked(g.edges[e])
	}
	for _, e := range vx.outgoing.snapshot() {
		g.disconnectLocked(g.edges[e])
	}
}

// AdjacencySet returns the dependents of v: the sinks of its incoming edges,
// in edge insertion order, keeping only vertices accepted by every filter.
func (g *Graph[C]) AdjacencySet(v VertexID, filters ...Filter) []VertexID {
	return g.neighbours(v, filters, func(vx *vertex[C]) *edgeSet { return vx.incoming }, Edge.Sink)
}

// DependencySet returns the dependencies of v: the sources of its outgoing
// edges, filtered like AdjacencySet.
func (g *Graph[C]) DependencySet(v VertexID, filters ...Filter) []VertexID {
	return g.neighbours(v, filters, func(vx *vertex[C]) *edgeSet { return vx.outgoing }, Edge.Source)
}

func (g *Graph[C]) neighbours(v VertexID, filters []Filter, set func(*vertex[C]) *edgeSet, end func(Edge) VertexID) []VertexID {
	for _, f := range filters {
		if f == nil {
			panic("depgraph: filter must not be nil")
		}
	}

	candidates := func() []VertexID {
		g.mu.RLock()
		defer g.mu.RUnlock()

		snapshot := set(g.vertex(v)).snapshot()
		out := make([]VertexID, len(snapshot))
		for i, e := range snapshot {
			out[i] = end(g.edges[e].view)
		}
		return out
	}()

	out := candidates[:0]
next:
	for _, n := range candidates {
		for _, f := range filters {
			if !f(n) {
				continue next
			}
		}
		out = append(out, n)
	}
	return out
}

// Resolve runs the resolver of v. Once a vertex resolved, later calls report
// true without running the resolver again. Concurrent calls for the same
// vertex wait for each other. A vertex without a resolver never resolves.
func (g *Graph[C]) Resolve(c C, v VertexID) (bool, error) {
	vx, label := g.lookup(v)
	vx.resolveMu.Lock()
	defer vx.resolveMu.Unlock()

	g.mu.RLock()
	resolved, r := vx.resolved, vx.resolver
	g.mu.RUnlock()

	if resolved {
		return true, nil
	}
	if r == nil {
		return false, nil
	}

	ok, err := r.Resolve(c)
	if err != nil {
		return false, fmt.Errorf("resolving vertex %v: %w", label, err)
	}
	if !ok {
		return false, nil
	}

	g.mu.Lock()
	vx.resolved = true
	g.mu.Unlock()
	ctxlog.FromContext(c).Debug("Vertex resolved.", "vertex", label)
	return true, nil
}

// IsResolved reports whether Resolve succeeded for v.
func (g *Graph[C]) IsResolved(v VertexID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.vertex(v).resolved
}

// FireResolved fires every edge whose source is v, so each dependent's action
// runs once with c. Edges disconnected by an earlier action in the same pass
// are skipped. The first action error stops the pass and is returned; edges
// already fired stay fired.
func (g *Graph[C]) FireResolved(c C, v VertexID) error {
	vx, _ := g.lookup(v)
	g.mu.RLock()
	pending := vx.incoming.snapshot()
	g.mu.RUnlock()

	for _, e := range pending {
		if !g.IsConnected(e) {
			continue
		}
		if err := g.Fire(c, e); err != nil {
			return err
		}
	}
	return nil
}
