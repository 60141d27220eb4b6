package depgraph

import (
	"fmt"

	"github.com/specialistvlad/resolvegrid/internal/ctxlog"
)

// NewEdge allocates an unconnected edge from source (the dependency) to sink
// (the dependent). It panics if either vertex is unknown or action is nil.
func (g *Graph[C]) NewEdge(source, sink VertexID, action Action[C]) EdgeID {
	if action == nil {
		panic("depgraph: edge action must not be nil")
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.newEdgeLocked(source, sink, action)
}

func (g *Graph[C]) newEdgeLocked(source, sink VertexID, action Action[C]) EdgeID {
	g.vertex(source)
	g.vertex(sink)

	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, &edge[C]{
		view:   Edge{id: id, source: source, sink: sink},
		action: action,
	})
	return id
}

// Edge returns the immutable view of e.
func (g *Graph[C]) Edge(e EdgeID) Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edge(e).view
}

// IsConnected reports whether e is registered in both endpoints.
func (g *Graph[C]) IsConnected(e EdgeID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edge(e).state == edgeConnected
}

// ConnectEndpoints registers e in the sink's outgoing set and the source's
// incoming set. A self edge lands in both sets of the same vertex. Calling it
// on a connected edge changes nothing. It panics if e was disconnected before.
func (g *Graph[C]) ConnectEndpoints(e EdgeID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.connectLocked(g.edge(e))
}

func (g *Graph[C]) connectLocked(ed *edge[C]) {
	switch ed.state {
	case edgeConnected:
		return
	case edgeRetired:
		panic(fmt.Sprintf("depgraph: edge %d was disconnected and cannot be reconnected", ed.view.id))
	}

	g.vertices[ed.view.sink].outgoing.add(ed.view.id)
	g.vertices[ed.view.source].incoming.add(ed.view.id)
	ed.state = edgeConnected
	g.logger.Debug("Edge connected.", "edge", ed.view.id, "source", ed.view.source, "sink", ed.view.sink)
}

// DisconnectEndpoints removes e from both endpoints. It is a no-op for an
// edge that is not connected. Once disconnected an edge is retired.
func (g *Graph[C]) DisconnectEndpoints(e EdgeID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.disconnectLocked(g.edge(e))
}

func (g *Graph[C]) disconnectLocked(ed *edge[C]) {
	if ed.state != edgeConnected {
		return
	}

	g.vertices[ed.view.sink].outgoing.remove(ed.view.id)
	g.vertices[ed.view.source].incoming.remove(ed.view.id)
	ed.state = edgeRetired
	g.logger.Debug("Edge disconnected.", "edge", ed.view.id, "source", ed.view.source, "sink", ed.view.sink)
}

// Fire runs the action of e with c. Connection state is unchanged and the
// action's error is returned as is. Callers must not fire disconnected edges.
func (g *Graph[C]) Fire(c C, e EdgeID) error {
	view, action := func() (Edge, Action[C]) {
		g.mu.RLock()
		defer g.mu.RUnlock()
		ed := g.edge(e)
		return ed.view, ed.action
	}()

	ctxlog.FromContext(c).Debug("Firing edge.", "edge", view.id, "source", view.source, "sink", view.sink)
	return action(c, view)
}
