package depgraph

import "fmt"

// DetectCycles checks the connected edges for a cycle. The returned error
// wraps ErrCycle and names a vertex on the cycle.
func (g *Graph[C]) DetectCycles() error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	// permanent: fully visited and not on a cycle.
	// temporary: on the current DFS path.
	permanent := make([]bool, len(g.vertices))
	temporary := make([]bool, len(g.vertices))

	var visit func(v VertexID) error
	visit = func(v VertexID) error {
		if permanent[v] {
			return nil
		}
		if temporary[v] {
			return fmt.Errorf("%w involving vertex %v", ErrCycle, g.label(v))
		}

		temporary[v] = true
		for _, e := range g.vertices[v].incoming.snapshot() {
			if err := visit(g.edges[e].view.sink); err != nil {
				return err
			}
		}
		temporary[v] = false
		permanent[v] = true
		return nil
	}

	for v := range g.vertices {
		if err := visit(VertexID(v)); err != nil {
			return err
		}
	}
	return nil
}

// TopologicalOrder lists every vertex after all of its dependencies. Ties are
// broken by insertion order.
func (g *Graph[C]) TopologicalOrder() ([]VertexID, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	waiting := make([]int, len(g.vertices))
	var ready []VertexID
	for v, vx := range g.vertices {
		waiting[v] = vx.outgoing.len()
		if waiting[v] == 0 {
			ready = append(ready, VertexID(v))
		}
	}

	order := make([]VertexID, 0, len(g.vertices))
	for len(ready) > 0 {
		v := ready[0]
		ready = ready[1:]
		order = append(order, v)

		for _, e := range g.vertices[v].incoming.snapshot() {
			sink := g.edges[e].view.sink
			waiting[sink]--
			if waiting[sink] == 0 {
				ready = append(ready, sink)
			}
		}
	}

	if len(order) != len(g.vertices) {
		for v, n := range waiting {
			if n > 0 {
				return nil, fmt.Errorf("%w involving vertex %v", ErrCycle, g.label(VertexID(v)))
			}
		}
	}
	return order, nil
}
