package depgraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// firing records a single action invocation.
type firing struct {
	label string
	ctx   *testContext
	edge  Edge
}

// testContext is the context type threaded through the tests.
type testContext struct {
	context.Context
	fired []firing
}

func newTestContext() *testContext {
	return &testContext{Context: context.Background()}
}

// record returns an action that appends a firing to the context.
func record(label string) Action[*testContext] {
	return func(c *testContext, e Edge) error {
		c.fired = append(c.fired, firing{label: label, ctx: c, edge: e})
		return nil
	}
}

func noop(*testContext, Edge) error { return nil }

// newTestGraph creates a graph with one vertex per name, in order.
func newTestGraph(names ...string) (*Graph[*testContext], map[string]VertexID) {
	g := New[*testContext]()
	ids := make(map[string]VertexID, len(names))
	for _, name := range names {
		ids[name] = g.AddVertex(nil, WithID(name))
	}
	return g, ids
}

// requireConsistent checks that every edge sits in exactly two adjacency sets
// (the matching ones) or in none.
func requireConsistent(t *testing.T, g *Graph[*testContext]) {
	t.Helper()
	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, ed := range g.edges {
		inSink := g.vertices[ed.view.sink].outgoing.has(ed.view.id)
		inSource := g.vertices[ed.view.source].incoming.has(ed.view.id)
		require.Equal(t, inSink, inSource, "edge %d is registered on one side only", ed.view.id)
		require.Equal(t, ed.state == edgeConnected, inSink, "edge %d state disagrees with its registration", ed.view.id)

		for v, vx := range g.vertices {
			if VertexID(v) != ed.view.sink {
				require.False(t, vx.outgoing.has(ed.view.id), "edge %d in outgoing set of non-sink %d", ed.view.id, v)
			}
			if VertexID(v) != ed.view.source {
				require.False(t, vx.incoming.has(ed.view.id), "edge %d in incoming set of non-source %d", ed.view.id, v)
			}
		}
	}
}
