package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/resolvegrid/internal/depgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildContext accumulates the order in which targets were built.
type buildContext struct {
	context.Context
	built []string
}

// target is a vertex kind that resolves once all of its dependencies fired.
type target struct {
	name    string
	pending int
	fail    error
}

func (t *target) Resolve(c *buildContext) (bool, error) {
	if t.fail != nil {
		return false, t.fail
	}
	if t.pending > 0 {
		return false, nil
	}
	c.built = append(c.built, t.name)
	return true, nil
}

type buildGraph struct {
	g       *depgraph.Graph[*buildContext]
	ids     map[string]depgraph.VertexID
	targets map[string]*target
}

func newBuildGraph(names ...string) *buildGraph {
	b := &buildGraph{
		g:       depgraph.New[*buildContext](),
		ids:     map[string]depgraph.VertexID{},
		targets: map[string]*target{},
	}
	for _, name := range names {
		t := &target{name: name}
		b.targets[name] = t
		b.ids[name] = b.g.AddVertex(t, depgraph.WithID(name))
	}
	return b
}

// dependsOn wires dependent on dependency with an action that counts down.
func (b *buildGraph) dependsOn(dependent, dependency string) {
	t := b.targets[dependent]
	t.pending++
	b.g.DependsOn(b.ids[dependent], b.ids[dependency], func(*buildContext, depgraph.Edge) error {
		t.pending--
		return nil
	})
}

func TestRun_ResolvesInDependencyOrder(t *testing.T) {
	b := newBuildGraph("app", "lib", "base", "tool")
	b.dependsOn("app", "lib")
	b.dependsOn("app", "base")
	b.dependsOn("lib", "base")
	c := &buildContext{Context: context.Background()}

	report, err := Run(c, b.g)

	require.NoError(t, err)
	assert.True(t, report.Complete())
	assert.Equal(t, []string{"base", "tool", "lib", "app"}, c.built)
	assert.Equal(t, []depgraph.VertexID{b.ids["base"], b.ids["tool"], b.ids["lib"], b.ids["app"]}, report.Resolved)
	assert.Empty(t, report.Unresolved)
}

func TestRun_ReportsStuckVertices(t *testing.T) {
	b := newBuildGraph("a", "b")
	// "b" has an extra requirement no edge will ever satisfy.
	b.targets["b"].pending = 1
	b.dependsOn("a", "b")
	lonely := b.g.AddVertex(nil, depgraph.WithID("base-kind"))
	c := &buildContext{Context: context.Background()}

	report, err := Run(c, b.g)

	require.NoError(t, err)
	assert.False(t, report.Complete())
	assert.ElementsMatch(t, []depgraph.VertexID{b.ids["a"], b.ids["b"], lonely}, report.Unresolved)
	assert.Empty(t, c.built)
}

func TestRun_Cycles(t *testing.T) {
	t.Run("rejected by default", func(t *testing.T) {
		b := newBuildGraph("a", "b")
		b.dependsOn("a", "b")
		b.dependsOn("b", "a")

		report, err := Run(&buildContext{Context: context.Background()}, b.g)

		assert.ErrorIs(t, err, depgraph.ErrCycle)
		assert.Len(t, report.Unresolved, 2)
	})

	t.Run("left unresolved when the check is skipped", func(t *testing.T) {
		b := newBuildGraph("a", "b", "c")
		b.dependsOn("a", "b")
		b.dependsOn("b", "a")
		c := &buildContext{Context: context.Background()}

		report, err := Run(c, b.g, SkipCycleCheck())

		require.NoError(t, err)
		assert.Equal(t, []string{"c"}, c.built)
		assert.ElementsMatch(t, []depgraph.VertexID{b.ids["a"], b.ids["b"]}, report.Unresolved)
	})
}

func TestRun_Errors(t *testing.T) {
	t.Run("resolver error stops the run", func(t *testing.T) {
		b := newBuildGraph("base", "app")
		b.dependsOn("app", "base")
		boom := errors.New("compile failed")
		b.targets["app"].fail = boom
		c := &buildContext{Context: context.Background()}

		report, err := Run(c, b.g)

		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "app")
		assert.Equal(t, []depgraph.VertexID{b.ids["base"]}, report.Resolved)
		assert.Equal(t, []depgraph.VertexID{b.ids["app"]}, report.Unresolved)
	})

	t.Run("action error stops the run", func(t *testing.T) {
		b := newBuildGraph("base", "app")
		boom := errors.New("notify failed")
		b.g.DependsOn(b.ids["app"], b.ids["base"], func(*buildContext, depgraph.Edge) error { return boom })
		c := &buildContext{Context: context.Background()}

		_, err := Run(c, b.g)

		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "base")
	})

	t.Run("cancelled context", func(t *testing.T) {
		b := newBuildGraph("a")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		report, err := Run(&buildContext{Context: ctx}, b.g)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, []depgraph.VertexID{b.ids["a"]}, report.Unresolved)
	})
}
