package dag

import (
	"context"
	"fmt"

	"github.com/specialistvlad/resolvegrid/internal/ctxlog"
	"github.com/specialistvlad/resolvegrid/internal/hclutil"
)

// linkNodes performs the second pass, establishing dependency links. Explicit
// dependencies are linked before implicit ones; each pair is linked once.
func linkNodes(ctx context.Context, graph *Graph) error {
	for _, node := range graph.order {
		if err := linkExplicitDeps(ctx, graph, node); err != nil {
			return err
		}
		if err := linkImplicitDeps(ctx, graph, node); err != nil {
			return err
		}
	}
	return nil
}

// linkExplicitDeps resolves dependencies from the `depends_on` list.
func linkExplicitDeps(ctx context.Context, graph *Graph, node *Node) error {
	for _, name := range node.Config.DependsOn {
		dep, ok := graph.nodes[name]
		if !ok {
			return fmt.Errorf("vertex '%s' depends on non-existent vertex '%s'", node.Name, name)
		}
		if err := link(ctx, graph, node, dep, "explicit"); err != nil {
			return err
		}
	}
	return nil
}

// linkImplicitDeps scans the value expression for `vertex.<name>` references.
func linkImplicitDeps(ctx context.Context, graph *Graph, node *Node) error {
	if node.Config.Value == nil {
		return nil
	}
	for _, traversal := range node.Config.Value.Variables() {
		name, ok := hclutil.VertexReference(traversal)
		if !ok {
			continue
		}
		dep, ok := graph.nodes[name]
		if !ok {
			return fmt.Errorf("vertex '%s' references non-existent vertex '%s' in %s", node.Name, name, hclutil.TraversalKey(traversal))
		}
		if err := link(ctx, graph, node, dep, "implicit"); err != nil {
			return err
		}
	}
	return nil
}

// link makes node depend on dep unless they are already linked. Self edges
// are inert in the graph, so a vertex depending on itself is rejected here.
func link(ctx context.Context, graph *Graph, node, dep *Node, kind string) error {
	if node == dep {
		return fmt.Errorf("vertex '%s' cannot depend on itself", node.Name)
	}
	for _, existing := range node.deps {
		if existing == dep.Name {
			return nil
		}
	}

	ctxlog.FromContext(ctx).Debug("Linking dependency.", "kind", kind, "from", node.Name, "to", dep.Name)
	node.deps = append(node.deps, dep.Name)
	node.pending++
	graph.DependsOn(node.Vertex, dep.Vertex, node.dependencyResolved)
	return nil
}
