package dag

import (
	"context"
	"fmt"

	"github.com/specialistvlad/resolvegrid/internal/config"
	"github.com/specialistvlad/resolvegrid/internal/ctxlog"
	"github.com/specialistvlad/resolvegrid/internal/depgraph"
)

// Build constructs a complete, validated dependency graph from a config model.
func Build(ctx context.Context, model *config.Model) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.")

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest model: %w", err)
	}

	graph := &Graph{
		Graph: depgraph.New[*Context](depgraph.WithLogger(logger)),
		nodes: make(map[string]*Node, len(model.Vertices)),
	}

	// First pass: create all nodes.
	createNodes(ctx, graph, model)
	logger.Debug("Build: Node creation complete.", "node_count", len(graph.order))

	// Second pass: link dependencies.
	if err := linkNodes(ctx, graph); err != nil {
		return nil, err
	}
	logger.Debug("Build: Node linking complete.", "edge_count", graph.EdgeCount())

	if err := graph.DetectCycles(); err != nil {
		return nil, fmt.Errorf("error validating dependency graph: %w", err)
	}
	logger.Debug("Build: Cycle detection passed.")

	logger.Debug("Build: Graph construction successful.")
	return graph, nil
}

// createNodes performs the first pass of graph creation.
func createNodes(ctx context.Context, graph *Graph, model *config.Model) {
	logger := ctxlog.FromContext(ctx)
	for _, v := range model.Vertices {
		logger.Debug("Build: Creating node.", "vertex", v.Name, "description", v.Description, "defined_at", v.DefRange.String())
		n := &Node{Name: v.Name, Config: v}
		n.Vertex = graph.AddVertex(n, depgraph.WithID(v.Name))
		graph.nodes[v.Name] = n
		graph.order = append(graph.order, n)
	}
}
