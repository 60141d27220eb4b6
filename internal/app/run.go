package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/resolvegrid/internal/ctxlog"
	"github.com/specialistvlad/resolvegrid/internal/dag"
	"github.com/specialistvlad/resolvegrid/internal/resolver"
)

// Run loads the manifests, resolves every vertex and renders the values.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, err := a.loader.Load(ctx, a.config.ManifestPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.logger.Debug("Manifests loaded.", "vertex_count", len(model.Vertices))

	graph, err := dag.Build(ctx, model)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}
	a.logger.Debug("Dependency graph built.", "vertex_count", graph.Len(), "edge_count", graph.EdgeCount())

	c := dag.NewContext(ctx)
	report, err := resolver.Run(c, graph.Graph)
	if err != nil {
		return fmt.Errorf("resolution failed: %w", err)
	}
	if !report.Complete() {
		names := make([]string, len(report.Unresolved))
		for i, v := range report.Unresolved {
			names[i] = graph.NodeOf(v).Name
		}
		return fmt.Errorf("resolution incomplete: %d vertices unresolved: %s", len(names), strings.Join(names, ", "))
	}
	a.logger.Info("Resolution finished.", "resolved", len(report.Resolved), "duration", report.Duration)

	if err := render(a.outW, a.config.OutputFormat, graph, report, c); err != nil {
		return fmt.Errorf("failed to render results: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
