package resolver

import (
	"fmt"
	"time"

	"github.com/specialistvlad/resolvegrid/internal/ctxlog"
	"github.com/specialistvlad/resolvegrid/internal/depgraph"
)

// Report summarises a run.
type Report struct {
	// Resolved lists vertices in the order they resolved during this run.
	Resolved []depgraph.VertexID
	// Unresolved lists vertices that were still unresolved when the run ended.
	Unresolved []depgraph.VertexID
	// Attempts counts Resolve calls.
	Attempts int
	Duration time.Duration
}

// Complete reports whether every vertex resolved.
func (r *Report) Complete() bool {
	return len(r.Unresolved) == 0
}

// Option configures a run.
type Option func(*settings)

type settings struct {
	cycleCheck bool
}

// SkipCycleCheck disables the cycle check done before resolution starts.
// Vertices on a cycle then simply end up unresolved.
func SkipCycleCheck() Option {
	return func(s *settings) {
		s.cycleCheck = false
	}
}

// Run resolves every vertex of g it can. The returned report is never nil;
// on error it describes the state when the run stopped.
func Run[C depgraph.Context](c C, g *depgraph.Graph[C], opts ...Option) (*Report, error) {
	s := settings{cycleCheck: true}
	for _, opt := range opts {
		opt(&s)
	}

	logger := ctxlog.FromContext(c)
	start := time.Now()
	report := &Report{}
	defer func() {
		report.Duration = time.Since(start)
	}()

	if s.cycleCheck {
		if err := g.DetectCycles(); err != nil {
			report.Unresolved = unresolved(g)
			return report, fmt.Errorf("validating dependency graph: %w", err)
		}
		logger.Debug("Resolver: cycle check passed.")
	}

	queue := g.Vertices()
	logger.Debug("Resolver: starting run.", "vertex_count", len(queue))

	for len(queue) > 0 {
		if err := c.Err(); err != nil {
			report.Unresolved = unresolved(g)
			return report, err
		}

		v := queue[0]
		queue = queue[1:]
		if g.IsResolved(v) {
			continue
		}

		report.Attempts++
		ok, err := g.Resolve(c, v)
		if err != nil {
			report.Unresolved = unresolved(g)
			return report, err
		}
		if !ok {
			logger.Debug("Resolver: vertex not ready.", "vertex", g.ID(v))
			continue
		}

		report.Resolved = append(report.Resolved, v)
		if err := g.FireResolved(c, v); err != nil {
			report.Unresolved = unresolved(g)
			return report, fmt.Errorf("propagating resolution of vertex %v: %w", g.ID(v), err)
		}

		dependents := g.AdjacencySet(v, func(d depgraph.VertexID) bool { return !g.IsResolved(d) })
		queue = append(queue, dependents...)
	}

	report.Unresolved = unresolved(g)
	logger.Info("Resolver: run finished.",
		"resolved", len(report.Resolved),
		"unresolved", len(report.Unresolved),
		"attempts", report.Attempts,
	)
	return report, nil
}

func unresolved[C depgraph.Context](g *depgraph.Graph[C]) []depgraph.VertexID {
	var out []depgraph.VertexID
	for _, v := range g.Vertices() {
		if !g.IsResolved(v) {
			out = append(out, v)
		}
	}
	return out
}
