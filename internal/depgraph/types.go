package depgraph

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrCycle is returned by graph-wide queries when the connected edges form a
// cycle.
var ErrCycle = errors.New("dependency cycle")

// Context is the constraint for the opaque value threaded through Resolve and
// Fire. The engine only uses it as a context.Context to find a logger; any
// other state belongs to the concrete type.
type Context interface {
	context.Context
}

// VertexID is the stable handle of a vertex inside its Graph.
type VertexID int

// EdgeID is the stable handle of an edge inside its Graph.
type EdgeID int

// Action is run with the shared context and the firing edge.
type Action[C Context] func(c C, e Edge) error

// Filter selects vertices in adjacency queries.
type Filter func(v VertexID) bool

// Resolver is implemented by concrete vertex kinds. Resolve reports whether
// the entity behind the vertex is now resolved. Implementations should be
// idempotent; the Graph never calls Resolve again once it returned true.
// Calls for one vertex are serialised, so a resolver must not resolve its
// own vertex.
type Resolver[C Context] interface {
	Resolve(c C) (bool, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc[C Context] func(c C) (bool, error)

// Resolve calls f(c).
func (f ResolverFunc[C]) Resolve(c C) (bool, error) {
	return f(c)
}

// Edge is an immutable view of an edge: its handle and fixed endpoints.
type Edge struct {
	id     EdgeID
	source VertexID
	sink   VertexID
}

// ID returns the edge handle.
func (e Edge) ID() EdgeID { return e.id }

// Source returns the dependency endpoint.
func (e Edge) Source() VertexID { return e.source }

// Sink returns the dependent endpoint.
func (e Edge) Sink() VertexID { return e.sink }

type edgeState int

const (
	edgeCreated edgeState = iota
	edgeConnected
	edgeRetired
)

type edge[C Context] struct {
	view   Edge
	action Action[C]
	state  edgeState
	// claimed is set once an UndependsOn call took the edge for removal.
	claimed bool
}

type vertex[C Context] struct {
	id       any
	resolver Resolver[C]
	resolved bool
	// resolveMu serialises Resolve calls on this vertex.
	resolveMu sync.Mutex
	// outgoing holds the edges this vertex declared; it is their sink.
	outgoing *edgeSet
	// incoming holds the edges received from dependents; it is their source.
	incoming *edgeSet
}

// Graph is the arena holding vertices and edges. The zero value is not
// usable; create graphs with New. All methods are safe for concurrent use,
// but actions and resolvers run without the internal lock held.
type Graph[C Context] struct {
	mu       sync.RWMutex
	vertices []*vertex[C]
	edges    []*edge[C]
	logger   *slog.Logger
}

// Option configures a Graph.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for wiring diagnostics. Without it the
// graph logs to the logger found in the context passed to Resolve and Fire,
// and discards wiring logs.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// VertexOption configures a vertex at construction.
type VertexOption func(*vertexConfig)

type vertexConfig struct {
	id any
}

// WithID assigns the opaque identity of a vertex.
func WithID(id any) VertexOption {
	return func(c *vertexConfig) {
		c.id = id
	}
}
