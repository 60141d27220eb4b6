// Package depgraph is a generic dependency-graph engine. It manages a mutable
// graph of resolvable vertices joined by directed "depends-on" edges, where
// each edge carries an action that runs when the edge fires.
//
// # Arena Layout
//
// Vertices and edges live in an arena owned by a Graph and are addressed by
// stable integer handles (VertexID, EdgeID). Adjacency sets hold edge
// handles, never pointers, so there is no cyclic ownership between vertices
// and edges and connect/disconnect stay O(1).
//
// # Direction
//
// For an edge created by DependsOn(v, source, action):
//
//	source ──edge──▶ v
//	(dependency)      (dependent)
//
//   - the edge is in v's outgoing set (v declared it); DependencySet(v)
//     reports source.
//   - the edge is in source's incoming set; AdjacencySet(source) reports v.
//
// FireResolved(c, source) fires the incoming set of source, so every
// dependent's action runs once the dependency has resolved. A self edge sits
// in both sets of its vertex and fires like any other.
//
// # Failure Model
//
// Wiring mistakes (unknown handles, nil actions, an edge that does not sink
// to the receiving vertex, reconnecting a retired edge) are programmer errors
// and panic. Errors returned by actions and resolvers propagate unchanged to
// the caller; the engine neither retries nor rolls back.
package depgraph
