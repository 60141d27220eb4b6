// Package resolver drives resolution over a depgraph.Graph.
//
// # How It Works
//
//  1. Check the graph for cycles (unless disabled).
//  2. Seed a worklist with every vertex in insertion order.
//  3. Pop a vertex and call Resolve on it.
//  4. On success call FireResolved once, then queue its unresolved
//     dependents, since their actions may have made them ready.
//  5. Stop when the worklist is empty; whatever is still unresolved is
//     reported.
//
// The run is synchronous and single-threaded, as the graph engine expects.
// It checks the context for cancellation between vertices.
package resolver
