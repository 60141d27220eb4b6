// Package dag turns a config.Model into a resolvable depgraph.Graph.
//
// Every `vertex` block becomes one graph vertex whose identity is its name.
// Dependencies come from two places:
//
//   - explicit: the `depends_on` list;
//   - implicit: `vertex.<name>` references inside the `value` expression.
//
// A vertex resolves once the edges of all its dependencies have fired. It
// then evaluates its `value` expression with `vertex.<dep>.value` bound to
// each dependency's result and publishes its own result in the shared
// Context.
package dag
