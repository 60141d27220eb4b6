// Package app wires the manifest loader, the dag builder and the resolver
// into a single run, and renders the resolved values.
package app
