package hclutil

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// VertexRoot is the root name of references to other vertices, as in
// `vertex.base.value`.
const VertexRoot = "vertex"

// TraversalKey generates a stable, canonical string representation for an hcl.Traversal,
// suitable for use as a map key.
func TraversalKey(t hcl.Traversal) string {
	// e.g., vertex.base.value
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

// VertexReference extracts the vertex name from a traversal of the form
// `vertex.<name>`, optionally followed by further steps.
func VertexReference(t hcl.Traversal) (string, bool) {
	if len(t) < 2 || t.RootName() != VertexRoot {
		return "", false
	}
	nameAttr, ok := t[1].(hcl.TraverseAttr)
	if !ok {
		return "", false
	}
	return nameAttr.Name, true
}
