package config

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// ErrNoVertices is returned by Validate for a manifest without vertices.
var ErrNoVertices = errors.New("manifest defines no vertices")

// Model is the unified representation of every loaded manifest.
type Model struct {
	Vertices []*Vertex
}

// Vertex is the format-agnostic representation of a `vertex` block.
type Vertex struct {
	Name        string
	Description string
	// DependsOn lists explicit dependencies by vertex name.
	DependsOn []string
	// Value is evaluated once every dependency has resolved. It is never
	// nil; an absent attribute evaluates to null.
	Value    hcl.Expression
	DefRange hcl.Range
}

// Validate checks the invariants the dag builder relies on: at least one
// vertex and unique names.
func (m *Model) Validate() error {
	if len(m.Vertices) == 0 {
		return ErrNoVertices
	}

	seen := make(map[string]hcl.Range, len(m.Vertices))
	for _, v := range m.Vertices {
		if first, ok := seen[v.Name]; ok {
			return fmt.Errorf("duplicate vertex %q at %s, first defined at %s", v.Name, v.DefRange, first)
		}
		seen[v.Name] = v.DefRange
	}
	return nil
}
