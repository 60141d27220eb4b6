package hclutil

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// ParseDependsOn reads a `depends_on` expression. The value must be a list
// literal whose elements are vertex names ("base") or vertex references
// (vertex.base). A missing attribute, which gohcl decodes as a static null,
// yields no dependencies.
func ParseDependsOn(expr hcl.Expression) ([]string, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	if expr == nil {
		return nil, diags
	}
	if val, valDiags := expr.Value(nil); !valDiags.HasErrors() && val.IsNull() {
		return nil, diags
	}

	// The expression must be a tuple constructor, i.e., a list literal like `[...]`.
	tuple, ok := expr.(*hclsyntax.TupleConsExpr)
	if !ok {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid depends_on value",
			Detail:   "The 'depends_on' attribute must be a list of vertex names or vertex references.",
			Subject:  expr.Range().Ptr(),
		})
		return nil, diags
	}

	names := make([]string, 0, len(tuple.Exprs))
	for _, elem := range tuple.Exprs {
		if traversal, travDiags := hcl.AbsTraversalForExpr(elem); !travDiags.HasErrors() {
			if name, ok := VertexReference(traversal); ok {
				names = append(names, name)
				continue
			}
		}

		val, valDiags := elem.Value(nil)
		if valDiags.HasErrors() || val.IsNull() || !val.IsKnown() || val.Type() != cty.String {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid dependency reference",
				Detail:   "Each depends_on element must be a vertex name string or a reference like vertex.<name>.",
				Subject:  elem.Range().Ptr(),
			})
			continue
		}
		names = append(names, val.AsString())
	}

	return names, diags
}
