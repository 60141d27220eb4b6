package dag

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/resolvegrid/internal/ctxlog"
	"github.com/specialistvlad/resolvegrid/internal/depgraph"
	"github.com/specialistvlad/resolvegrid/internal/hclutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// functions are available to every value expression.
var functions = map[string]function.Function{
	"concat": stdlib.ConcatFunc,
	"format": stdlib.FormatFunc,
	"join":   stdlib.JoinFunc,
	"length": stdlib.LengthFunc,
	"lower":  stdlib.LowerFunc,
	"max":    stdlib.MaxFunc,
	"min":    stdlib.MinFunc,
	"upper":  stdlib.UpperFunc,
}

// Resolve implements depgraph.Resolver. The node is ready once every
// dependency edge has fired; it then evaluates its value expression and
// publishes the result in c.Values.
func (n *Node) Resolve(c *Context) (bool, error) {
	if n.pending > 0 {
		return false, nil
	}
	if n.Config.Value == nil {
		c.Values[n.Name] = cty.NullVal(cty.DynamicPseudoType)
		return true, nil
	}

	deps := make(map[string]cty.Value, len(n.deps))
	for _, name := range n.deps {
		val, ok := c.Values[name]
		if !ok {
			return false, fmt.Errorf("dependency '%s' has no published value", name)
		}
		deps[name] = cty.ObjectVal(map[string]cty.Value{"value": val})
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{hclutil.VertexRoot: cty.ObjectVal(deps)},
		Functions: functions,
	}

	val, diags := n.Config.Value.Value(evalCtx)
	if diags.HasErrors() {
		return false, diags
	}

	c.Values[n.Name] = val
	ctxlog.FromContext(c).Debug("Vertex value evaluated.", "vertex", n.Name, "type", val.Type().FriendlyName())
	return true, nil
}

// dependencyResolved is the action on every edge this node declares.
func (n *Node) dependencyResolved(c *Context, e depgraph.Edge) error {
	n.pending--
	ctxlog.FromContext(c).Debug("Dependency resolved.", "vertex", n.Name, "edge", e.ID(), "remaining", n.pending)
	return nil
}
