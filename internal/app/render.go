package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/resolvegrid/internal/dag"
	"github.com/specialistvlad/resolvegrid/internal/resolver"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// render writes the resolved values. Text output lists one `name = value`
// line per vertex in resolution order; JSON output is a single object.
func render(w io.Writer, format string, graph *dag.Graph, report *resolver.Report, c *dag.Context) error {
	if format == OutputJSON {
		values := make(map[string]ctyjson.SimpleJSONValue, len(report.Resolved))
		for _, v := range report.Resolved {
			name := graph.NodeOf(v).Name
			values[name] = ctyjson.SimpleJSONValue{Value: c.Values[name]}
		}
		out, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}

	for _, v := range report.Resolved {
		name := graph.NodeOf(v).Name
		tokens := hclwrite.TokensForValue(c.Values[name])
		if _, err := fmt.Fprintf(w, "%s = %s\n", name, hclwrite.Format(tokens.Bytes())); err != nil {
			return err
		}
	}
	return nil
}
