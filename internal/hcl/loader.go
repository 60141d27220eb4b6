package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/resolvegrid/internal/config"
	"github.com/specialistvlad/resolvegrid/internal/ctxlog"
	"github.com/specialistvlad/resolvegrid/internal/fsutil"
	"github.com/specialistvlad/resolvegrid/internal/hclutil"
)

// manifestSchema describes the top level of a manifest file.
var manifestSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "vertex", LabelNames: []string{"name"}},
	},
}

// vertexBody is decoded from the body of a `vertex` block. Absent
// expressions are synthesised by gohcl as static nulls.
type vertexBody struct {
	Description *string        `hcl:"description,optional"`
	DependsOn   hcl.Expression `hcl:"depends_on,optional"`
	Value       hcl.Expression `hcl:"value,optional"`
}

// Loader reads HCL manifests.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load implements config.Loader. Every path may be a single file or a
// directory searched recursively for .hcl files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFiles(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find manifest files in %s: %w", path, err)
		}
		if len(found) == 0 {
			logger.Warn("No .hcl manifest files found in path.", "path", path)
		}
		files = append(files, found...)
	}

	model := &config.Model{}
	firstBlocks := make(map[string]*hcl.Block)
	var diags hcl.Diagnostics

	for _, file := range files {
		logger.Debug("Parsing manifest file.", "file", file)
		vertices, fileDiags := l.loadFile(file, firstBlocks)
		diags = append(diags, fileDiags...)
		model.Vertices = append(model.Vertices, vertices...)
	}

	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to load manifests: %w", diags)
	}

	logger.Debug("Manifests loaded.", "files", len(files), "vertices", len(model.Vertices))
	return model, nil
}

// loadFile parses a single file. firstBlocks tracks the first block seen for
// each vertex name across files.
func (l *Loader) loadFile(file string, firstBlocks map[string]*hcl.Block) ([]*config.Vertex, hcl.Diagnostics) {
	f, diags := l.parser.ParseHCLFile(file)
	if diags.HasErrors() {
		return nil, diags
	}

	content, contentDiags := f.Body.Content(manifestSchema)
	diags = append(diags, contentDiags...)
	if content == nil {
		return nil, diags
	}

	vertices := make([]*config.Vertex, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		name := block.Labels[0]
		if first, ok := firstBlocks[name]; ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate \"vertex\" block",
				Detail:   fmt.Sprintf("A vertex named %q was already defined at %s.", name, first.DefRange),
				Subject:  &block.DefRange,
			})
			continue
		}
		firstBlocks[name] = block

		v, vertexDiags := translateVertex(name, block)
		diags = append(diags, vertexDiags...)
		if v != nil {
			vertices = append(vertices, v)
		}
	}

	return vertices, diags
}

// translateVertex converts a `vertex` block into the agnostic model.
func translateVertex(name string, block *hcl.Block) (*config.Vertex, hcl.Diagnostics) {
	var body vertexBody
	diags := gohcl.DecodeBody(block.Body, nil, &body)
	if diags.HasErrors() {
		return nil, diags
	}

	dependsOn, depDiags := hclutil.ParseDependsOn(body.DependsOn)
	diags = append(diags, depDiags...)
	if depDiags.HasErrors() {
		return nil, diags
	}

	v := &config.Vertex{
		Name:      name,
		DependsOn: dependsOn,
		Value:     body.Value,
		DefRange:  block.DefRange,
	}
	if body.Description != nil {
		v.Description = *body.Description
	}
	return v, diags
}
