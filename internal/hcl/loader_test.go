package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/resolvegrid/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func vertexNamed(t *testing.T, model *config.Model, name string) *config.Vertex {
	t.Helper()
	for _, v := range model.Vertices {
		if v.Name == name {
			return v
		}
	}
	require.FailNow(t, "vertex not found", name)
	return nil
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "a.hcl", `
vertex "base" {
  description = "root value"
  value       = "v1"
}
`)
	writeManifest(t, dir, "b.hcl", `
vertex "app" {
  depends_on = ["base", vertex.lib]
  value      = "${vertex.base.value}-app"
}

vertex "lib" {}
`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Vertices, 3)

	base := vertexNamed(t, model, "base")
	assert.Equal(t, "root value", base.Description)
	assert.Empty(t, base.DependsOn)
	val, diags := base.Value.Value(nil)
	require.False(t, diags.HasErrors())
	assert.Equal(t, cty.StringVal("v1"), val)

	app := vertexNamed(t, model, "app")
	assert.Equal(t, []string{"base", "lib"}, app.DependsOn)
	assert.Equal(t, filepath.Join(dir, "b.hcl"), app.DefRange.Filename)

	lib := vertexNamed(t, model, "lib")
	require.NotNil(t, lib.Value, "absent value is a null expression")
	val, diags = lib.Value.Value(nil)
	require.False(t, diags.HasErrors())
	assert.True(t, val.IsNull())
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "syntax error",
			content: `vertex "a" {`,
			wantErr: "failed to load manifests",
		},
		{
			name:    "unknown block",
			content: `step "print" "a" {}`,
			wantErr: "Unsupported block type",
		},
		{
			name:    "unknown attribute",
			content: `vertex "a" { colour = "red" }`,
			wantErr: "Unsupported argument",
		},
		{
			name:    "depends_on not a list",
			content: `vertex "a" { depends_on = "b" }`,
			wantErr: "Invalid depends_on value",
		},
		{
			name: "duplicate vertex",
			content: `
vertex "a" {}
vertex "a" {}
`,
			wantErr: "Duplicate \"vertex\" block",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), "main.hcl", tc.content)

			_, err := NewLoader().Load(context.Background(), path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}

	t.Run("missing path", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing"))
		assert.ErrorContains(t, err, "failed to find manifest files")
	})
}
