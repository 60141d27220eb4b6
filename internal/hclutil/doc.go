// Package hclutil holds small HCL helpers shared by the manifest loader and
// the dag builder: traversal keys, vertex references and depends_on parsing.
package hclutil
