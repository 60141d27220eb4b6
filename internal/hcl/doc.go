// Package hcl provides the concrete HCL implementation of config.Loader.
// It is responsible for file discovery, parsing, and translating `vertex`
// blocks into the format-agnostic model.
package hcl
