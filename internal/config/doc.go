// Package config defines the format-agnostic manifest model and the Loader
// interface for reading it from various sources.
//
// The `config.Model` is the single source of truth for the `dag` package.
// Concrete loaders, such as the HCL one, live in separate packages.
package config
