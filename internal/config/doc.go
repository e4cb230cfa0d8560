// Package config loads and validates the application configuration.
//
// Configuration comes from environment variables (prefix TAXONSTATS) layered
// under an optional YAML file, with defaults for the standard input path and
// output directory. Directory creation is an explicit setup step
// (EnsureDirectories) invoked by the entry point, never an import side
// effect.
package config
