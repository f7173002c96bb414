// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Load returns the configuration instead of populating a package-level
// global, so the server and the CLI are constructed explicitly from it.
package config
