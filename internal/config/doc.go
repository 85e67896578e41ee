// Package config loads the server configuration from environment variables,
// command-line flags, and an optional JSON file, merging the sources through
// a builder and validating the result before the application starts.
package config
