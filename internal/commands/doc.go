// Package commands provides the command-line interface for the cryptobro tool.
//
// It implements commands for:
//   - the interactive menu (root command)
//   - secret generation
//   - packing and unpacking a single file
//   - checking include/exclude patterns
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands
