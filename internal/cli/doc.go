// Package cli wires together the Cobra command tree for the codereport binary.
//
// It defines the root command and all subcommands (init, add, list, delete,
// resolve, check, html, who, cache, config, hook, version), locates the
// repository root, initialises logging, and returns deterministic exit codes
// for CI gating.
package cli
