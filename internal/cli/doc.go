// Package cli defines the Cobra command tree for the mark CLI. Each file in
// this package registers one top-level command (sync, config, version) with
// the root command. Commands delegate to internal packages for the work and
// only handle flags, configuration, and output.
package cli
