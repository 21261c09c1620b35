// Package cmd provides the command-line interface implementation for dirsplit.
//
// This package contains all the subcommand implementations for the dirsplit
// CLI tool. It uses the Cobra library for command structure, Viper for
// configuration and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator, configuration and logging setup
//   - split: Group and distribute files into target directories
//   - cleanup: Remove the target directories of a split
//   - validate: Verify a completed split against its source
//   - watch: Re-plan a split when the source changes
//   - walk, count, purge, seed: Directory utilities
//   - config, version: Introspection
//
// Each command is implemented as a separate file with its own constructor
// that returns a *cobra.Command. Commands that describe a split share one
// set of flags, so split, cleanup, validate and watch all compute the same
// target directories from the same arguments.
package cmd
