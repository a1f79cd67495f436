// Package cli defines the Cobra command tree for the vstoolchain CLI. Each
// file registers one top-level command with the root. Command implementations
// delegate to the internal packages for locating the toolchain and syncing
// files, and only handle argument parsing and output.
package cli
