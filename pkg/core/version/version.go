// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     version
// Description: Central version management for Cicero
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package version

import "fmt"

// Version constants
const (
	// Service version
	Service = "1.0.0"

	// API version exposed by the REST surface
	API = "v1"
)

// Build metadata, set via -ldflags at build time
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Full returns the full version string including build metadata
func Full() string {
	return fmt.Sprintf("cicero %s (commit %s, built %s)", Service, Commit, BuildDate)
}
