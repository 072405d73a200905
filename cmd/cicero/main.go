// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     main
// Description: Cicero command line entry point
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package main

import (
	"os"

	"github.com/msto63/cicero/cmd/cicero/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
