// Copyright 2026 The skill-router Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package main provides the entry point for the skill-router hook.
// The binary reads a UserPromptSubmit-style JSON envelope on stdin and
// writes at most one systemMessage envelope on stdout; all diagnostics
// go to stderr so the protocol channel stays clean.
package main

import (
	"github.com/traylinx/skill-router/internal/buildinfo"
	"github.com/traylinx/skill-router/internal/cli"
	"github.com/traylinx/skill-router/internal/config"
	"github.com/traylinx/skill-router/internal/logging"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// init initializes the shared logger setup.
func init() {
	logging.SetupBaseLogger()
	buildinfo.Version = Version
	buildinfo.Commit = Commit
	buildinfo.BuildDate = BuildDate
}

func main() {
	cfg := config.Load()
	if err := logging.ConfigureOutput(cfg.Debug, cfg.LogFile); err != nil {
		// Logging trouble must not break routing; keep stderr output.
		logging.SetupBaseLogger()
	}

	cli.Execute(cfg)
}
