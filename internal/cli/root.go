// Copyright 2026 The skill-router Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cli defines the skill-router command tree. The bare binary
// runs the route command so the host assistant can invoke it directly
// as a hook; subcommands cover cache inspection and versioning.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/traylinx/skill-router/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:          "skill-router",
		Short:        "Prompt-time skill router hook for coding assistants",
		SilenceUsage: true,
		Long: `skill-router reads a {"prompt": ...} hook envelope on stdin, scores a
registry of skills against the prompt, and emits at most one
{"systemMessage": ...} envelope on stdout. It never blocks the user's
input: every failure collapses into an empty emission and exit 0.`,
		// Invoked with no subcommand, behave as the hook.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoute(cfg)
		},
	}

	root.AddCommand(newRouteCmd(cfg))
	root.AddCommand(newCacheCmd(cfg))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the command tree. Called by main.
func Execute(cfg *config.Config) {
	if err := newRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
