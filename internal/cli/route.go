// Copyright 2026 The skill-router Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/traylinx/skill-router/internal/config"
	"github.com/traylinx/skill-router/internal/route"
)

func newRouteCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "route",
		Short: "Read a hook envelope on stdin and emit a match on stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoute(cfg)
		},
	}
}

// runRoute executes one routing invocation. It never returns an error:
// the Router is its own fence and the hook contract demands exit 0.
func runRoute(cfg *config.Config) error {
	route.New(cfg).Run(context.Background(), os.Stdin, os.Stdout)
	return nil
}
