// Copyright 2026 The skill-router Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/traylinx/skill-router/internal/cache"
	"github.com/traylinx/skill-router/internal/config"
)

func newCacheCmd(cfg *config.Config) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the local skill cache",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Print a summary of cached entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := cache.NewStore(cfg).Stats()

			fmt.Fprintf(cmd.OutOrStdout(), "cache root:    %s\n", st.Root)
			if st.IndexCached {
				fmt.Fprintf(cmd.OutOrStdout(), "index:         %s (%d skills, fetched %s)\n",
					st.IndexFreshness, st.IndexSkills, formatFetchedAt(st.IndexFetchedAt))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "index:         missing")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cached bodies: %d\n", st.BodyCount)
			for _, id := range st.BodyIDs {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "total size:    %d bytes\n", st.TotalBytes)
			return nil
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cache.NewStore(cfg).Clear(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
			return nil
		},
	})

	return cacheCmd
}

func formatFetchedAt(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.UTC().Format(time.RFC3339)
}
