package main

import (
	"fmt"
	"time"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/spf13/cobra"
)

func newTokensCommand(ctx *commandContext) *cobra.Command {
	tokensCmd := &cobra.Command{
		Use:   "tokens",
		Short: "Manage notification tokens",
	}
	tokensCmd.AddCommand(newTokensPruneCommand(ctx))
	return tokensCmd
}

func newTokensPruneCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration

	c := &cobra.Command{
		Use:   "prune",
		Short: "Delete tokens not refreshed within the retention window",
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := ctx.config()
			if err != nil {
				return err
			}
			if olderThan == 0 {
				olderThan = cfg.TokenRetention
			}

			cmd, err := commands.NewPruneStaleTokensCommand(olderThan)
			if err != nil {
				return err
			}
			root, err := ctx.compositionRoot(c.Context())
			if err != nil {
				return err
			}
			handler := root.CreatePruneStaleTokensCommandHandler()
			deleted, err := handler.Handle(c.Context(), cmd)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.OutOrStdout(), "Deleted %d tokens not refreshed in %s\n", deleted, olderThan)
			return nil
		},
	}
	c.Flags().DurationVar(&olderThan, "older-than", 0, "Retention window (default TOKEN_RETENTION)")
	return c
}
