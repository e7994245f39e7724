package cli

import (
	"github.com/spf13/cobra"

	"tidygit.dev/tidygit/internal/config"
	"tidygit.dev/tidygit/internal/runtime"
)

// newProtectCmd creates the protect command
func newProtectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "protect <pattern>",
		Short: "Add a branch name or glob to the protected list",
		Long: `Add a branch name or glob to the protected list.

Protected branches are never deleted and never counted as duplicates to
discard. The default branch is always protected. Patterns are stored in
.git/.tidygit_config; the ` + config.GitConfigKey + ` git config key is
honored as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			if err := config.AddProtectedBranch(ctx.RepoRoot, args[0]); err != nil {
				return err
			}
			ctx.Splog.Info("Protected %s", args[0])
			return nil
		},
	}
}

// newUnprotectCmd creates the unprotect command
func newUnprotectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unprotect <pattern>",
		Short: "Remove a branch name or glob from the protected list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			if err := config.RemoveProtectedBranch(ctx.RepoRoot, args[0]); err != nil {
				return err
			}
			ctx.Splog.Info("Unprotected %s", args[0])
			return nil
		},
	}
}
