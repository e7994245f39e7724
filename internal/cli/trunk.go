package cli

import (
	"github.com/spf13/cobra"

	"tidygit.dev/tidygit/internal/config"
	"tidygit.dev/tidygit/internal/runtime"
)

// newTrunkCmd creates the trunk command
func newTrunkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trunk [branch]",
		Short: "Show or set the trunk branch",
		Long: `Show or set the trunk branch.

With no argument, prints the trunk branch tidygit will protect. Without an
override the trunk is detected from origin/HEAD, init.defaultBranch, or by
probing main and master. With an argument, pins the trunk in
.git/.tidygit_config so detection is skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			if len(args) == 1 {
				if _, err := ctx.Repo.ResolveBranchTip(args[0]); err != nil {
					return err
				}
				if err := config.SetTrunk(ctx.RepoRoot, args[0]); err != nil {
					return err
				}
				ctx.Splog.Info("Trunk set to %s", args[0])
				return nil
			}

			trunk, err := config.GetTrunkOverride(ctx.RepoRoot)
			if err != nil {
				return err
			}
			if trunk != "" {
				ctx.Splog.Info("%s (configured)", trunk)
				return nil
			}

			detected, err := ctx.Backend.DefaultBranchName(ctx.Ctx)
			if err != nil {
				return err
			}
			ctx.Splog.Info("%s (detected)", detected)
			return nil
		},
	}
}
