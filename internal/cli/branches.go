package cli

import (
	"github.com/spf13/cobra"

	"tidygit.dev/tidygit/internal/actions"
	"tidygit.dev/tidygit/internal/runtime"
)

// newBranchesCmd creates the branches command
func newBranchesCmd() *cobra.Command {
	var exclude []string

	cmd := &cobra.Command{
		Use:   "branches",
		Short: "List local branches with their tidy classification",
		Long: `List local branches with their tidy classification.

Shows for each branch whether it is protected, checked out in a worktree, a
duplicate of another branch, contained in other branches, or kept because it
has commits found nowhere else. Nothing is deleted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			return actions.Branches(ctx, actions.BranchesOptions{
				Exclude: exclude,
			})
		},
	}

	cmd.Flags().StringArrayVarP(&exclude, "exclude", "x", nil, "Extra branch name or glob to protect (repeatable).")

	return cmd
}
