// Package cli wires the tidygit commands to cobra.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tidygit.dev/tidygit/internal/actions"
	"tidygit.dev/tidygit/internal/runtime"
)

// NewRootCmd creates the root cobra command. Running tidygit with no
// subcommand performs a full tidy.
func NewRootCmd(version, commit, date string) *cobra.Command {
	var (
		yes      bool
		dryRun   bool
		noFetch  bool
		noUpdate bool
		exclude  []string
	)

	rootCmd := &cobra.Command{
		Use:   "tidygit",
		Short: "Tidygit keeps your local branches tidy by deleting the ones that are fully merged elsewhere",
		Long: `Tidygit keeps your local branches tidy.

It fetches your remotes, fast-forwards tracking branches, then finds local
branches whose every commit is already reachable from another branch and
deletes them safely. Branches with unique commits are never touched, and
deletion always uses git's own safety check (branch -d, never -D).`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			_, err = actions.Tidy(ctx, actions.TidyOptions{
				Yes:      yes,
				DryRun:   dryRun,
				NoFetch:  noFetch,
				NoUpdate: noUpdate,
				Exclude:  exclude,
			})
			return err
		},
	}

	rootCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete every branch in the plan without prompting.")
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would be deleted without deleting anything.")
	rootCmd.Flags().BoolVar(&noFetch, "no-fetch", false, "Skip fetching remotes.")
	rootCmd.Flags().BoolVar(&noUpdate, "no-update", false, "Skip fast-forwarding tracking branches.")
	rootCmd.Flags().StringArrayVarP(&exclude, "exclude", "x", nil, "Extra branch name or glob to protect (repeatable).")

	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	// Add subcommands
	rootCmd.AddCommand(newBranchesCmd())
	rootCmd.AddCommand(newProtectCmd())
	rootCmd.AddCommand(newUnprotectCmd())
	rootCmd.AddCommand(newTrunkCmd())

	return rootCmd
}
