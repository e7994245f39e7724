package actions

import (
	"context"

	"tidygit.dev/tidygit/internal/runtime"
)

// UpdateTrackingBranches fast-forwards every local branch to its upstream.
// Branches whose upstream is gone or that have diverged are left alone.
// The branch that was checked out when we started is checked out again
// before returning, even when an update fails partway.
func UpdateTrackingBranches(ctx *runtime.Context) error {
	splog := ctx.Splog
	stdctx := ctx.Ctx

	startBranch, err := ctx.Repo.GetCurrentBranch()
	if err != nil {
		return err
	}

	entries, err := ctx.Repo.ListBranches()
	if err != nil {
		return err
	}

	worktreeBranches, err := ctx.Repo.ListWorktreeBranches(stdctx)
	if err != nil {
		return err
	}

	current := startBranch
	defer func() {
		if current != startBranch {
			if err := ctx.Repo.Checkout(context.WithoutCancel(stdctx), startBranch); err != nil {
				splog.Warn("Could not return to %s: %v", startBranch, err)
			}
		}
	}()

	for _, entry := range entries {
		if entry.Upstream == "" {
			continue
		}
		if worktreeBranches[entry.Name] {
			splog.Debug("Skipping %s, checked out in a worktree", entry.Name)
			continue
		}
		if !ctx.Repo.UpstreamExists(entry.Upstream) {
			splog.Debug("Skipping %s, upstream %s is gone", entry.Name, entry.Upstream)
			continue
		}

		upstreamTip, err := ctx.Repo.ResolveUpstreamTip(entry.Upstream)
		if err == nil && upstreamTip == entry.Tip {
			continue
		}

		if current != entry.Name {
			if err := ctx.Repo.Checkout(stdctx, entry.Name); err != nil {
				return err
			}
			current = entry.Name
		}

		if err := ctx.Repo.FastForwardMerge(stdctx, entry.Upstream); err != nil {
			splog.Warn("Could not fast-forward %s to %s, leaving it as is", entry.Name, entry.Upstream)
			continue
		}
		splog.Info("Updated %s from %s", entry.Name, entry.Upstream)
	}

	return nil
}
