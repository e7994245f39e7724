package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tidygiterrors "tidygit.dev/tidygit/internal/errors"
)

// Checkout checks out an existing branch.
func (r *Repository) Checkout(ctx context.Context, branchName string) error {
	_, err := r.runner.Run(ctx, "checkout", branchName)
	if err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branchName, err)
	}
	return nil
}

// SafeDeleteBranch deletes a branch with `git branch -d`. Git refuses the
// delete when the branch is not fully merged into HEAD; that refusal comes
// back as ErrDeleteRefused. This never escalates to -D.
func (r *Repository) SafeDeleteBranch(ctx context.Context, branchName string) error {
	_, err := r.runner.Run(ctx, "branch", "-d", branchName)
	if err == nil {
		return nil
	}

	var cmdErr *tidygiterrors.GitCommandError
	if errors.As(err, &cmdErr) {
		stderr := cmdErr.Stderr
		if strings.Contains(stderr, "not fully merged") ||
			strings.Contains(stderr, "checked out at") ||
			strings.Contains(stderr, "used by worktree") {
			return tidygiterrors.NewDeleteRefusedError(branchName, err)
		}
		if strings.Contains(stderr, "not found") {
			return tidygiterrors.NewBranchNotFoundError(branchName)
		}
	}
	return fmt.Errorf("failed to delete branch %s: %w", branchName, err)
}
