package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// DefaultBranchName determines the repository's default branch. Resolution
// order: the remote HEAD of origin, the init.defaultBranch config, then a
// probe for main and master.
func (r *Repository) DefaultBranchName(ctx context.Context) (string, error) {
	if name, ok := r.remoteHeadBranch(ctx); ok {
		return name, nil
	}

	if configured, err := r.runner.Run(ctx, "config", "--get", "init.defaultBranch"); err == nil && configured != "" {
		if _, err := r.ResolveBranchTip(configured); err == nil {
			return configured, nil
		}
	}

	for _, candidate := range []string{"main", "master"} {
		if _, err := r.ResolveBranchTip(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("could not determine the default branch")
}

// remoteHeadBranch reads refs/remotes/origin/HEAD, which records what the
// remote considers its default branch.
func (r *Repository) remoteHeadBranch(ctx context.Context) (string, bool) {
	ref, err := r.Reference(plumbing.ReferenceName("refs/remotes/origin/HEAD"), false)
	if err != nil || ref.Type() != plumbing.SymbolicReference {
		return "", false
	}
	target := ref.Target().String()
	name := strings.TrimPrefix(target, "refs/remotes/origin/")
	if name == target || name == "" {
		return "", false
	}
	if _, err := r.ResolveBranchTip(name); err != nil {
		return "", false
	}
	return name, true
}
