package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"

	tidygiterrors "tidygit.dev/tidygit/internal/errors"
)

// HasRemotes reports whether the repository has any remote configured.
func (r *Repository) HasRemotes() (bool, error) {
	remotes, err := r.Remotes()
	if err != nil {
		return false, fmt.Errorf("failed to list remotes: %w", err)
	}
	return len(remotes) > 0, nil
}

// Fetch fetches from all remotes and prunes stale remote-tracking refs.
// The git CLI is used here so the user's credential helpers and ssh config
// apply unchanged.
func (r *Repository) Fetch(ctx context.Context) error {
	_, err := r.runner.Run(ctx, "fetch", "--all", "--prune")
	if err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}
	return nil
}

// FastForwardMerge merges ref into the current branch, fast-forward only.
// A merge that would need a real merge commit fails instead of creating one.
func (r *Repository) FastForwardMerge(ctx context.Context, ref string) error {
	_, err := r.runner.Run(ctx, "merge", "--ff-only", ref)
	if err != nil {
		var cmdErr *tidygiterrors.GitCommandError
		if errors.As(err, &cmdErr) && strings.Contains(cmdErr.Stderr, "Not possible to fast-forward") {
			return fmt.Errorf("branch has diverged from %s: %w", ref, err)
		}
		return fmt.Errorf("failed to fast-forward to %s: %w", ref, err)
	}
	return nil
}

// UpstreamExists reports whether a remote-tracking ref is actually present,
// a configured upstream may have been pruned away.
func (r *Repository) UpstreamExists(upstream string) bool {
	_, err := r.ResolveUpstreamTip(upstream)
	return err == nil
}

// ResolveUpstreamTip returns the commit a remote-tracking ref points at.
func (r *Repository) ResolveUpstreamTip(upstream string) (string, error) {
	ref, err := r.Reference(plumbing.ReferenceName("refs/remotes/"+upstream), true)
	if err != nil {
		return "", fmt.Errorf("upstream %s not found: %w", upstream, err)
	}
	return ref.Hash().String(), nil
}
