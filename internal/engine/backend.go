package engine

import (
	"context"
	"fmt"
	"sort"

	tidygiterrors "tidygit.dev/tidygit/internal/errors"
)

// Backend is the narrow VCS capability interface the engine consumes.
// Production code wraps a real git repository; tests use a scripted fake.
type Backend interface {
	// ListLocalBranches returns every local branch with its tip commit id
	// and optional upstream tracking ref
	ListLocalBranches(ctx context.Context) ([]Branch, error)

	// ListWorktreeBranches returns the branches checked out in other
	// working directories; these are excluded from classification entirely
	ListWorktreeBranches(ctx context.Context) (map[string]bool, error)

	// DefaultBranchName returns the repository's default branch
	DefaultBranchName(ctx context.Context) (string, error)

	// CurrentBranch returns the branch currently checked out
	CurrentBranch(ctx context.Context) (string, error)

	// IsAncestor reports whether commitA is an ancestor of commitB
	IsAncestor(ctx context.Context, commitA, commitB string) (bool, error)

	// Checkout switches the working tree to the named branch
	Checkout(ctx context.Context, branchName string) error

	// SafeDeleteBranch deletes a branch only if its commits are reachable
	// from the current checkout. It must never force-delete; a refusal is
	// reported as errors.ErrDeleteRefused.
	SafeDeleteBranch(ctx context.Context, branchName string) error
}

// Snapshot is the immutable branch state the whole analysis runs against.
// It is taken once, before classification; no later stage re-queries raw
// branch state, so a concurrent fetch cannot race the analysis.
type Snapshot struct {
	// Branches holds all local branches sorted by name
	Branches []Branch
	// WorktreeLocked holds branches checked out in other worktrees
	WorktreeLocked map[string]bool
	// DefaultBranch is the repository's default branch name
	DefaultBranch string
	// CurrentBranch is the branch checked out when the snapshot was taken
	CurrentBranch string

	tips map[string]string
}

// TakeSnapshot reads the branch state once through the backend. Any query
// failure aborts the analysis before a destructive step can happen.
func TakeSnapshot(ctx context.Context, backend Backend) (*Snapshot, error) {
	branches, err := backend.ListLocalBranches(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list local branches: %v", tidygiterrors.ErrBackendUnavailable, err)
	}

	worktreeLocked, err := backend.ListWorktreeBranches(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list worktree branches: %v", tidygiterrors.ErrBackendUnavailable, err)
	}

	defaultBranch, err := backend.DefaultBranchName(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to detect default branch: %v", tidygiterrors.ErrBackendUnavailable, err)
	}

	currentBranch, err := backend.CurrentBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get current branch: %v", tidygiterrors.ErrBackendUnavailable, err)
	}

	sorted := make([]Branch, len(branches))
	copy(sorted, branches)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	tips := make(map[string]string, len(sorted))
	for _, b := range sorted {
		tips[b.Name] = b.Tip
	}

	if worktreeLocked == nil {
		worktreeLocked = map[string]bool{}
	}

	return &Snapshot{
		Branches:       sorted,
		WorktreeLocked: worktreeLocked,
		DefaultBranch:  defaultBranch,
		CurrentBranch:  currentBranch,
		tips:           tips,
	}, nil
}

// Tip returns the snapshotted tip commit id for a branch name.
func (s *Snapshot) Tip(branchName string) (string, bool) {
	tip, ok := s.tips[branchName]
	return tip, ok
}

// HasBranch reports whether the snapshot contains the named branch.
func (s *Snapshot) HasBranch(branchName string) bool {
	_, ok := s.tips[branchName]
	return ok
}
