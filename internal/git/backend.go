package git

import (
	"context"

	"tidygit.dev/tidygit/internal/engine"
)

// Backend adapts a Repository to the engine's backend interface.
type Backend struct {
	repo          *Repository
	trunkOverride string
}

// NewBackend wraps a repository for the analysis engine.
func NewBackend(repo *Repository) *Backend {
	return &Backend{repo: repo}
}

// SetTrunkOverride pins the default branch name, bypassing detection.
func (b *Backend) SetTrunkOverride(name string) {
	b.trunkOverride = name
}

// Repository returns the underlying repository.
func (b *Backend) Repository() *Repository {
	return b.repo
}

func (b *Backend) ListLocalBranches(_ context.Context) ([]engine.Branch, error) {
	entries, err := b.repo.ListBranches()
	if err != nil {
		return nil, err
	}
	branches := make([]engine.Branch, 0, len(entries))
	for _, entry := range entries {
		branches = append(branches, engine.Branch{
			Name:     entry.Name,
			Tip:      entry.Tip,
			Upstream: entry.Upstream,
		})
	}
	return branches, nil
}

func (b *Backend) ListWorktreeBranches(ctx context.Context) (map[string]bool, error) {
	return b.repo.ListWorktreeBranches(ctx)
}

func (b *Backend) DefaultBranchName(ctx context.Context) (string, error) {
	if b.trunkOverride != "" {
		if _, err := b.repo.ResolveBranchTip(b.trunkOverride); err != nil {
			return "", err
		}
		return b.trunkOverride, nil
	}
	return b.repo.DefaultBranchName(ctx)
}

func (b *Backend) CurrentBranch(_ context.Context) (string, error) {
	return b.repo.GetCurrentBranch()
}

func (b *Backend) IsAncestor(_ context.Context, commitA, commitB string) (bool, error) {
	return b.repo.IsAncestor(commitA, commitB)
}

func (b *Backend) Checkout(ctx context.Context, branchName string) error {
	return b.repo.Checkout(ctx, branchName)
}

func (b *Backend) SafeDeleteBranch(ctx context.Context, branchName string) error {
	return b.repo.SafeDeleteBranch(ctx, branchName)
}
