package git

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	tidygiterrors "tidygit.dev/tidygit/internal/errors"
)

// Repository wraps a go-git repository together with a command runner for
// the operations go-git does not model well.
type Repository struct {
	*gogit.Repository
	path   string
	runner *CommandRunner
}

// OpenRepository opens the git repository containing the given path.
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	root := worktree.Filesystem.Root()

	return &Repository{
		Repository: repo,
		path:       root,
		runner:     NewCommandRunner(root),
	}, nil
}

// GetRepoRoot returns the root directory of the repository
func (r *Repository) GetRepoRoot() string {
	return r.path
}

// Runner returns the command runner bound to this repository's root.
func (r *Repository) Runner() *CommandRunner {
	return r.runner
}

// GetRepoRoot returns the root directory of the Git repository containing
// the current working directory.
func GetRepoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(wd, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	return worktree.Filesystem.Root(), nil
}

// BranchEntry is one local branch with its tip commit and optional upstream.
type BranchEntry struct {
	Name     string
	Tip      string
	Upstream string
}

// ListBranches returns every local branch with its tip, sorted by name.
func (r *Repository) ListBranches() ([]BranchEntry, error) {
	iter, err := r.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to get branches: %w", err)
	}

	var entries []BranchEntry
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if !ref.Name().IsBranch() {
			return nil
		}
		name := ref.Name().Short()
		entries = append(entries, BranchEntry{
			Name:     name,
			Tip:      ref.Hash().String(),
			Upstream: r.upstreamOf(name),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate branches: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// upstreamOf returns the remote-tracking ref a branch is configured to
// follow, or "" when it has none.
func (r *Repository) upstreamOf(branchName string) string {
	cfg, err := r.Config()
	if err != nil {
		return ""
	}
	branch, ok := cfg.Branches[branchName]
	if !ok || branch.Remote == "" {
		return ""
	}
	merge := branch.Merge.Short()
	if merge == "" {
		return ""
	}
	return branch.Remote + "/" + merge
}

// GetCurrentBranch returns the current branch name. A detached HEAD yields
// ErrNotOnBranch.
func (r *Repository) GetCurrentBranch() (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	if !head.Name().IsBranch() {
		return "", tidygiterrors.ErrNotOnBranch
	}

	return head.Name().Short(), nil
}

// ResolveBranchTip returns the commit hash a local branch points at.
func (r *Repository) ResolveBranchTip(branchName string) (string, error) {
	ref, err := r.Reference(plumbing.NewBranchReferenceName(branchName), true)
	if err != nil {
		return "", tidygiterrors.NewBranchNotFoundError(branchName)
	}
	return ref.Hash().String(), nil
}
