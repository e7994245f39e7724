package git

import (
	"context"
	"fmt"
	"strings"
)

// Worktree describes one entry from `git worktree list`.
type Worktree struct {
	Path     string
	Branch   string
	Detached bool
}

// ListWorktrees returns every worktree of the repository, the main worktree
// first, in the order git reports them.
func (r *Repository) ListWorktrees(ctx context.Context) ([]Worktree, error) {
	output, err := r.runner.RunRaw(ctx, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to list worktrees: %w", err)
	}
	return parseWorktreePorcelain(output), nil
}

// ListWorktreeBranches returns the branches checked out in linked worktrees.
// The main worktree is excluded, deleting its branch is handled through the
// current-branch rules, not the worktree lock.
func (r *Repository) ListWorktreeBranches(ctx context.Context) (map[string]bool, error) {
	worktrees, err := r.ListWorktrees(ctx)
	if err != nil {
		return nil, err
	}

	locked := map[string]bool{}
	for i, wt := range worktrees {
		if i == 0 || wt.Detached || wt.Branch == "" {
			continue
		}
		locked[wt.Branch] = true
	}
	return locked, nil
}

// parseWorktreePorcelain parses `git worktree list --porcelain` output.
// Entries are stanzas separated by blank lines; a stanza holds "worktree ",
// "HEAD ", and either "branch refs/heads/..." or "detached".
func parseWorktreePorcelain(output string) []Worktree {
	var worktrees []Worktree
	var current *Worktree

	flush := func() {
		if current != nil {
			worktrees = append(worktrees, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "worktree "):
			flush()
			current = &Worktree{Path: strings.TrimPrefix(line, "worktree ")}
		case current == nil:
			// stray line before any worktree stanza
		case strings.HasPrefix(line, "branch "):
			ref := strings.TrimPrefix(line, "branch ")
			current.Branch = strings.TrimPrefix(ref, "refs/heads/")
		case line == "detached":
			current.Detached = true
		}
	}
	flush()

	return worktrees
}
