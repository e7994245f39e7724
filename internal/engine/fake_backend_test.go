package engine_test

import (
	"context"
	"fmt"

	"tidygit.dev/tidygit/internal/engine"
	tidygiterrors "tidygit.dev/tidygit/internal/errors"
)

// fakeBackend is a scripted in-memory Backend. The commit graph is a map of
// commit -> parents; ancestry is computed by walking parent links, so tests
// describe history the same way the real graph stores it.
type fakeBackend struct {
	commits       map[string][]string
	branches      map[string]engine.Branch
	branchOrder   []string
	worktree      map[string]bool
	defaultBranch string
	current       string

	ancestryCalls int
	checkouts     []string
	deletions     []string

	failCheckout  map[string]bool
	refuseDeletes map[string]bool
	isAncestorFn  func(commitA, commitB string) (bool, error)
}

func newFakeBackend(defaultBranch string) *fakeBackend {
	return &fakeBackend{
		commits:       map[string][]string{},
		branches:      map[string]engine.Branch{},
		worktree:      map[string]bool{},
		defaultBranch: defaultBranch,
		current:       defaultBranch,
		failCheckout:  map[string]bool{},
		refuseDeletes: map[string]bool{},
	}
}

func (f *fakeBackend) commit(id string, parents ...string) *fakeBackend {
	f.commits[id] = parents
	return f
}

func (f *fakeBackend) branch(name, tip string) *fakeBackend {
	if _, ok := f.branches[name]; !ok {
		f.branchOrder = append(f.branchOrder, name)
	}
	f.branches[name] = engine.Branch{Name: name, Tip: tip}
	return f
}

func (f *fakeBackend) lockWorktree(name string) *fakeBackend {
	f.worktree[name] = true
	return f
}

func (f *fakeBackend) reachable(from, target string) bool {
	seen := map[string]bool{}
	queue := []string{from}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == target {
			return true
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		queue = append(queue, f.commits[c]...)
	}
	return false
}

func (f *fakeBackend) ListLocalBranches(_ context.Context) ([]engine.Branch, error) {
	var out []engine.Branch
	for _, name := range f.branchOrder {
		if b, ok := f.branches[name]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBackend) ListWorktreeBranches(_ context.Context) (map[string]bool, error) {
	out := map[string]bool{}
	for name := range f.worktree {
		out[name] = true
	}
	return out, nil
}

func (f *fakeBackend) DefaultBranchName(_ context.Context) (string, error) {
	return f.defaultBranch, nil
}

func (f *fakeBackend) CurrentBranch(_ context.Context) (string, error) {
	return f.current, nil
}

func (f *fakeBackend) IsAncestor(_ context.Context, commitA, commitB string) (bool, error) {
	f.ancestryCalls++
	if f.isAncestorFn != nil {
		return f.isAncestorFn(commitA, commitB)
	}
	return f.reachable(commitB, commitA), nil
}

func (f *fakeBackend) Checkout(_ context.Context, branchName string) error {
	if f.failCheckout[branchName] {
		return fmt.Errorf("checkout of %s failed", branchName)
	}
	if _, ok := f.branches[branchName]; !ok {
		return tidygiterrors.NewBranchNotFoundError(branchName)
	}
	f.checkouts = append(f.checkouts, branchName)
	f.current = branchName
	return nil
}

func (f *fakeBackend) SafeDeleteBranch(_ context.Context, branchName string) error {
	branch, ok := f.branches[branchName]
	if !ok {
		return tidygiterrors.NewBranchNotFoundError(branchName)
	}
	if f.refuseDeletes[branchName] {
		return tidygiterrors.NewDeleteRefusedError(branchName, nil)
	}
	currentTip := f.branches[f.current].Tip
	if !f.reachable(currentTip, branch.Tip) {
		return tidygiterrors.NewDeleteRefusedError(branchName, nil)
	}
	delete(f.branches, branchName)
	f.deletions = append(f.deletions, branchName)
	return nil
}
