package git

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

// IsAncestor reports whether commitA is reachable from commitB. Equal
// commits count as ancestors, the engine filters that case out before it
// asks.
func (r *Repository) IsAncestor(commitA, commitB string) (bool, error) {
	hashA := plumbing.NewHash(commitA)
	hashB := plumbing.NewHash(commitB)

	if hashA == hashB {
		return true, nil
	}

	ancestorCommit, err := r.CommitObject(hashA)
	if err != nil {
		return false, fmt.Errorf("failed to get commit %s: %w", commitA, err)
	}

	descendantCommit, err := r.CommitObject(hashB)
	if err != nil {
		return false, fmt.Errorf("failed to get commit %s: %w", commitB, err)
	}

	return ancestorCommit.IsAncestor(descendantCommit)
}
