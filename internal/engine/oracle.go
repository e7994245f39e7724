package engine

import (
	"context"
	"fmt"

	tidygiterrors "tidygit.dev/tidygit/internal/errors"
)

// AncestryOracle answers "is commit a an ancestor of commit b" through the
// backend, memoizing every answer for the duration of one run. The snapshot
// is immutable while the analysis runs, so a cached answer never goes stale.
type AncestryOracle struct {
	backend Backend
	cache   map[[2]string]bool
}

// NewAncestryOracle creates an oracle bound to a backend.
func NewAncestryOracle(backend Backend) *AncestryOracle {
	return &AncestryOracle{
		backend: backend,
		cache:   make(map[[2]string]bool),
	}
}

// IsAncestor reports whether commitA is an ancestor of commitB, asking the
// backend at most once per ordered pair.
func (o *AncestryOracle) IsAncestor(ctx context.Context, commitA, commitB string) (bool, error) {
	if commitA == commitB {
		return true, nil
	}

	key := [2]string{commitA, commitB}
	if cached, ok := o.cache[key]; ok {
		return cached, nil
	}

	result, err := o.backend.IsAncestor(ctx, commitA, commitB)
	if err != nil {
		return false, fmt.Errorf("%w: ancestry query failed: %v", tidygiterrors.ErrBackendUnavailable, err)
	}

	o.cache[key] = result
	return result, nil
}

// CachedQueries returns how many distinct ordered pairs have been resolved.
func (o *AncestryOracle) CachedQueries() int {
	return len(o.cache)
}
