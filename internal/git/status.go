package git

import (
	"context"
	"fmt"
)

// IsWorkingTreeClean reports whether the working tree has no staged or
// unstaged changes. Untracked files do not count, a safe branch delete never
// touches them.
func (r *Repository) IsWorkingTreeClean(ctx context.Context) (bool, error) {
	output, err := r.runner.Run(ctx, "status", "--porcelain", "--untracked-files=no")
	if err != nil {
		return false, fmt.Errorf("failed to get status: %w", err)
	}
	return output == "", nil
}
