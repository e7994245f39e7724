package testhelpers

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// ExpectBranches asserts that the repository has exactly the expected
// branches, ignoring order.
func ExpectBranches(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	branches, err := repo.ListBranches()
	require.NoError(t, err, "Failed to list branches")

	sorted := append([]string{}, expected...)
	sort.Strings(sorted)
	sort.Strings(branches)

	require.Equal(t, sorted, branches, "Branches do not match")
}

// ExpectCurrentBranch asserts which branch HEAD is on.
func ExpectCurrentBranch(t *testing.T, repo *GitRepo, expected string) {
	t.Helper()

	current, err := repo.CurrentBranch()
	require.NoError(t, err, "Failed to get current branch")
	require.Equal(t, expected, current)
}
