package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseWorktreePorcelain(t *testing.T) {
	t.Run("parses main and linked worktrees", func(t *testing.T) {
		output := "worktree /repo\n" +
			"HEAD 1111111111111111111111111111111111111111\n" +
			"branch refs/heads/master\n" +
			"\n" +
			"worktree /repo-feature\n" +
			"HEAD 2222222222222222222222222222222222222222\n" +
			"branch refs/heads/feature\n" +
			"\n"

		worktrees := parseWorktreePorcelain(output)
		require.Equal(t, []Worktree{
			{Path: "/repo", Branch: "master"},
			{Path: "/repo-feature", Branch: "feature"},
		}, worktrees)
	})

	t.Run("marks detached worktrees", func(t *testing.T) {
		output := "worktree /repo\n" +
			"HEAD 1111111111111111111111111111111111111111\n" +
			"branch refs/heads/main\n" +
			"\n" +
			"worktree /repo-bisect\n" +
			"HEAD 3333333333333333333333333333333333333333\n" +
			"detached\n"

		worktrees := parseWorktreePorcelain(output)
		require.Len(t, worktrees, 2)
		require.True(t, worktrees[1].Detached)
		require.Empty(t, worktrees[1].Branch)
	})

	t.Run("handles missing trailing blank line and CRLF", func(t *testing.T) {
		output := "worktree /repo\r\n" +
			"HEAD 1111111111111111111111111111111111111111\r\n" +
			"branch refs/heads/main\r\n" +
			"\r\n" +
			"worktree /repo-wip\r\n" +
			"HEAD 4444444444444444444444444444444444444444\r\n" +
			"branch refs/heads/wip"

		worktrees := parseWorktreePorcelain(output)
		require.Equal(t, []Worktree{
			{Path: "/repo", Branch: "main"},
			{Path: "/repo-wip", Branch: "wip"},
		}, worktrees)
	})

	t.Run("empty output yields no worktrees", func(t *testing.T) {
		require.Empty(t, parseWorktreePorcelain(""))
	})
}
