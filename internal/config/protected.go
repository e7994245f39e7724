package config

import (
	"context"
	"strings"

	"tidygit.dev/tidygit/internal/git"
)

// GitConfigKey is the git config key holding extra protection patterns.
// Multiple values and comma-separated lists are both accepted, so
// `git config --add tidygit.protected-branches release/*` and a single
// comma-joined value behave the same.
const GitConfigKey = "tidygit.protected-branches"

// ProtectedPatterns gathers branch protection patterns from every source:
// the repo config file, the git config key, and any extra patterns given on
// the command line. Duplicates are dropped, first occurrence wins.
func ProtectedPatterns(ctx context.Context, repoRoot string, runner *git.CommandRunner, extra []string) ([]string, error) {
	fromFile, err := GetProtectedBranches(repoRoot)
	if err != nil {
		return nil, err
	}

	var patterns []string
	seen := map[string]bool{}
	add := func(pattern string) {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" || seen[pattern] {
			return
		}
		seen[pattern] = true
		patterns = append(patterns, pattern)
	}

	for _, p := range fromFile {
		add(p)
	}
	for _, p := range gitConfigPatterns(ctx, runner) {
		add(p)
	}
	for _, p := range extra {
		add(p)
	}

	return patterns, nil
}

// gitConfigPatterns reads the multi-valued git config key. A missing key is
// not an error, git exits non-zero for it.
func gitConfigPatterns(ctx context.Context, runner *git.CommandRunner) []string {
	values, err := runner.RunLines(ctx, "config", "--get-all", GitConfigKey)
	if err != nil {
		return nil
	}

	var patterns []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			patterns = append(patterns, part)
		}
	}
	return patterns
}
