// Package testhelpers provides testing utilities for tidygit, including a
// Git repository builder and custom assertions.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitRepo represents a Git repository for testing purposes.
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new Git repository in the specified directory.
// The initial branch is named master to match the most common established
// repository layout.
func NewGitRepo(dir string) (*GitRepo, error) {
	repo := &GitRepo{Dir: dir}

	cmd := exec.Command("git", "-c", "core.autocrlf=false", "-c", "core.fileMode=false", "init", dir, "-b", "master")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}

	// Configure Git user (required for commits)
	if err := repo.RunGitCommand("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.RunGitCommand("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}

	return repo, nil
}

// RunGitCommand executes a git command in the repository directory.
// Uses GIT_CONFIG_GLOBAL=/dev/null so the host's global config cannot leak
// into tests.
func (r *GitRepo) RunGitCommand(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if os.Getenv("DEBUG") == "" {
		cmd.Stdout = nil
		cmd.Stderr = nil
	}
	return cmd.Run()
}

// RunGitCommandAndGetOutput executes a git command and returns its output.
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git command failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// CreateChange creates a file change and commits it.
func (r *GitRepo) CreateChange(message string) error {
	fileName := strings.ReplaceAll(message, " ", "_") + ".txt"
	filePath := filepath.Join(r.Dir, fileName)
	if err := os.WriteFile(filePath, []byte(message+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := r.RunGitCommand("add", fileName); err != nil {
		return err
	}
	return r.RunGitCommand("commit", "-m", message)
}

// CreateBranch creates a branch at HEAD and checks it out.
func (r *GitRepo) CreateBranch(name string) error {
	return r.RunGitCommand("checkout", "-b", name)
}

// CreateBranchAt creates a branch at the given revision without checking it out.
func (r *GitRepo) CreateBranchAt(name, revision string) error {
	return r.RunGitCommand("branch", name, revision)
}

// Checkout checks out an existing branch.
func (r *GitRepo) Checkout(name string) error {
	return r.RunGitCommand("checkout", name)
}

// MergeBranch merges a branch into the current branch with a merge commit.
func (r *GitRepo) MergeBranch(name string) error {
	return r.RunGitCommand("merge", "--no-ff", "-m", "merge "+name, name)
}

// CurrentBranch returns the branch HEAD is on.
func (r *GitRepo) CurrentBranch() (string, error) {
	return r.RunGitCommandAndGetOutput("rev-parse", "--abbrev-ref", "HEAD")
}

// Revision returns the commit hash of a revision.
func (r *GitRepo) Revision(rev string) (string, error) {
	return r.RunGitCommandAndGetOutput("rev-parse", rev)
}

// ListBranches returns the local branch names, sorted.
func (r *GitRepo) ListBranches() ([]string, error) {
	output, err := r.RunGitCommandAndGetOutput("for-each-ref", "refs/heads/", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}
	if output == "" {
		return []string{}, nil
	}
	return strings.Split(output, "\n"), nil
}

// AddWorktree creates a linked worktree at path checked out on branch.
func (r *GitRepo) AddWorktree(path, branch string) error {
	return r.RunGitCommand("worktree", "add", path, branch)
}
