// Package errors provides sentinel errors and custom error types for the tidygit application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrDirtyWorkTree indicates that the working tree has uncommitted changes
	ErrDirtyWorkTree = errors.New("working tree has uncommitted changes")

	// ErrBranchNotFound indicates that a branch does not exist
	ErrBranchNotFound = errors.New("branch not found")

	// ErrDeleteRefused indicates that the backend refused a safe delete
	// because the branch is not fully merged into the current checkout
	ErrDeleteRefused = errors.New("delete refused")

	// ErrBackendUnavailable indicates that a listing or ancestry query failed
	// before any destructive step was taken
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrGraphInconsistency indicates that the commit graph reported
	// symmetric containment between two distinct tips
	ErrGraphInconsistency = errors.New("commit graph inconsistency")

	// ErrPlanStale indicates that a plan entry was refused during execution
	ErrPlanStale = errors.New("deletion plan is stale")
)

// BranchNotFoundError represents an error when a branch is not found
type BranchNotFoundError struct {
	BranchName string
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch %s does not exist", e.BranchName)
}

// Is returns true if the target error is ErrBranchNotFound
func (e *BranchNotFoundError) Is(target error) bool {
	return target == ErrBranchNotFound
}

// NewBranchNotFoundError creates a new BranchNotFoundError
func NewBranchNotFoundError(branchName string) *BranchNotFoundError {
	return &BranchNotFoundError{BranchName: branchName}
}

// DeleteRefusedError represents a safe delete that the backend rejected.
// This signals that the containment proof computed at analysis time no
// longer holds at execution time.
type DeleteRefusedError struct {
	BranchName string
	Err        error
}

func (e *DeleteRefusedError) Error() string {
	return fmt.Sprintf("safe delete of branch %s refused: branch is not fully merged", e.BranchName)
}

// Is returns true if the target error is ErrDeleteRefused
func (e *DeleteRefusedError) Is(target error) bool {
	return target == ErrDeleteRefused
}

func (e *DeleteRefusedError) Unwrap() error {
	return e.Err
}

// NewDeleteRefusedError creates a new DeleteRefusedError
func NewDeleteRefusedError(branchName string, err error) *DeleteRefusedError {
	return &DeleteRefusedError{BranchName: branchName, Err: err}
}

// GraphInconsistencyError reports two distinct branch tips that each claim
// to be an ancestor of the other. Ancestry over distinct commits is a strict
// partial order, so this can only happen if the graph is corrupt. It is
// always fatal and must never be guessed around.
type GraphInconsistencyError struct {
	BranchA string
	BranchB string
}

func (e *GraphInconsistencyError) Error() string {
	return fmt.Sprintf("commit graph inconsistency: branches %s and %s have distinct tips but contain each other", e.BranchA, e.BranchB)
}

// Is returns true if the target error is ErrGraphInconsistency
func (e *GraphInconsistencyError) Is(target error) bool {
	return target == ErrGraphInconsistency
}

// NewGraphInconsistencyError creates a new GraphInconsistencyError
func NewGraphInconsistencyError(branchA, branchB string) *GraphInconsistencyError {
	return &GraphInconsistencyError{BranchA: branchA, BranchB: branchB}
}

// StalePlanError is returned when execution of a deletion plan stops early
// because a checkout or safe delete was refused. Completed holds the
// branches that were already deleted; those deletions were individually
// safety-checked and are not rolled back.
type StalePlanError struct {
	BranchName string
	Completed  []string
	Err        error
}

func (e *StalePlanError) Error() string {
	msg := fmt.Sprintf("deletion plan went stale at branch %s", e.BranchName)
	if len(e.Completed) > 0 {
		msg += fmt.Sprintf(" (already deleted: %s)", strings.Join(e.Completed, ", "))
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Is returns true if the target error is ErrPlanStale
func (e *StalePlanError) Is(target error) bool {
	return target == ErrPlanStale
}

func (e *StalePlanError) Unwrap() error {
	return e.Err
}

// NewStalePlanError creates a new StalePlanError
func NewStalePlanError(branchName string, completed []string, err error) *StalePlanError {
	return &StalePlanError{BranchName: branchName, Completed: completed, Err: err}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
