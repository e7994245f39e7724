package runtime

import (
	"context"
	"fmt"

	"tidygit.dev/tidygit/internal/config"
	"tidygit.dev/tidygit/internal/git"
	"tidygit.dev/tidygit/internal/tui"
)

// Context provides access to the repository and output for commands
type Context struct {
	Repo     *git.Repository
	Backend  *git.Backend
	Splog    *tui.Splog
	RepoRoot string

	// Ctx is the context for the whole run. The CLI wires it to signal
	// handling so an interrupt cancels git commands and plan execution.
	Ctx context.Context
}

// NewContext creates a new context around an open repository with
// console-only logging.
func NewContext(repo *git.Repository) *Context {
	backend := git.NewBackend(repo)
	repoRoot := repo.GetRepoRoot()

	if trunk, err := config.GetTrunkOverride(repoRoot); err == nil && trunk != "" {
		backend.SetTrunkOverride(trunk)
	}

	return &Context{
		Repo:     repo,
		Backend:  backend,
		Splog:    tui.NewSplog(),
		RepoRoot: repoRoot,
		Ctx:      context.Background(),
	}
}

// GetContext opens the repository containing the current directory and
// builds the command context around it. The given context carries through
// to every git operation of the run.
func GetContext(runCtx context.Context) (*Context, error) {
	repoRoot, err := git.GetRepoRoot()
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	repo, err := git.OpenRepository(repoRoot)
	if err != nil {
		return nil, err
	}

	ctx := NewContext(repo)
	if runCtx != nil {
		ctx.Ctx = runCtx
	}
	if splog, err := tui.NewSplogWithLogFile(tui.GetLogFilePath()); err == nil {
		ctx.Splog = splog
	}
	return ctx, nil
}
