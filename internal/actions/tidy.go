package actions

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tidygit.dev/tidygit/internal/config"
	"tidygit.dev/tidygit/internal/engine"
	tidygiterrors "tidygit.dev/tidygit/internal/errors"
	"tidygit.dev/tidygit/internal/runtime"
	"tidygit.dev/tidygit/internal/tui"
)

// TidyOptions contains options for the tidy action
type TidyOptions struct {
	// Yes skips the interactive branch selection and deletes everything the
	// plan proposes
	Yes bool
	// DryRun prints the plan without deleting anything
	DryRun bool
	// NoFetch skips fetching from remotes
	NoFetch bool
	// NoUpdate skips fast-forwarding tracking branches
	NoUpdate bool
	// Exclude holds extra protection patterns from the command line
	Exclude []string
}

// TidyResult contains the result of a tidy run
type TidyResult struct {
	Analysis *engine.Analysis
	Deleted  []string
}

// Tidy is the main entry point: refresh the repository, analyze which
// branches are fully contained elsewhere, and safely delete the ones the
// user confirms.
func Tidy(ctx *runtime.Context, opts TidyOptions) (*TidyResult, error) {
	splog := ctx.Splog
	stdctx := ctx.Ctx

	if err := checkPreconditions(stdctx, ctx); err != nil {
		return nil, err
	}

	if !opts.NoFetch {
		if err := fetchRemotes(stdctx, ctx); err != nil {
			return nil, err
		}
	}

	if !opts.NoUpdate {
		if err := UpdateTrackingBranches(ctx); err != nil {
			return nil, err
		}
	}

	patterns, err := protectionPatterns(stdctx, ctx, opts.Exclude)
	if err != nil {
		return nil, err
	}

	analysis, err := engine.Analyze(stdctx, ctx.Backend, engine.AnalyzeOptions{
		ProtectedPatterns: patterns,
	})
	if err != nil {
		return nil, err
	}

	result := &TidyResult{Analysis: analysis}

	reportKept(splog, analysis)

	if analysis.Plan.IsEmpty() {
		splog.Info("No branches to tidy. 🌳")
		return result, nil
	}

	if opts.DryRun {
		printPlan(splog, analysis.Plan)
		return result, nil
	}

	plan := analysis.Plan
	if !opts.Yes {
		if err := chooseRetained(stdctx, splog, analysis); err != nil {
			return nil, err
		}

		plan, err = selectBranches(splog, analysis)
		if err != nil {
			return nil, err
		}
		if plan.IsEmpty() {
			splog.Info("Nothing selected, nothing deleted.")
			return result, nil
		}
	}

	deleted, err := executePlan(stdctx, ctx, analysis, plan)
	result.Deleted = deleted
	if err != nil {
		return result, err
	}

	splog.Info("Deleted %d branches. 🌳", len(deleted))
	return result, nil
}

// checkPreconditions refuses to run on a dirty working tree or a detached
// HEAD. Deleting branches moves HEAD around, so both must be settled first.
func checkPreconditions(stdctx context.Context, ctx *runtime.Context) error {
	clean, err := ctx.Repo.IsWorkingTreeClean(stdctx)
	if err != nil {
		return err
	}
	if !clean {
		return fmt.Errorf("%w: commit or stash your changes first", tidygiterrors.ErrDirtyWorkTree)
	}

	if _, err := ctx.Repo.GetCurrentBranch(); err != nil {
		if errors.Is(err, tidygiterrors.ErrNotOnBranch) {
			return fmt.Errorf("%w: check out a branch first", tidygiterrors.ErrNotOnBranch)
		}
		return err
	}

	return nil
}

func fetchRemotes(stdctx context.Context, ctx *runtime.Context) error {
	hasRemotes, err := ctx.Repo.HasRemotes()
	if err != nil {
		return err
	}
	if !hasRemotes {
		ctx.Splog.Debug("No remotes configured, skipping fetch")
		return nil
	}

	ctx.Splog.Info("Fetching remotes...")
	return ctx.Repo.Fetch(stdctx)
}

// protectionPatterns merges every protection source: the repo config file,
// the git config key, and the command line. The trunk needs no pattern, the
// engine always protects the default branch.
func protectionPatterns(stdctx context.Context, ctx *runtime.Context, extra []string) ([]string, error) {
	return config.ProtectedPatterns(stdctx, ctx.RepoRoot, ctx.Repo.Runner(), extra)
}

func reportKept(splog *tui.Splog, analysis *engine.Analysis) {
	for _, name := range analysis.Classification.WorktreeLocked {
		splog.Debug("Skipping %s, checked out in a worktree", name)
	}
	for _, name := range analysis.Containment.Kept {
		splog.Debug("Keeping %s, it has commits found nowhere else", name)
	}
}

func printPlan(splog *tui.Splog, plan *engine.Plan) {
	splog.Info("Would delete %d branches:", len(plan.Entries))
	for _, entry := range plan.Entries {
		splog.Info("  %s", describeEntry(entry))
	}
}

func describeEntry(entry engine.PlanEntry) string {
	return fmt.Sprintf("%s (%s, kept in %s)", entry.Branch, entry.Reason, entry.Pivot)
}

// chooseRetained lets the user pick which member of each duplicate group
// survives. Groups pinned to a protected member are not offered.
func chooseRetained(stdctx context.Context, splog *tui.Splog, analysis *engine.Analysis) error {
	for _, group := range analysis.Classification.DuplicateGroups {
		if group.RetainedForced || len(group.Members) < 2 {
			continue
		}

		message := fmt.Sprintf("Branches %v point at the same commit. Keep which one?", group.Members)
		choice, err := tui.PromptSelect(message, group.Members, group.Retained)
		if err != nil {
			if errors.Is(err, tui.ErrInteractiveDisabled) {
				splog.Debug("Keeping %s, prompts are disabled", group.Retained)
				continue
			}
			return err
		}
		if choice == group.Retained {
			continue
		}
		if err := analysis.RetainDuplicate(stdctx, choice); err != nil {
			return err
		}
	}
	return nil
}

// selectBranches lets the user choose which planned deletions to apply.
// Everything starts selected; deselecting a branch keeps it.
func selectBranches(splog *tui.Splog, analysis *engine.Analysis) (*engine.Plan, error) {
	options := make([]string, 0, len(analysis.Plan.Entries))
	byLabel := map[string]string{}
	for _, entry := range analysis.Plan.Entries {
		label := describeEntry(entry)
		options = append(options, label)
		byLabel[label] = entry.Branch
	}

	selected, err := tui.PromptBranchMultiSelect("Select branches to delete:", options)
	if err != nil {
		if errors.Is(err, tui.ErrInteractiveDisabled) {
			splog.Warn("Interactive selection unavailable, pass --yes to delete without prompting")
		}
		return nil, err
	}

	keep := map[string]bool{}
	for _, label := range selected {
		keep[byLabel[label]] = true
	}
	return analysis.Plan.Restrict(keep), nil
}

// executePlan runs the deletion plan, with a progress TUI when a terminal
// is available and plain logging otherwise.
func executePlan(stdctx context.Context, ctx *runtime.Context, analysis *engine.Analysis, plan *engine.Plan) ([]string, error) {
	items := make([]tui.DeleteItem, 0, len(plan.Entries))
	for _, entry := range plan.Entries {
		items = append(items, tui.DeleteItem{
			BranchName: entry.Branch,
			Pivot:      entry.Pivot,
			Reason:     entry.Reason.String(),
			Status:     "pending",
		})
	}

	if !tui.IsTTY() {
		var deleted []string
		result, err := engine.Execute(stdctx, ctx.Backend, analysis.Snapshot, plan, engine.ExecuteOptions{
			OnResult: func(r engine.EntryResult) {
				if r.Err != nil {
					ctx.Splog.Info("  ✗ %s refused: %v", r.Entry.Branch, r.Err)
					return
				}
				ctx.Splog.Info("  ✓ %s deleted (%s, kept in %s)", r.Entry.Branch, r.Entry.Reason, r.Entry.Pivot)
				deleted = append(deleted, r.Entry.Branch)
			},
		})
		if result != nil {
			deleted = result.Deleted
		}
		return deleted, err
	}

	// Execution runs in the background and streams entry results to the
	// TUI; each tea.Cmd blocks until its entry is done. Quitting the TUI
	// cancels execution between entries.
	execCtx, cancel := context.WithCancel(stdctx)
	defer cancel()

	results := make(chan engine.EntryResult)
	var execResult *engine.ExecuteResult
	var execErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(results)
		execResult, execErr = engine.Execute(execCtx, ctx.Backend, analysis.Snapshot, plan, engine.ExecuteOptions{
			OnResult: func(r engine.EntryResult) { results <- r },
		})
	}()

	deleteFunc := func(idx int) tea.Cmd {
		return func() tea.Msg {
			r, ok := <-results
			if !ok {
				return tui.DeleteResultMsg{Idx: idx, Error: fmt.Errorf("execution stopped")}
			}
			return tui.DeleteResultMsg{Idx: idx, Error: r.Err}
		}
	}

	ctx.Splog.SetQuiet(true)
	tuiErr := tui.RunDeleteTUI(items, deleteFunc)
	ctx.Splog.SetQuiet(false)

	cancel()
	for range results {
		// drain anything left so the executor can finish
	}
	<-done

	if execErr != nil && !errors.Is(execErr, context.Canceled) {
		if execResult != nil {
			return execResult.Deleted, execErr
		}
		return nil, execErr
	}
	if tuiErr != nil {
		return execResult.Deleted, tuiErr
	}
	return execResult.Deleted, nil
}
