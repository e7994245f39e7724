package engine

import (
	"context"

	tidygiterrors "tidygit.dev/tidygit/internal/errors"
)

// ExecuteOptions tunes plan execution.
type ExecuteOptions struct {
	// OnResult, when set, receives each entry's outcome as it happens so a
	// presentation layer can stream progress
	OnResult func(EntryResult)
}

// ExecuteResult reports what a plan execution actually did.
type ExecuteResult struct {
	// Results holds one entry per attempted plan step, in order
	Results []EntryResult
	// Deleted holds the branches that were successfully deleted
	Deleted []string
	// FinalBranch is the branch checked out when execution finished
	FinalBranch string
	// RestoredToStart is true when FinalBranch is the branch that was
	// checked out at snapshot time. It is false when that branch was itself
	// deleted by the plan or could not be checked out again.
	RestoredToStart bool
}

// Execute applies a deletion plan entry by entry: check out the pivot, then
// issue a safe delete. The plan is an ordering hint, not a substitute for
// the backend's own safety check; a refused delete or failed checkout means
// the plan went stale, and execution aborts with a StalePlanError rather
// than ever falling back to a forced delete. Completed deletions are not
// rolled back; each one was safety-checked individually.
//
// Context cancellation is honored between entries, so an interrupt never
// leaves the working tree mid-checkout. Whatever happens, Execute attempts
// to land back on the branch that was checked out when the snapshot was
// taken.
func Execute(ctx context.Context, backend Backend, snapshot *Snapshot, plan *Plan, opts ExecuteOptions) (*ExecuteResult, error) {
	result := &ExecuteResult{}
	current := snapshot.CurrentBranch
	deleted := make(map[string]bool)

	var execErr error
	for _, entry := range plan.Entries {
		if err := ctx.Err(); err != nil {
			execErr = err
			break
		}

		if current != entry.Pivot {
			if err := backend.Checkout(ctx, entry.Pivot); err != nil {
				entryResult := EntryResult{Entry: entry, Err: err}
				result.Results = append(result.Results, entryResult)
				if opts.OnResult != nil {
					opts.OnResult(entryResult)
				}
				execErr = tidygiterrors.NewStalePlanError(entry.Branch, result.Deleted, err)
				break
			}
			current = entry.Pivot
		}

		if err := backend.SafeDeleteBranch(ctx, entry.Branch); err != nil {
			entryResult := EntryResult{Entry: entry, Err: err}
			result.Results = append(result.Results, entryResult)
			if opts.OnResult != nil {
				opts.OnResult(entryResult)
			}
			execErr = tidygiterrors.NewStalePlanError(entry.Branch, result.Deleted, err)
			break
		}

		deleted[entry.Branch] = true
		result.Deleted = append(result.Deleted, entry.Branch)
		entryResult := EntryResult{Entry: entry}
		result.Results = append(result.Results, entryResult)
		if opts.OnResult != nil {
			opts.OnResult(entryResult)
		}
	}

	result.FinalBranch = current
	if current == snapshot.CurrentBranch {
		result.RestoredToStart = true
	} else if !deleted[snapshot.CurrentBranch] {
		// Restore with a fresh context: even a canceled run must not leave
		// the workspace on an arbitrary pivot when the start branch survives
		if err := backend.Checkout(context.WithoutCancel(ctx), snapshot.CurrentBranch); err == nil {
			result.FinalBranch = snapshot.CurrentBranch
			result.RestoredToStart = true
		}
	}

	return result, execErr
}
