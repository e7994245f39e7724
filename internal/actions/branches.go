package actions

import (
	"strings"

	"tidygit.dev/tidygit/internal/engine"
	"tidygit.dev/tidygit/internal/runtime"
)

// BranchesOptions contains options for the branches listing
type BranchesOptions struct {
	// Exclude holds extra protection patterns from the command line
	Exclude []string
}

// Branches analyzes the repository and prints every local branch with its
// classification, without deleting anything.
func Branches(ctx *runtime.Context, opts BranchesOptions) error {
	splog := ctx.Splog
	stdctx := ctx.Ctx

	patterns, err := protectionPatterns(stdctx, ctx, opts.Exclude)
	if err != nil {
		return err
	}

	analysis, err := engine.Analyze(stdctx, ctx.Backend, engine.AnalyzeOptions{
		ProtectedPatterns: patterns,
	})
	if err != nil {
		return err
	}

	labels := branchLabels(analysis)

	for _, branch := range analysis.Snapshot.Branches {
		marker := " "
		if branch.Name == analysis.Snapshot.CurrentBranch {
			marker = "*"
		}
		label := labels[branch.Name]
		if label == "" {
			splog.Info("%s %s", marker, branch.Name)
			continue
		}
		splog.Info("%s %s  %s", marker, branch.Name, label)
	}

	return nil
}

// branchLabels maps each branch to a one-line classification.
func branchLabels(analysis *engine.Analysis) map[string]string {
	labels := map[string]string{}

	for _, name := range analysis.Classification.Protected {
		labels[name] = "(protected)"
	}
	for _, name := range analysis.Classification.WorktreeLocked {
		labels[name] = "(checked out in a worktree)"
	}
	for _, group := range analysis.Classification.DuplicateGroups {
		for _, member := range group.Members {
			if member != group.Retained && labels[member] == "" {
				labels[member] = "(duplicate of " + group.Retained + ")"
			}
		}
	}
	for _, name := range analysis.Containment.Kept {
		labels[name] = "(has unique commits)"
	}
	for _, deletable := range analysis.Containment.Deletables {
		labels[deletable.Name] = "(contained in " + strings.Join(deletable.Containers, ", ") + ")"
	}

	return labels
}
