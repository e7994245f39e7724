package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tidygit.dev/tidygit/internal/engine"
	tidygiterrors "tidygit.dev/tidygit/internal/errors"
)

func TestExecute(t *testing.T) {
	chainBackend := func() *fakeBackend {
		return newFakeBackend("master").
			commit("c1").
			commit("c2", "c1").
			commit("c3", "c2").
			branch("master", "c3").
			branch("b1", "c2").
			branch("b2", "c1")
	}

	t.Run("executes plan in order and restores the starting branch", func(t *testing.T) {
		backend := chainBackend()
		ctx := context.Background()

		analysis, err := engine.Analyze(ctx, backend, engine.AnalyzeOptions{})
		require.NoError(t, err)

		var streamed []string
		result, err := engine.Execute(ctx, backend, analysis.Snapshot, analysis.Plan, engine.ExecuteOptions{
			OnResult: func(r engine.EntryResult) {
				streamed = append(streamed, r.Entry.Branch)
			},
		})
		require.NoError(t, err)

		require.Equal(t, []string{"b2", "b1"}, result.Deleted)
		require.Equal(t, []string{"b2", "b1"}, streamed)
		require.Equal(t, []string{"b1", "master"}, backend.checkouts[:2])
		require.True(t, result.RestoredToStart)
		require.Equal(t, "master", result.FinalBranch)
		require.Equal(t, "master", backend.current)
	})

	t.Run("refused delete aborts the remaining plan", func(t *testing.T) {
		backend := chainBackend()
		backend.refuseDeletes["b2"] = true
		ctx := context.Background()

		analysis, err := engine.Analyze(ctx, backend, engine.AnalyzeOptions{})
		require.NoError(t, err)

		result, err := engine.Execute(ctx, backend, analysis.Snapshot, analysis.Plan, engine.ExecuteOptions{})
		require.ErrorIs(t, err, tidygiterrors.ErrPlanStale)

		var stale *tidygiterrors.StalePlanError
		require.ErrorAs(t, err, &stale)
		require.Equal(t, "b2", stale.BranchName)
		require.Empty(t, stale.Completed)

		// b1 survives: forward progress stops at the first refusal
		require.Empty(t, result.Deleted)
		require.Contains(t, backend.branches, "b1")
		require.True(t, result.RestoredToStart)
	})

	t.Run("completed deletions are preserved across an abort", func(t *testing.T) {
		backend := chainBackend()
		backend.refuseDeletes["b1"] = true
		ctx := context.Background()

		analysis, err := engine.Analyze(ctx, backend, engine.AnalyzeOptions{})
		require.NoError(t, err)

		result, err := engine.Execute(ctx, backend, analysis.Snapshot, analysis.Plan, engine.ExecuteOptions{})
		require.ErrorIs(t, err, tidygiterrors.ErrPlanStale)

		var stale *tidygiterrors.StalePlanError
		require.ErrorAs(t, err, &stale)
		require.Equal(t, "b1", stale.BranchName)
		require.Equal(t, []string{"b2"}, stale.Completed)

		require.Equal(t, []string{"b2"}, result.Deleted)
		require.NotContains(t, backend.branches, "b2")
		require.Contains(t, backend.branches, "b1")
	})

	t.Run("failed checkout aborts without deleting", func(t *testing.T) {
		backend := chainBackend()
		backend.failCheckout["b1"] = true
		ctx := context.Background()

		analysis, err := engine.Analyze(ctx, backend, engine.AnalyzeOptions{})
		require.NoError(t, err)

		result, err := engine.Execute(ctx, backend, analysis.Snapshot, analysis.Plan, engine.ExecuteOptions{})
		require.ErrorIs(t, err, tidygiterrors.ErrPlanStale)
		require.Empty(t, result.Deleted)
		require.Contains(t, backend.branches, "b2")
	})

	t.Run("reports when the starting branch was itself deleted", func(t *testing.T) {
		backend := newFakeBackend("main").
			commit("c1").
			commit("c2", "c1").
			branch("main", "c2").
			branch("merged", "c1")
		backend.current = "merged"
		ctx := context.Background()

		analysis, err := engine.Analyze(ctx, backend, engine.AnalyzeOptions{})
		require.NoError(t, err)
		require.Equal(t, []string{"merged"}, analysis.Plan.Branches())

		result, err := engine.Execute(ctx, backend, analysis.Snapshot, analysis.Plan, engine.ExecuteOptions{})
		require.NoError(t, err)
		require.False(t, result.RestoredToStart)
		require.Equal(t, "main", result.FinalBranch)
	})

	t.Run("cancellation stops between entries", func(t *testing.T) {
		backend := chainBackend()
		ctx, cancel := context.WithCancel(context.Background())

		analysis, err := engine.Analyze(ctx, backend, engine.AnalyzeOptions{})
		require.NoError(t, err)

		cancel()
		result, err := engine.Execute(ctx, backend, analysis.Snapshot, analysis.Plan, engine.ExecuteOptions{})
		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, result.Deleted)
		// The working tree is back where the run began, not mid-checkout
		require.Equal(t, "master", backend.current)
	})
}
