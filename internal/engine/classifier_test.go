package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tidygit.dev/tidygit/internal/engine"
)

func TestClassify(t *testing.T) {
	t.Run("default branch is always protected", func(t *testing.T) {
		backend := newFakeBackend("master").
			commit("c1").
			commit("c2", "c1").
			branch("master", "c1").
			branch("topic", "c2")

		snapshot, err := engine.TakeSnapshot(context.Background(), backend)
		require.NoError(t, err)

		cls, err := engine.Classify(snapshot, nil)
		require.NoError(t, err)

		require.Equal(t, []string{"master"}, cls.Protected)
		require.True(t, cls.IsProtected("master"))
		require.Equal(t, []string{"topic"}, cls.Analyzable)
	})

	t.Run("patterns protect by exact name and glob", func(t *testing.T) {
		backend := newFakeBackend("main").
			commit("c1").
			branch("main", "c1").
			branch("develop", "c1").
			branch("release/1.0", "c1").
			branch("release/2.0", "c1").
			branch("topic", "c1")

		snapshot, err := engine.TakeSnapshot(context.Background(), backend)
		require.NoError(t, err)

		cls, err := engine.Classify(snapshot, []string{"develop", "release/*"})
		require.NoError(t, err)

		require.Equal(t, []string{"develop", "main", "release/1.0", "release/2.0"}, cls.Protected)
		require.False(t, cls.IsProtected("topic"))
	})

	t.Run("rejects malformed glob patterns", func(t *testing.T) {
		backend := newFakeBackend("main").
			commit("c1").
			branch("main", "c1").
			branch("topic", "c1")

		snapshot, err := engine.TakeSnapshot(context.Background(), backend)
		require.NoError(t, err)

		_, err = engine.Classify(snapshot, []string{"release/["})
		require.Error(t, err)
	})

	t.Run("worktree-locked branches are removed before duplicate detection", func(t *testing.T) {
		backend := newFakeBackend("main").
			commit("c1").
			commit("c2", "c1").
			branch("main", "c1").
			branch("locked", "c2").
			branch("twin", "c2").
			lockWorktree("locked")

		snapshot, err := engine.TakeSnapshot(context.Background(), backend)
		require.NoError(t, err)

		cls, err := engine.Classify(snapshot, nil)
		require.NoError(t, err)

		// locked shares a tip with twin, but it left the analysis before
		// grouping, so twin is an ordinary analyzable branch
		require.Equal(t, []string{"locked"}, cls.WorktreeLocked)
		require.Empty(t, cls.DuplicateGroups)
		require.Equal(t, []string{"twin"}, cls.Analyzable)
	})

	t.Run("duplicate groups retain the lexically first member", func(t *testing.T) {
		backend := newFakeBackend("main").
			commit("c1").
			commit("c2", "c1").
			branch("main", "c1").
			branch("zeta", "c2").
			branch("alpha", "c2").
			branch("mid", "c2")

		snapshot, err := engine.TakeSnapshot(context.Background(), backend)
		require.NoError(t, err)

		cls, err := engine.Classify(snapshot, nil)
		require.NoError(t, err)

		require.Len(t, cls.DuplicateGroups, 1)
		group := cls.DuplicateGroups[0]
		require.Equal(t, []string{"alpha", "mid", "zeta"}, group.Members)
		require.Equal(t, "alpha", group.Retained)
		require.False(t, group.RetainedForced)
		require.Equal(t, []string{"alpha"}, cls.Analyzable)
	})

	t.Run("protected member forces itself as the retained member", func(t *testing.T) {
		backend := newFakeBackend("main").
			commit("c1").
			branch("main", "c1").
			branch("aaa", "c1").
			branch("bbb", "c1")

		snapshot, err := engine.TakeSnapshot(context.Background(), backend)
		require.NoError(t, err)

		cls, err := engine.Classify(snapshot, nil)
		require.NoError(t, err)

		require.Len(t, cls.DuplicateGroups, 1)
		group := cls.DuplicateGroups[0]
		require.Equal(t, "main", group.Retained)
		require.True(t, group.RetainedForced)
		// aaa and bbb are deletable duplicates, not analyzable branches
		require.Empty(t, cls.Analyzable)
	})

	t.Run("retained member can be overridden unless forced", func(t *testing.T) {
		backend := newFakeBackend("main").
			commit("c1").
			commit("c2", "c1").
			branch("main", "c1").
			branch("alpha", "c2").
			branch("beta", "c2")

		snapshot, err := engine.TakeSnapshot(context.Background(), backend)
		require.NoError(t, err)

		cls, err := engine.Classify(snapshot, nil)
		require.NoError(t, err)
		require.Equal(t, "alpha", cls.DuplicateGroups[0].Retained)

		err = cls.RetainDuplicate("beta")
		require.NoError(t, err)
		require.Equal(t, "beta", cls.DuplicateGroups[0].Retained)
		require.Equal(t, []string{"beta"}, cls.Analyzable)

		err = cls.RetainDuplicate("nosuch")
		require.Error(t, err)
	})

	t.Run("forced retained member cannot be overridden", func(t *testing.T) {
		backend := newFakeBackend("main").
			commit("c1").
			branch("main", "c1").
			branch("twin", "c1")

		snapshot, err := engine.TakeSnapshot(context.Background(), backend)
		require.NoError(t, err)

		cls, err := engine.Classify(snapshot, nil)
		require.NoError(t, err)

		err = cls.RetainDuplicate("twin")
		require.Error(t, err)
		require.Equal(t, "main", cls.DuplicateGroups[0].Retained)
	})

	t.Run("classification is deterministic across runs", func(t *testing.T) {
		build := func() *fakeBackend {
			return newFakeBackend("main").
				commit("c1").
				commit("c2", "c1").
				commit("c3", "c2").
				branch("main", "c1").
				branch("b", "c2").
				branch("a", "c2").
				branch("c", "c3")
		}

		first, err := engine.TakeSnapshot(context.Background(), build())
		require.NoError(t, err)
		second, err := engine.TakeSnapshot(context.Background(), build())
		require.NoError(t, err)

		clsFirst, err := engine.Classify(first, nil)
		require.NoError(t, err)
		clsSecond, err := engine.Classify(second, nil)
		require.NoError(t, err)

		require.Equal(t, clsFirst.Protected, clsSecond.Protected)
		require.Equal(t, clsFirst.DuplicateGroups, clsSecond.DuplicateGroups)
		require.Equal(t, clsFirst.Analyzable, clsSecond.Analyzable)
	})
}
