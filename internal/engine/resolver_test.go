package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tidygit.dev/tidygit/internal/engine"
	tidygiterrors "tidygit.dev/tidygit/internal/errors"
)

func analyzeFixture(t *testing.T, backend *fakeBackend, patterns []string) (*engine.Snapshot, *engine.Classification, *engine.Containment) {
	t.Helper()
	ctx := context.Background()

	snapshot, err := engine.TakeSnapshot(ctx, backend)
	require.NoError(t, err)

	cls, err := engine.Classify(snapshot, patterns)
	require.NoError(t, err)

	containment, err := engine.Resolve(ctx, snapshot, cls, engine.NewAncestryOracle(backend))
	require.NoError(t, err)

	return snapshot, cls, containment
}

func TestResolve(t *testing.T) {
	t.Run("finds containers along an ancestry chain", func(t *testing.T) {
		// master -> b1 -> b2, with master containing both
		backend := newFakeBackend("master").
			commit("c1").
			commit("c2", "c1").
			commit("c3", "c2").
			branch("master", "c3").
			branch("b1", "c2").
			branch("b2", "c1")

		_, _, containment := analyzeFixture(t, backend, nil)

		require.Len(t, containment.Deletables, 2)

		b1, ok := containment.Deletable("b1")
		require.True(t, ok)
		require.Equal(t, []string{"master"}, b1.Containers)

		b2, ok := containment.Deletable("b2")
		require.True(t, ok)
		require.Equal(t, []string{"b1", "master"}, b2.Containers)
	})

	t.Run("branch without containers is kept and reported", func(t *testing.T) {
		backend := newFakeBackend("master").
			commit("c1").
			commit("c2", "c1").
			commit("d1", "c1").
			branch("master", "c2").
			branch("topic2", "d1")

		_, _, containment := analyzeFixture(t, backend, nil)

		require.Empty(t, containment.Deletables)
		require.Equal(t, []string{"topic2"}, containment.Kept)
	})

	t.Run("containers are ordered nearest first", func(t *testing.T) {
		// chain: base -> mid -> top, candidate at base
		backend := newFakeBackend("top").
			commit("c1").
			commit("c2", "c1").
			commit("c3", "c2").
			branch("top", "c3").
			branch("mid", "c2").
			branch("aaa", "c1")

		_, _, containment := analyzeFixture(t, backend, nil)

		// mid is nearer to aaa than top even though top sorts later; the
		// protected container only wins among incomparable peers
		aaa, ok := containment.Deletable("aaa")
		require.True(t, ok)
		require.Equal(t, []string{"mid", "top"}, aaa.Containers)
	})

	t.Run("protected container wins among incomparable containers", func(t *testing.T) {
		// two divergent containers both holding the candidate
		backend := newFakeBackend("main").
			commit("c1").
			commit("m1", "c1").
			commit("f1", "c1").
			branch("main", "m1").
			branch("fork", "f1").
			branch("candidate", "c1")

		_, _, containment := analyzeFixture(t, backend, nil)

		candidate, ok := containment.Deletable("candidate")
		require.True(t, ok)
		require.Equal(t, []string{"main", "fork"}, candidate.Containers)
	})

	t.Run("symmetric containment fails loudly", func(t *testing.T) {
		backend := newFakeBackend("main").
			commit("c1").
			commit("c2", "c1").
			branch("main", "c1").
			branch("broken", "c2")
		// A lying oracle: every pair claims ancestry in both directions
		backend.isAncestorFn = func(_, _ string) (bool, error) { return true, nil }

		ctx := context.Background()
		snapshot, err := engine.TakeSnapshot(ctx, backend)
		require.NoError(t, err)
		cls, err := engine.Classify(snapshot, nil)
		require.NoError(t, err)

		_, err = engine.Resolve(ctx, snapshot, cls, engine.NewAncestryOracle(backend))
		require.ErrorIs(t, err, tidygiterrors.ErrGraphInconsistency)
	})

	t.Run("ancestry queries are memoized per ordered pair", func(t *testing.T) {
		backend := newFakeBackend("master").
			commit("c1").
			commit("c2", "c1").
			commit("c3", "c2").
			branch("master", "c3").
			branch("b1", "c2").
			branch("b2", "c1")

		ctx := context.Background()
		snapshot, err := engine.TakeSnapshot(ctx, backend)
		require.NoError(t, err)
		cls, err := engine.Classify(snapshot, nil)
		require.NoError(t, err)

		oracle := engine.NewAncestryOracle(backend)
		_, err = engine.Resolve(ctx, snapshot, cls, oracle)
		require.NoError(t, err)

		require.Equal(t, oracle.CachedQueries(), backend.ancestryCalls)

		// Resolving again over the same oracle costs no new backend calls
		before := backend.ancestryCalls
		_, err = engine.Resolve(ctx, snapshot, cls, oracle)
		require.NoError(t, err)
		require.Equal(t, before, backend.ancestryCalls)
	})
}
