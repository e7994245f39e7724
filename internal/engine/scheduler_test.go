package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tidygit.dev/tidygit/internal/engine"
)

func scheduleFixture(t *testing.T, backend *fakeBackend, patterns []string) (*engine.Classification, *engine.Plan) {
	t.Helper()
	_, cls, containment := analyzeFixture(t, backend, patterns)

	plan, err := engine.Schedule(cls, containment)
	require.NoError(t, err)
	return cls, plan
}

func TestSchedule(t *testing.T) {
	t.Run("chain deletes bottom-up with nearest pivots", func(t *testing.T) {
		// master contains b1, b1 contains b2
		backend := newFakeBackend("master").
			commit("c1").
			commit("c2", "c1").
			commit("c3", "c2").
			branch("master", "c3").
			branch("b1", "c2").
			branch("b2", "c1")

		_, plan := scheduleFixture(t, backend, nil)

		require.Equal(t, []engine.PlanEntry{
			{Branch: "b2", Pivot: "b1", Reason: engine.ReasonContained},
			{Branch: "b1", Pivot: "master", Reason: engine.ReasonContained},
		}, plan.Entries)
	})

	t.Run("duplicate group schedules all but the retained member first", func(t *testing.T) {
		backend := newFakeBackend("master").
			commit("c1").
			commit("c2", "c1").
			branch("master", "c1").
			branch("dup1", "c2").
			branch("dup2", "c2").
			branch("dup3", "c2")

		_, plan := scheduleFixture(t, backend, nil)

		// dup1 is retained; it has no container, so it is kept and the plan
		// holds exactly the other two members pivoting on it
		require.Equal(t, []engine.PlanEntry{
			{Branch: "dup2", Pivot: "dup1", Reason: engine.ReasonDuplicate},
			{Branch: "dup3", Pivot: "dup1", Reason: engine.ReasonDuplicate},
		}, plan.Entries)
	})

	t.Run("kept branches appear nowhere in the plan", func(t *testing.T) {
		backend := newFakeBackend("master").
			commit("c1").
			commit("c2", "c1").
			commit("d1", "c1").
			branch("master", "c2").
			branch("topic2", "d1")

		_, plan := scheduleFixture(t, backend, nil)
		require.True(t, plan.IsEmpty())
	})

	t.Run("protected branches are never deleted", func(t *testing.T) {
		backend := newFakeBackend("main").
			commit("c1").
			commit("c2", "c1").
			branch("main", "c2").
			branch("develop", "c1").
			branch("feature", "c1")

		_, plan := scheduleFixture(t, backend, []string{"develop"})

		for _, entry := range plan.Entries {
			require.NotEqual(t, "main", entry.Branch)
			require.NotEqual(t, "develop", entry.Branch)
		}
		// develop is protected even though main contains it
		require.Equal(t, []string{"feature"}, plan.Branches())
	})

	t.Run("worktree-locked branches appear neither as branch nor pivot", func(t *testing.T) {
		backend := newFakeBackend("main").
			commit("c1").
			commit("c2", "c1").
			branch("main", "c2").
			branch("locked", "c1").
			branch("feature", "c1").
			lockWorktree("locked")

		_, plan := scheduleFixture(t, backend, nil)

		for _, entry := range plan.Entries {
			require.NotEqual(t, "locked", entry.Branch)
			require.NotEqual(t, "locked", entry.Pivot)
		}
		require.Equal(t, []string{"feature"}, plan.Branches())
	})

	t.Run("every pivot is still present when its entry runs", func(t *testing.T) {
		backend := newFakeBackend("master").
			commit("c1").
			commit("c2", "c1").
			commit("c3", "c2").
			commit("c4", "c3").
			branch("master", "c4").
			branch("a", "c3").
			branch("b", "c2").
			branch("c", "c1")

		_, plan := scheduleFixture(t, backend, nil)

		deleted := map[string]bool{}
		for _, entry := range plan.Entries {
			require.False(t, deleted[entry.Pivot], "pivot %s deleted before %s", entry.Pivot, entry.Branch)
			require.NotEqual(t, entry.Branch, entry.Pivot)
			deleted[entry.Branch] = true
		}
	})

	t.Run("plan is identical on repeated runs", func(t *testing.T) {
		build := func() *fakeBackend {
			return newFakeBackend("main").
				commit("c1").
				commit("c2", "c1").
				commit("c3", "c2").
				commit("d1", "c1").
				branch("main", "c3").
				branch("stale", "c2").
				branch("older", "c1").
				branch("twin1", "d1").
				branch("twin2", "d1")
		}

		_, first := scheduleFixture(t, build(), nil)
		_, second := scheduleFixture(t, build(), nil)
		require.Equal(t, first.Entries, second.Entries)
		require.NotEmpty(t, first.Entries)
	})

	t.Run("restrict drops unselected branches and keeps order", func(t *testing.T) {
		backend := newFakeBackend("master").
			commit("c1").
			commit("c2", "c1").
			commit("c3", "c2").
			branch("master", "c3").
			branch("b1", "c2").
			branch("b2", "c1")

		_, plan := scheduleFixture(t, backend, nil)

		restricted := plan.Restrict(map[string]bool{"b1": true})
		require.Equal(t, []engine.PlanEntry{
			{Branch: "b1", Pivot: "master", Reason: engine.ReasonContained},
		}, restricted.Entries)
	})
}
