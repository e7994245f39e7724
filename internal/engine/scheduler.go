package engine

import (
	"fmt"
	"sort"
)

// Schedule turns the classification and containment results into a concrete
// ordered deletion plan.
//
// Non-retained duplicate-group members go first: their history is identical
// to the retained member's, so the retained member is their pivot and no
// containment proof is needed.
//
// Containment candidates are then scheduled bottom-up in rounds: a candidate
// is deletable only once every other remaining candidate contained in it has
// been scheduled, so each entry's pivot (the candidate's nearest container)
// is still present when the entry executes. Containment is a strict partial
// order and protected branches are permanent terminal pivots, so the rounds
// always terminate with every candidate scheduled.
//
// The plan is fully deterministic: groups, rounds and pivots all tie-break
// lexically.
func Schedule(cls *Classification, containment *Containment) (*Plan, error) {
	plan := &Plan{}

	for _, group := range cls.DuplicateGroups {
		for _, member := range group.Members {
			if member == group.Retained || cls.IsProtected(member) {
				continue
			}
			plan.Entries = append(plan.Entries, PlanEntry{
				Branch: member,
				Pivot:  group.Retained,
				Reason: ReasonDuplicate,
			})
		}
	}

	// containedBy[c] = candidates whose containers include c, i.e. the
	// candidates that must be deleted before c
	containedBy := make(map[string][]string)
	isCandidate := make(map[string]bool, len(containment.Deletables))
	for _, d := range containment.Deletables {
		isCandidate[d.Name] = true
	}
	for _, d := range containment.Deletables {
		for _, container := range d.Containers {
			if isCandidate[container] {
				containedBy[container] = append(containedBy[container], d.Name)
			}
		}
	}

	scheduled := make(map[string]bool)
	remaining := len(containment.Deletables)
	for remaining > 0 {
		var round []Deletable
		for _, d := range containment.Deletables {
			if scheduled[d.Name] {
				continue
			}
			blocked := false
			for _, inner := range containedBy[d.Name] {
				if !scheduled[inner] {
					blocked = true
					break
				}
			}
			if !blocked {
				round = append(round, d)
			}
		}

		if len(round) == 0 {
			// Unreachable for a strict partial order; fail loudly rather
			// than loop forever on a corrupt containment relation
			return nil, fmt.Errorf("deletion scheduling stalled with %d candidates unschedulable", remaining)
		}

		sort.Slice(round, func(i, j int) bool { return round[i].Name < round[j].Name })
		for _, d := range round {
			plan.Entries = append(plan.Entries, PlanEntry{
				Branch: d.Name,
				Pivot:  d.Containers[0],
				Reason: ReasonContained,
			})
			scheduled[d.Name] = true
			remaining--
		}
	}

	return plan, nil
}
