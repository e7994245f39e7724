package engine

import (
	"context"
	"sort"

	tidygiterrors "tidygit.dev/tidygit/internal/errors"
)

// Containment is the resolver's output: which analyzable branches are
// provably deletable, and which are kept for lack of a containing branch.
type Containment struct {
	// Deletables holds the deletion candidates sorted by name, each with
	// its containers ordered nearest-first
	Deletables []Deletable
	// Kept holds analyzable branches with no container. They are reported,
	// never silently dropped: safety demands explicit containment evidence.
	Kept []string
}

// Deletable returns the candidate entry for a branch name, if any.
func (c *Containment) Deletable(branchName string) (Deletable, bool) {
	for _, d := range c.Deletables {
		if d.Name == branchName {
			return d, true
		}
	}
	return Deletable{}, false
}

// Resolve builds the strict containment partial order over the analyzable
// branches. A branch B is contained in C iff their tips differ and B's tip
// is an ancestor of C's tip. Protected branches participate as containers
// only. Every ancestry pair is asked once through the memoizing oracle.
//
// Symmetric containment between distinct tips is impossible in a sound
// commit graph; observing it returns a GraphInconsistencyError before any
// mutation can happen.
func Resolve(ctx context.Context, snapshot *Snapshot, cls *Classification, oracle *AncestryOracle) (*Containment, error) {
	containerPool := make([]string, 0, len(cls.Protected)+len(cls.Analyzable))
	containerPool = append(containerPool, cls.Protected...)
	containerPool = append(containerPool, cls.Analyzable...)
	sort.Strings(containerPool)

	result := &Containment{}

	for _, candidate := range cls.Analyzable {
		candidateTip, ok := snapshot.Tip(candidate)
		if !ok {
			return nil, tidygiterrors.NewBranchNotFoundError(candidate)
		}

		var containers []string
		for _, other := range containerPool {
			if other == candidate {
				continue
			}
			otherTip, ok := snapshot.Tip(other)
			if !ok {
				return nil, tidygiterrors.NewBranchNotFoundError(other)
			}
			if otherTip == candidateTip {
				// Equal tips were diverted to duplicate handling; among the
				// remaining branches they only occur between protected peers
				continue
			}

			contained, err := oracle.IsAncestor(ctx, candidateTip, otherTip)
			if err != nil {
				return nil, err
			}
			if !contained {
				continue
			}

			reverse, err := oracle.IsAncestor(ctx, otherTip, candidateTip)
			if err != nil {
				return nil, err
			}
			if reverse {
				return nil, tidygiterrors.NewGraphInconsistencyError(candidate, other)
			}

			containers = append(containers, other)
		}

		if len(containers) == 0 {
			result.Kept = append(result.Kept, candidate)
			continue
		}

		ordered, err := orderContainers(ctx, snapshot, cls, oracle, containers)
		if err != nil {
			return nil, err
		}
		result.Deletables = append(result.Deletables, Deletable{
			Name:       candidate,
			Containers: ordered,
		})
	}

	sort.Slice(result.Deletables, func(i, j int) bool {
		return result.Deletables[i].Name < result.Deletables[j].Name
	})
	sort.Strings(result.Kept)

	return result, nil
}

// orderContainers sorts a candidate's containers nearest-first: a container
// with another container strictly below it in the ancestry order comes
// later. Within a layer of incomparable containers, protected branches come
// first (they are permanent pivots), then lexical order.
func orderContainers(ctx context.Context, snapshot *Snapshot, cls *Classification, oracle *AncestryOracle, containers []string) ([]string, error) {
	below := make(map[string]map[string]bool, len(containers))
	for _, c := range containers {
		below[c] = make(map[string]bool)
	}
	for _, a := range containers {
		tipA, _ := snapshot.Tip(a)
		for _, b := range containers {
			if a == b {
				continue
			}
			tipB, _ := snapshot.Tip(b)
			if tipA == tipB {
				continue
			}
			contained, err := oracle.IsAncestor(ctx, tipA, tipB)
			if err != nil {
				return nil, err
			}
			if contained {
				// a is strictly below b
				below[b][a] = true
			}
		}
	}

	remaining := make(map[string]bool, len(containers))
	for _, c := range containers {
		remaining[c] = true
	}

	var ordered []string
	for len(remaining) > 0 {
		var layer []string
		for c := range remaining {
			minimal := true
			for other := range below[c] {
				if remaining[other] {
					minimal = false
					break
				}
			}
			if minimal {
				layer = append(layer, c)
			}
		}
		sort.Slice(layer, func(i, j int) bool {
			pi, pj := cls.IsProtected(layer[i]), cls.IsProtected(layer[j])
			if pi != pj {
				return pi
			}
			return layer[i] < layer[j]
		})
		for _, c := range layer {
			delete(remaining, c)
		}
		ordered = append(ordered, layer...)
	}

	return ordered, nil
}
