package engine

import "context"

// AnalyzeOptions configures a full analysis run.
type AnalyzeOptions struct {
	// ProtectedPatterns force-protect branches by exact name or glob,
	// in addition to the always-protected default branch
	ProtectedPatterns []string
}

// Analysis bundles the outputs of the three pure stages for one snapshot.
type Analysis struct {
	Snapshot       *Snapshot
	Classification *Classification
	Containment    *Containment
	Plan           *Plan

	oracle *AncestryOracle
}

// Analyze runs snapshot, classification, containment resolution and
// scheduling in one pass. The result is deterministic for a given snapshot
// and protected-pattern set.
func Analyze(ctx context.Context, backend Backend, opts AnalyzeOptions) (*Analysis, error) {
	snapshot, err := TakeSnapshot(ctx, backend)
	if err != nil {
		return nil, err
	}

	cls, err := Classify(snapshot, opts.ProtectedPatterns)
	if err != nil {
		return nil, err
	}

	analysis := &Analysis{
		Snapshot:       snapshot,
		Classification: cls,
		oracle:         NewAncestryOracle(backend),
	}
	if err := analysis.resolveAndSchedule(ctx); err != nil {
		return nil, err
	}
	return analysis, nil
}

// RetainDuplicate overrides the retained member of a duplicate group and
// recomputes containment and the plan. The ancestry cache carries over, so
// the rerun costs no extra backend queries.
func (a *Analysis) RetainDuplicate(ctx context.Context, branchName string) error {
	if err := a.Classification.RetainDuplicate(branchName); err != nil {
		return err
	}
	return a.resolveAndSchedule(ctx)
}

func (a *Analysis) resolveAndSchedule(ctx context.Context) error {
	containment, err := Resolve(ctx, a.Snapshot, a.Classification, a.oracle)
	if err != nil {
		return err
	}
	plan, err := Schedule(a.Classification, containment)
	if err != nil {
		return err
	}
	a.Containment = containment
	a.Plan = plan
	return nil
}

// Restrict drops every plan entry whose branch is not in keep, preserving
// order. The caller uses this after interactive selection; dropping entries
// never invalidates later ones, a pivot that would have been deleted is
// simply still present.
func (p *Plan) Restrict(keep map[string]bool) *Plan {
	restricted := &Plan{}
	for _, entry := range p.Entries {
		if keep[entry.Branch] {
			restricted.Entries = append(restricted.Entries, entry)
		}
	}
	return restricted
}
