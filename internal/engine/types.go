package engine

// Branch is a local branch as seen at snapshot time.
type Branch struct {
	// Name uniquely identifies the branch among local branches
	Name string
	// Tip is the commit id the branch pointed to when the snapshot was taken
	Tip string
	// Upstream is the remote tracking ref, empty if the branch tracks nothing
	Upstream string
}

// DuplicateGroup is a set of two or more branches sharing the same tip
// commit. Exactly one member is retained; the others need no containment
// proof to be deleted, their history is identical to the retained member's.
type DuplicateGroup struct {
	// Tip is the commit id shared by all members
	Tip string
	// Members holds the branch names in lexical order
	Members []string
	// Retained is the member that is kept
	Retained string
	// RetainedForced is true when the retained member is protected and the
	// choice cannot be overridden
	RetainedForced bool
}

// Deletable describes a branch the resolver proved safe to delete, together
// with the branches that currently contain it.
type Deletable struct {
	// Name is the branch to delete
	Name string
	// Containers holds the branches whose history strictly contains Name,
	// ordered nearest container first (ties: protected before unprotected,
	// then lexical)
	Containers []string
}

// PlanReason says why a plan entry deletes its branch.
type PlanReason int

const (
	// ReasonDuplicate marks a non-retained member of a duplicate group
	ReasonDuplicate PlanReason = iota
	// ReasonContained marks a branch whose history is contained in its pivot
	ReasonContained
)

func (r PlanReason) String() string {
	switch r {
	case ReasonDuplicate:
		return "duplicate"
	case ReasonContained:
		return "contained"
	default:
		return "unknown"
	}
}

// PlanEntry is one step of a deletion plan: check out Pivot, then safe
// delete Branch. Pivot is guaranteed to contain Branch and to still exist
// when the entry executes.
type PlanEntry struct {
	Branch string
	Pivot  string
	Reason PlanReason
}

// Plan is an ordered deletion sequence. Executing the entries strictly in
// order, always checking out the pivot first, never trips a safe delete.
type Plan struct {
	Entries []PlanEntry
}

// IsEmpty returns true if the plan deletes nothing.
func (p *Plan) IsEmpty() bool {
	return len(p.Entries) == 0
}

// Branches returns the branches the plan deletes, in deletion order.
func (p *Plan) Branches() []string {
	names := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		names[i] = e.Branch
	}
	return names
}

// EntryResult reports the outcome of executing a single plan entry.
type EntryResult struct {
	Entry PlanEntry
	Err   error
}
