package engine

import (
	"fmt"
	"path"
	"sort"
)

// Classification partitions the snapshot's branches into disjoint groups.
// Protected and worktree-locked branches are never deleted; non-retained
// duplicate-group members are deletable without a containment proof; the
// analyzable branches move on to containment resolution.
type Classification struct {
	// Protected branches act only as possible containers, never candidates
	Protected []string
	// WorktreeLocked branches are excluded from the analysis entirely
	WorktreeLocked []string
	// DuplicateGroups maps shared tips to the branches pointing at them
	DuplicateGroups []DuplicateGroup
	// Analyzable branches (retained duplicate members included) proceed to
	// the containment resolver
	Analyzable []string

	protected map[string]bool
}

// IsProtected reports whether the named branch was classified protected.
func (c *Classification) IsProtected(branchName string) bool {
	return c.protected[branchName]
}

// RetainDuplicate overrides the retained member of the duplicate group that
// contains branchName. It fails if the group's retained member is forced
// (the group contains a protected branch) or branchName is not a group
// member. Must be called before Resolve.
func (c *Classification) RetainDuplicate(branchName string) error {
	for i := range c.DuplicateGroups {
		group := &c.DuplicateGroups[i]
		if !containsString(group.Members, branchName) {
			continue
		}
		if group.RetainedForced {
			return fmt.Errorf("cannot retain %s: %s is protected and must be the retained member", branchName, group.Retained)
		}
		if group.Retained == branchName {
			return nil
		}

		// Swap the analyzable slot from the old retained member to the new one
		for j, name := range c.Analyzable {
			if name == group.Retained {
				c.Analyzable[j] = branchName
			}
		}
		sort.Strings(c.Analyzable)
		group.Retained = branchName
		return nil
	}
	return fmt.Errorf("branch %s is not part of a duplicate group", branchName)
}

// Classify partitions the snapshot into protected, worktree-locked,
// duplicate groups and analyzable branches. The default branch is always
// protected; protectedPatterns force-protect by exact name or glob.
// Worktree-locked branches are removed before duplicate detection so they
// can neither mask nor be masked by a duplicate peer.
func Classify(snapshot *Snapshot, protectedPatterns []string) (*Classification, error) {
	cls := &Classification{protected: make(map[string]bool)}

	var remaining []Branch
	for _, branch := range snapshot.Branches {
		if snapshot.WorktreeLocked[branch.Name] {
			cls.WorktreeLocked = append(cls.WorktreeLocked, branch.Name)
			continue
		}
		remaining = append(remaining, branch)
	}

	for _, branch := range remaining {
		isProtected, err := matchesProtected(branch.Name, snapshot.DefaultBranch, protectedPatterns)
		if err != nil {
			return nil, err
		}
		if isProtected {
			cls.protected[branch.Name] = true
			cls.Protected = append(cls.Protected, branch.Name)
		}
	}

	// Duplicate detection runs over protected and unprotected branches
	// alike: a group whose tip equals a protected branch's tip retains the
	// protected member, which makes the rest deletable with no further proof.
	byTip := make(map[string][]string)
	for _, branch := range remaining {
		byTip[branch.Tip] = append(byTip[branch.Tip], branch.Name)
	}

	inGroup := make(map[string]bool)
	for tip, members := range byTip {
		if len(members) < 2 {
			continue
		}
		sort.Strings(members)

		retained, forced := pickRetained(members, cls.protected)
		cls.DuplicateGroups = append(cls.DuplicateGroups, DuplicateGroup{
			Tip:            tip,
			Members:        members,
			Retained:       retained,
			RetainedForced: forced,
		})
		for _, name := range members {
			inGroup[name] = true
		}
	}
	sort.Slice(cls.DuplicateGroups, func(i, j int) bool {
		return cls.DuplicateGroups[i].Members[0] < cls.DuplicateGroups[j].Members[0]
	})

	for _, branch := range remaining {
		if cls.protected[branch.Name] {
			continue
		}
		if inGroup[branch.Name] && !isRetained(cls.DuplicateGroups, branch.Name) {
			continue
		}
		cls.Analyzable = append(cls.Analyzable, branch.Name)
	}
	sort.Strings(cls.Analyzable)

	return cls, nil
}

// pickRetained chooses the retained member of a duplicate group: a protected
// member if the group has one, otherwise the lexically first member.
func pickRetained(members []string, protected map[string]bool) (string, bool) {
	for _, name := range members {
		if protected[name] {
			return name, true
		}
	}
	return members[0], false
}

func isRetained(groups []DuplicateGroup, branchName string) bool {
	for _, group := range groups {
		if group.Retained == branchName {
			return true
		}
	}
	return false
}

// matchesProtected reports whether a branch name is protected: the default
// branch always is, and each pattern matches exactly or as a glob.
func matchesProtected(branchName, defaultBranch string, patterns []string) (bool, error) {
	if branchName == defaultBranch {
		return true, nil
	}
	for _, pattern := range patterns {
		if branchName == pattern {
			return true, nil
		}
		matched, err := path.Match(pattern, branchName)
		if err != nil {
			return false, fmt.Errorf("invalid protected branch pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
