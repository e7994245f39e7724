// Package engine implements the branch-containment analysis and
// safe-deletion-ordering core.
//
// The engine is a pipeline of pure stages over an immutable snapshot of the
// repository's branches:
//
//	TakeSnapshot -> Classify -> Resolve -> Schedule -> Execute
//
// Classify partitions branches into protected, worktree-locked, duplicate
// groups and analyzable branches. Resolve computes, for every analyzable
// branch, the set of branches whose history strictly contains it. Schedule
// turns that partial order into an ordered sequence of (branch, pivot)
// deletions such that a safe delete, issued from the pivot's checkout, always
// succeeds. Execute applies the plan through the Backend, relying on the
// backend's own safe-delete semantics as the final safety check.
//
// All stages are deterministic: the same snapshot and the same duplicate
// tie-break choices always produce the same plan.
package engine
