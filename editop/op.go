// Package editop defines the edit operations understood by the graft
// rewriter and the per-invocation index that groups them.
//
// An Op describes one intended change to one tree. Nodes are addressed
// by identity: the engine compares targets with ==, never by value, so
// the node type N is expected to be pointer-shaped. Construction
// performs no validation; an op whose target does not occur in its tree
// is a silent no-op during traversal.
package editop

// Op is one declarative edit. Exactly one Kind applies; the remaining
// fields are meaningful per kind as the constructors document. Ops are
// immutable once built.
type Op[N comparable] struct {
	Kind   Kind
	Tree   N // root node of the tree the edit applies to
	Target N

	// Add only. The zero value of N means absent.
	Before N
	After  N

	// Replace only.
	Replacement N
}

// Remove deletes target from its parent's child sequence.
func Remove[N comparable](tree, target N) Op[N] {
	return Op[N]{Kind: RemoveKind, Tree: tree, Target: target}
}

// Add inserts before immediately preceding target and after immediately
// following it. Either may be the zero value; with both absent the op
// is a semantically empty edit.
func Add[N comparable](tree, target, before, after N) Op[N] {
	return Op[N]{Kind: AddKind, Tree: tree, Target: target, Before: before, After: after}
}

// Replace substitutes replacement for target in the parent's child
// sequence. The replacement subtree is emitted as-is, never visited.
func Replace[N comparable](tree, target, replacement N) Op[N] {
	return Op[N]{Kind: ReplaceKind, Tree: tree, Target: target, Replacement: replacement}
}
