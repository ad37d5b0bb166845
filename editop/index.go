package editop

import "github.com/graft-format/graft/debug"

// Index partitions an op list by kind and records the distinct trees
// referenced. Partitioning is stable and total: every op lands in
// exactly one partition and relative order within a partition matches
// the input. The index is derived, per-invocation state; it holds no
// resources.
type Index[N comparable] struct {
	Trees    []N // first-seen order
	Removes  []Op[N]
	Adds     []Op[N]
	Replaces []Op[N]

	treeSet map[N]struct{}
}

func NewIndex[N comparable](ops []Op[N]) *Index[N] {
	x := &Index[N]{
		treeSet: make(map[N]struct{}, len(ops)),
	}
	for i := range ops {
		op := &ops[i]
		if _, ok := x.treeSet[op.Tree]; !ok {
			x.treeSet[op.Tree] = struct{}{}
			x.Trees = append(x.Trees, op.Tree)
		}
		switch op.Kind {
		case RemoveKind:
			x.Removes = append(x.Removes, *op)
		case AddKind:
			x.Adds = append(x.Adds, *op)
		case ReplaceKind:
			x.Replaces = append(x.Replaces, *op)
		}
	}
	if debug.Index() {
		debug.Logf("index: %d trees, %d remove, %d add, %d replace\n",
			len(x.Trees), len(x.Removes), len(x.Adds), len(x.Replaces))
	}
	return x
}

// HasTree reports whether root is among the trees referenced by the
// indexed ops.
func (x *Index[N]) HasTree(root N) bool {
	_, ok := x.treeSet[root]
	return ok
}
