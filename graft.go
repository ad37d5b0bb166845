// Package graft rewrites trees from declarative edit batches.
//
// Callers describe what should change — remove a node, replace a node,
// insert siblings around a node — and graft compiles the batch into a
// single visitor pass that weaves every edit into one rewrite. Trees
// and nodes are opaque to the engine: nodes are compared by identity
// only, and descending into children is delegated to an injected
// Descender. The engine never mutates an input tree; rewrites build new
// structure and reuse untouched subtrees.
package graft

import (
	"github.com/graft-format/graft/debug"
	"github.com/graft-format/graft/editop"
)

// Descender is the host seam: descend into n's children, apply visit to
// each, and splice each child's replacement sequence (zero, one, or
// several nodes) into the rebuilt child list. Implementations must
// return n itself when every child came back as its own single-element
// sequence, so untouched nodes keep full identity.
type Descender[N comparable] interface {
	Descend(n N, visit func(N) []N) N
}

// DescendFunc adapts a function to the Descender interface.
type DescendFunc[N comparable] func(n N, visit func(N) []N) N

func (f DescendFunc[N]) Descend(n N, visit func(N) []N) N {
	return f(n, visit)
}

// Transformer applies one batch of edit operations to trees. It is
// reusable and safe for concurrent use: construction captures all
// derived state and Transform only reads it.
type Transformer[N comparable] struct {
	desc Descender[N]
	idx  *editop.Index[N]

	removed  map[N]bool
	replaced map[N]N // first Replace per target wins
	adds     map[N][]editop.Op[N]
}

// New builds a Transformer from ops. The descender supplies the host's
// visit-children capability; which variant to pass is a one-time choice
// of the host integration layer, not of the engine.
func New[N comparable](desc Descender[N], ops []editop.Op[N]) *Transformer[N] {
	t := &Transformer[N]{
		desc:     desc,
		idx:      editop.NewIndex(ops),
		removed:  map[N]bool{},
		replaced: map[N]N{},
		adds:     map[N][]editop.Op[N]{},
	}
	for i := range t.idx.Removes {
		t.removed[t.idx.Removes[i].Target] = true
	}
	for i := range t.idx.Replaces {
		op := &t.idx.Replaces[i]
		if _, ok := t.replaced[op.Target]; ok {
			continue
		}
		t.replaced[op.Target] = op.Replacement
	}
	for i := range t.idx.Adds {
		op := &t.idx.Adds[i]
		t.adds[op.Target] = append(t.adds[op.Target], *op)
	}
	return t
}

// Transform rewrites one tree, identified by its root node. A tree not
// referenced by any op is returned as the identical instance without
// traversal; a referenced tree is traversed from the root exactly once.
// Ops targeting the root node itself are silent no-ops: traversal
// descends from the root, it does not rewrite the root's position.
func (t *Transformer[N]) Transform(root N) N {
	if !t.idx.HasTree(root) {
		return root
	}
	if debug.Rewrite() {
		debug.Logf("rewrite: traversing tree %v\n", root)
	}
	return t.desc.Descend(root, t.visit)
}

// visit computes the replacement sequence for one node. Remove empties
// the sequence, Replace overwrites it with the first replacement found
// (so Replace wins over Remove on the same node, and later Replaces are
// ignored), and every Add wraps before/after siblings around whatever
// remains. A node with any matching op is emitted without descending
// into it; only unmodified nodes recurse.
func (t *Transformer[N]) visit(n N) []N {
	var zero N
	out := []N{n}
	modified := false
	if t.removed[n] {
		out = out[:0]
		modified = true
	}
	if r, ok := t.replaced[n]; ok {
		out = append(out[:0], r)
		modified = true
	}
	for i := range t.adds[n] {
		op := &t.adds[n][i]
		if op.Before != zero {
			out = append([]N{op.Before}, out...)
		}
		if op.After != zero {
			out = append(out, op.After)
		}
		modified = true
	}
	if !modified {
		return []N{t.desc.Descend(n, t.visit)}
	}
	if debug.Rewrite() {
		debug.Logf("rewrite: node %v -> %d node(s)\n", n, len(out))
	}
	return out
}
