package tree

import (
	"testing"
)

func keep(n *Node) []*Node {
	return []*Node{n}
}

func TestDescendIdentity(t *testing.T) {
	root := FromKeyVals([]KeyVal{
		{Key: "a", Val: FromSlice([]*Node{FromInt(1), FromInt(2)})},
		{Key: "b", Val: FromString("x")},
	})
	cv := NewChildVisitor()
	var visit func(*Node) []*Node
	visit = func(n *Node) []*Node {
		return []*Node{cv.Descend(n, visit)}
	}
	if got := cv.Descend(root, visit); got != root {
		t.Error("untouched tree was rebuilt")
	}
}

func TestDescendArraySplice(t *testing.T) {
	a, b, c := FromString("a"), FromString("b"), FromString("c")
	arr := FromSlice([]*Node{a, b, c})
	x, y := FromString("x"), FromString("y")
	visit := func(n *Node) []*Node {
		if n == b {
			return []*Node{x, y}
		}
		if n == c {
			return nil
		}
		return keep(n)
	}
	res := NewChildVisitor().Descend(arr, visit)
	if res == arr {
		t.Fatal("changed array not rebuilt")
	}
	want := []*Node{a, x, y}
	if len(res.Values) != len(want) {
		t.Fatalf("got %d values, want %d", len(res.Values), len(want))
	}
	for i := range want {
		if res.Values[i] != want[i] {
			t.Errorf("values[%d]: wrong node", i)
		}
	}
	// input untouched
	if len(arr.Values) != 3 || arr.Values[1] != b {
		t.Error("input array mutated")
	}
}

func TestDescendObjectSplice(t *testing.T) {
	v1, v2 := FromString("v1"), FromString("v2")
	obj := FromKeyVals([]KeyVal{
		{Key: "one", Val: v1},
		{Key: "two", Val: v2},
	})
	keyed := FromString("n").WithField("three")
	unkeyed := FromString("m")
	visit := func(n *Node) []*Node {
		switch n {
		case v1:
			return nil // dropped member loses its key
		case v2:
			return []*Node{keyed, v2, unkeyed}
		}
		return keep(n)
	}
	res := NewChildVisitor().Descend(obj, visit)
	wantKeys := []string{"three", "two", "two"}
	wantVals := []*Node{keyed, v2, unkeyed}
	if len(res.Values) != len(wantVals) {
		t.Fatalf("got %d members, want %d", len(res.Values), len(wantVals))
	}
	for i := range wantVals {
		if res.Fields[i].String != wantKeys[i] {
			t.Errorf("fields[%d] = %q, want %q", i, res.Fields[i].String, wantKeys[i])
		}
		if res.Values[i] != wantVals[i] {
			t.Errorf("values[%d]: wrong node", i)
		}
	}
}

func TestDescendLeaf(t *testing.T) {
	s := FromString("leaf")
	if got := NewChildVisitor().Descend(s, keep); got != s {
		t.Error("leaf was rebuilt")
	}
}

func TestRootCommentPreservation(t *testing.T) {
	mk := func() (*Node, *Node) {
		val := FromString("v")
		root := FromKeyVals([]KeyVal{{Key: "k", Val: val}}).
			WithComment(" document header")
		return root, val
	}
	drop := func(target *Node) func(*Node) []*Node {
		return func(n *Node) []*Node {
			if n == target {
				return nil
			}
			return keep(n)
		}
	}

	root, val := mk()
	res := NewChildVisitor().Descend(root, drop(val))
	if res.Comment != nil {
		t.Error("standard visitor carried the root comment through a rebuild")
	}

	root, val = mk()
	res = NewChildVisitor(PreserveRootComment(true)).Descend(root, drop(val))
	if res.Comment == nil || len(res.Comment.Lines) != 1 {
		t.Fatal("preserving visitor lost the root comment")
	}
	if res.Comment.Lines[0] != " document header" {
		t.Errorf("got comment %q", res.Comment.Lines[0])
	}

	// non-root rebuilds are not special-cased
	inner, innerVal := mk()
	outer := FromSlice([]*Node{inner})
	res = NewChildVisitor(PreserveRootComment(true)).Descend(outer, func(n *Node) []*Node {
		if n == inner {
			return []*Node{NewChildVisitor(PreserveRootComment(true)).Descend(n, drop(innerVal))}
		}
		return keep(n)
	})
	if res.Values[0].Comment != nil {
		t.Error("interior rebuild kept its comment")
	}
}
