package graft

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/graft-format/graft/editop"
	"github.com/graft-format/graft/tree"
)

// testDoc builds {items: [a, b, c], name: x} and returns the root
// along with the three item nodes.
func testDoc() (root, a, b, c *tree.Node) {
	a = tree.FromString("a")
	b = tree.FromString("b")
	c = tree.FromString("c")
	root = tree.FromKeyVals([]tree.KeyVal{
		{Key: "items", Val: tree.FromSlice([]*tree.Node{a, b, c})},
		{Key: "name", Val: tree.FromString("x")},
	})
	return root, a, b, c
}

func items(t *testing.T, root *tree.Node) []*tree.Node {
	t.Helper()
	arr := tree.Get(root, "items")
	if arr == nil || arr.Type != tree.ArrayType {
		t.Fatalf("no items array in %+v", root)
	}
	return arr.Values
}

func wantItems(t *testing.T, root *tree.Node, want ...*tree.Node) {
	t.Helper()
	got := items(t, root)
	if len(got) != len(want) {
		t.Fatalf("got %d items, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("items[%d]: got %v, want %v", i, got[i], want[i])
		}
	}
}

var cmpOpts = []cmp.Option{
	cmpopts.IgnoreFields(tree.Node{}, "Parent", "ParentIndex", "ParentField"),
}

func newTransformer(ops []editop.Op[*tree.Node]) *Transformer[*tree.Node] {
	return New[*tree.Node](tree.NewChildVisitor(), ops)
}

func TestUntouchedTreeIdentity(t *testing.T) {
	rootA, a, _, _ := testDoc()
	rootB, _, _, _ := testDoc()
	tr := newTransformer([]editop.Op[*tree.Node]{
		editop.Remove(rootA, a),
	})
	if got := tr.Transform(rootB); got != rootB {
		t.Error("tree without ops was not returned as the identical instance")
	}
	empty := newTransformer(nil)
	if got := empty.Transform(rootA); got != rootA {
		t.Error("transform with no ops rebuilt the tree")
	}
}

func TestRemove(t *testing.T) {
	root, a, b, c := testDoc()
	tr := newTransformer([]editop.Op[*tree.Node]{
		editop.Remove(root, b),
	})
	res := tr.Transform(root)
	if res == root {
		t.Fatal("affected tree returned unrebuilt")
	}
	wantItems(t, res, a, c)
	// untouched members keep identity
	if tree.Get(res, "name") != tree.Get(root, "name") {
		t.Error("untouched member was rebuilt")
	}
	// the input tree is intact
	wantItems(t, root, a, b, c)
}

func TestReplace(t *testing.T) {
	root, a, b, c := testDoc()
	r := tree.FromString("r")
	tr := newTransformer([]editop.Op[*tree.Node]{
		editop.Replace(root, b, r),
	})
	res := tr.Transform(root)
	wantItems(t, res, a, r, c)
}

func TestAddBefore(t *testing.T) {
	root, a, b, c := testDoc()
	x := tree.FromString("x")
	tr := newTransformer([]editop.Op[*tree.Node]{
		editop.Add(root, b, x, nil),
	})
	wantItems(t, tr.Transform(root), a, x, b, c)
}

func TestAddAfter(t *testing.T) {
	root, a, b, c := testDoc()
	x := tree.FromString("x")
	tr := newTransformer([]editop.Op[*tree.Node]{
		editop.Add(root, b, nil, x),
	})
	wantItems(t, tr.Transform(root), a, b, x, c)
}

func TestAddNeither(t *testing.T) {
	root, _, b, _ := testDoc()
	tr := newTransformer([]editop.Op[*tree.Node]{
		editop.Add(root, b, nil, nil),
	})
	res := tr.Transform(root)
	if diff := cmp.Diff(root, res, cmpOpts...); diff != "" {
		t.Errorf("semantically empty add changed the tree (-want +got):\n%s", diff)
	}
}

func TestAddStacking(t *testing.T) {
	root, a, b, c := testDoc()
	b1 := tree.FromString("b1")
	b2 := tree.FromString("b2")
	a1 := tree.FromString("a1")
	a2 := tree.FromString("a2")
	tr := newTransformer([]editop.Op[*tree.Node]{
		editop.Add(root, b, b1, a1),
		editop.Add(root, b, b2, a2),
	})
	// each before is pushed onto the front in op order, each after
	// appended to the back
	wantItems(t, tr.Transform(root), a, b2, b1, b, a1, a2, c)
}

func TestComposition(t *testing.T) {
	root, a, b, c := testDoc()
	x := tree.FromString("x")
	y := tree.FromString("y")
	r := tree.FromString("r")
	tr := newTransformer([]editop.Op[*tree.Node]{
		editop.Add(root, b, x, y),
		editop.Replace(root, b, r),
	})
	wantItems(t, tr.Transform(root), a, x, r, y, c)
}

func TestReplaceOverRemove(t *testing.T) {
	r := tree.FromString("r")
	for name, mk := range map[string]func(root, b *tree.Node) []editop.Op[*tree.Node]{
		"remove first": func(root, b *tree.Node) []editop.Op[*tree.Node] {
			return []editop.Op[*tree.Node]{
				editop.Remove(root, b),
				editop.Replace(root, b, r),
			}
		},
		"replace first": func(root, b *tree.Node) []editop.Op[*tree.Node] {
			return []editop.Op[*tree.Node]{
				editop.Replace(root, b, r),
				editop.Remove(root, b),
			}
		},
	} {
		t.Run(name, func(t *testing.T) {
			root, a, b, c := testDoc()
			tr := newTransformer(mk(root, b))
			wantItems(t, tr.Transform(root), a, r, c)
		})
	}
}

func TestFirstReplaceWins(t *testing.T) {
	root, a, b, c := testDoc()
	r1 := tree.FromString("r1")
	r2 := tree.FromString("r2")
	tr := newTransformer([]editop.Op[*tree.Node]{
		editop.Replace(root, b, r1),
		editop.Replace(root, b, r2),
	})
	wantItems(t, tr.Transform(root), a, r1, c)
}

func TestNoDescentIntoRewritten(t *testing.T) {
	inner := tree.FromString("inner")
	obj := tree.FromKeyVals([]tree.KeyVal{{Key: "k", Val: inner}})
	tail := tree.FromString("tail")
	root := tree.FromKeyVals([]tree.KeyVal{
		{Key: "items", Val: tree.FromSlice([]*tree.Node{obj, tail})},
	})
	r := tree.FromString("r")
	tr := newTransformer([]editop.Op[*tree.Node]{
		editop.Replace(root, obj, r),
		editop.Remove(root, inner), // inside the replaced subtree
	})
	wantItems(t, tr.Transform(root), r, tail)
}

func TestNoDescentUnderAdd(t *testing.T) {
	inner := tree.FromString("inner")
	obj := tree.FromKeyVals([]tree.KeyVal{{Key: "k", Val: inner}})
	root := tree.FromKeyVals([]tree.KeyVal{
		{Key: "items", Val: tree.FromSlice([]*tree.Node{obj})},
	})
	x := tree.FromString("x")
	tr := newTransformer([]editop.Op[*tree.Node]{
		editop.Add(root, obj, x, nil),
		editop.Remove(root, inner),
	})
	res := tr.Transform(root)
	wantItems(t, res, x, obj)
	if got := items(t, res)[1]; tree.Get(got, "k") != inner {
		t.Error("descended into a node with an add op")
	}
}

func TestMultiTreeIsolation(t *testing.T) {
	rootA, aA, bA, cA := testDoc()
	rootB, aB, bB, cB := testDoc()
	tr := newTransformer([]editop.Op[*tree.Node]{
		editop.Remove(rootA, bA),
		editop.Replace(rootB, cB, tree.FromString("r")),
	})
	resA := tr.Transform(rootA)
	wantItems(t, resA, aA, cA)
	resB := tr.Transform(rootB)
	if got := items(t, resB); got[0] != aB || got[1] != bB {
		t.Error("ops leaked across trees")
	}
	// removal targeted at tree A must not fire in tree B even though
	// the index knows the node
	if len(items(t, resB)) != 3 {
		t.Errorf("tree B has %d items, want 3", len(items(t, resB)))
	}
}

func TestIdempotentReapplication(t *testing.T) {
	root, _, b, _ := testDoc()
	tr := newTransformer([]editop.Op[*tree.Node]{
		editop.Remove(root, b),
	})
	res := tr.Transform(root)
	if again := tr.Transform(res); again != res {
		t.Error("re-applying to an already-transformed tree rebuilt it")
	}
}

func TestRootOpsAreNoOps(t *testing.T) {
	root, a, b, c := testDoc()
	tr := newTransformer([]editop.Op[*tree.Node]{
		editop.Remove(root, root),
	})
	res := tr.Transform(root)
	// the tree is referenced, so it is traversed, but the root's own
	// position cannot be rewritten
	wantItems(t, res, a, b, c)
}

func TestUnreachableTargetIsSilent(t *testing.T) {
	root, a, b, c := testDoc()
	stranger := tree.FromString("stranger")
	tr := newTransformer([]editop.Op[*tree.Node]{
		editop.Remove(root, stranger),
	})
	res := tr.Transform(root)
	wantItems(t, res, a, b, c)
}

func TestDescendFunc(t *testing.T) {
	root, a, _, _ := testDoc()
	calls := 0
	desc := DescendFunc[*tree.Node](func(n *tree.Node, visit func(*tree.Node) []*tree.Node) *tree.Node {
		calls++
		return tree.NewChildVisitor().Descend(n, visit)
	})
	tr := New[*tree.Node](desc, []editop.Op[*tree.Node]{
		editop.Remove(root, a),
	})
	tr.Transform(root)
	if calls == 0 {
		t.Error("injected descender was not used")
	}
}
