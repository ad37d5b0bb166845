package main

import (
	"testing"

	"github.com/graft-format/graft"
	"github.com/graft-format/graft/tree"
	"github.com/graft-format/graft/yamldoc"
)

func mustLoad(t *testing.T, doc string) *tree.Node {
	t.Helper()
	y, err := yamldoc.Load([]byte(doc))
	if err != nil {
		t.Fatalf("could not decode %q: %v", doc, err)
	}
	return y
}

func apply(t *testing.T, doc *tree.Node, opsYAML string) *tree.Node {
	t.Helper()
	ops, err := readOps(false, doc, []byte(opsYAML))
	if err != nil {
		t.Fatal(err)
	}
	return graft.New[*tree.Node](yamldoc.DefaultVisitor(), ops).Transform(doc)
}

func TestReadOpsPath(t *testing.T) {
	doc := mustLoad(t, "items:\n- 1\n- 2\nname: x\n")
	res := apply(t, doc, `
- op: remove
  path: $.items[0]
- op: replace
  path: $.name
  value: renamed
`)
	items := tree.Get(res, "items")
	if len(items.Values) != 1 || *items.Values[0].Int64 != 2 {
		out, _ := yamldoc.Save(res)
		t.Errorf("items not edited:\n%s", out)
	}
	if got := tree.Get(res, "name"); got == nil || got.String != "renamed" {
		t.Error("name not replaced")
	}
}

func TestReadOpsWhere(t *testing.T) {
	doc := mustLoad(t, "- keep\n- drop\n- drop\n")
	res := apply(t, doc, `
- op: remove
  where: value == "drop"
`)
	if len(res.Values) != 1 || res.Values[0].String != "keep" {
		out, _ := yamldoc.Save(res)
		t.Errorf("unexpected result:\n%s", out)
	}
}

func TestReadOpsAdd(t *testing.T) {
	doc := mustLoad(t, "- b\n")
	res := apply(t, doc, `
- op: add
  path: $[0]
  before: a
  after: c
`)
	want := []string{"a", "b", "c"}
	if len(res.Values) != len(want) {
		t.Fatalf("got %d elements, want %d", len(res.Values), len(want))
	}
	for i, w := range want {
		if res.Values[i].String != w {
			t.Errorf("values[%d] = %q, want %q", i, res.Values[i].String, w)
		}
	}
}

func TestReadOpsMultiTarget(t *testing.T) {
	doc := mustLoad(t, "a:\n  v: old\nb:\n  v: old\n")
	res := apply(t, doc, `
- op: replace
  path: $...v
  value: new
`)
	for _, key := range []string{"a", "b"} {
		if got := tree.Get(tree.Get(res, key), "v"); got == nil || got.String != "new" {
			t.Errorf("$.%s.v not replaced", key)
		}
	}
}

func TestReadOpsRFC(t *testing.T) {
	doc := mustLoad(t, "a: 1\n")
	ops, err := readOps(true, doc, []byte(`[{"op": "replace", "path": "/a", "value": 2}]`))
	if err != nil {
		t.Fatal(err)
	}
	res := graft.New[*tree.Node](yamldoc.DefaultVisitor(), ops).Transform(doc)
	if got := tree.Get(res, "a"); got == nil || got.Int64 == nil || *got.Int64 != 2 {
		t.Error("rfc patch not applied")
	}
}

func TestReadOpsErrors(t *testing.T) {
	doc := mustLoad(t, "a: 1\n")
	for _, opsYAML := range []string{
		"- op: remove\n",                                  // no target
		"- op: remove\n  path: $.a\n  where: value == 1", // both targets
		"- op: frobnicate\n  path: $.a\n",                // unknown op
		"- op: remove\n  where: 'value +'\n",             // bad selector
		"- op: remove\n  path: 'a.b'\n",                  // bad path
	} {
		if _, err := readOps(false, doc, []byte(opsYAML)); err == nil {
			t.Errorf("%q: expected error", opsYAML)
		}
	}
}
