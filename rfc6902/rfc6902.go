// Package rfc6902 compiles RFC 6902 JSON patches into identity-addressed
// edit operations against a tree document. The patch itself is decoded
// and validated by evanphx/json-patch; this package only resolves the
// path-addressed ops into node-addressed ones, so a batch can run
// through the graft rewriter alongside other edits.
//
// Paths that resolve to nothing compile to no ops at all, matching the
// engine's silent no-op policy for unreachable targets. The same
// applies to the few ops only expressible as a rewrite of the document
// root, which the rewriter cannot re-seat: remove or replace of the
// whole document (path ""), and adds into an empty root container.
// Adds elsewhere anchor on an existing child of the parent, so
// top-level member adds work like any other. Structurally unsupported
// patches (move, copy, test) are a compile error. Ops are resolved
// against the unpatched document: a compiled batch applies
// simultaneously, not sequentially, so later paths must not depend on
// earlier edits having shifted indexes.
package rfc6902

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/graft-format/graft/debug"
	"github.com/graft-format/graft/editop"
	"github.com/graft-format/graft/tree"
	"github.com/graft-format/graft/yamldoc"
)

// Ops compiles patchData against doc. The returned ops all reference
// doc as their tree.
func Ops(doc *tree.Node, patchData []byte) ([]editop.Op[*tree.Node], error) {
	p, err := jsonpatch.DecodePatch(patchData)
	if err != nil {
		return nil, fmt.Errorf("error decoding patch: %w", err)
	}
	var ops []editop.Op[*tree.Node]
	for i, jop := range p {
		path, err := jop.Path()
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		switch kind := jop.Kind(); kind {
		case "remove":
			target := resolve(doc, path)
			if target == nil {
				continue
			}
			ops = append(ops, editop.Remove(doc, target))
		case "replace":
			target := resolve(doc, path)
			if target == nil {
				continue
			}
			val, err := valueNode(jop)
			if err != nil {
				return nil, fmt.Errorf("op %d: %w", i, err)
			}
			ops = append(ops, editop.Replace(doc, target, val))
		case "add":
			val, err := valueNode(jop)
			if err != nil {
				return nil, fmt.Errorf("op %d: %w", i, err)
			}
			op, ok := addOp(doc, path, val)
			if !ok {
				if debug.Op() {
					debug.Logf("rfc6902: dropping add at %q\n", path)
				}
				continue
			}
			ops = append(ops, op)
		default:
			return nil, fmt.Errorf("op %d: unsupported op %q", i, kind)
		}
	}
	return ops, nil
}

// addOp maps an RFC 6902 add onto sibling insertion anchored on an
// existing child of the parent container: the current occupant of an
// array slot, the last element for appends, or the last member for a
// new object key. Anchoring on a child rather than replacing the
// parent keeps the op valid when the parent is the document root.
func addOp(doc *tree.Node, path string, val *tree.Node) (editop.Op[*tree.Node], bool) {
	var zero editop.Op[*tree.Node]
	parentPath, last, ok := splitPath(path)
	if !ok {
		return zero, false
	}
	parent := resolve(doc, parentPath)
	if parent == nil {
		return zero, false
	}
	switch parent.Type {
	case tree.ArrayType:
		n := len(parent.Values)
		idx := n
		if last != "-" {
			j, err := strconv.Atoi(last)
			if err != nil || j < 0 || j > n {
				return zero, false
			}
			idx = j
		}
		if idx < n {
			return editop.Add(doc, parent.Values[idx], val, nil), true
		}
		if n > 0 {
			return editop.Add(doc, parent.Values[n-1], nil, val), true
		}
		if parent == doc {
			// empty root array: no child to anchor on
			return zero, false
		}
		return editop.Replace(doc, parent, tree.FromSlice([]*tree.Node{val})), true
	case tree.ObjectType:
		if existing := tree.Get(parent, last); existing != nil {
			return editop.Replace(doc, existing, val), true
		}
		if n := len(parent.Values); n > 0 {
			return editop.Add(doc, parent.Values[n-1], nil, val.WithField(last)), true
		}
		if parent == doc {
			return zero, false
		}
		// val is freshly built from the patch payload, so giving it to
		// a constructor that parents it is safe
		return editop.Replace(doc, parent, tree.FromKeyVals([]tree.KeyVal{{Key: last, Val: val}})), true
	default:
		return zero, false
	}
}

func valueNode(jop jsonpatch.Operation) (*tree.Node, error) {
	raw, ok := jop["value"]
	if !ok || raw == nil {
		return nil, fmt.Errorf("missing value")
	}
	var v any
	if err := json.Unmarshal(*raw, &v); err != nil {
		return nil, fmt.Errorf("error decoding value: %w", err)
	}
	return yamldoc.FromValue(v), nil
}

// resolve walks a JSON pointer to the node it names, or nil.
func resolve(root *tree.Node, pointer string) *tree.Node {
	if pointer == "" {
		return root
	}
	if pointer[0] != '/' {
		return nil
	}
	res := root
	for _, tok := range strings.Split(pointer[1:], "/") {
		tok = unescape(tok)
		switch res.Type {
		case tree.ObjectType:
			res = tree.Get(res, tok)
			if res == nil {
				return nil
			}
		case tree.ArrayType:
			idx, err := strconv.Atoi(tok)
			if err != nil || idx < 0 || idx >= len(res.Values) {
				return nil
			}
			res = res.Values[idx]
		default:
			return nil
		}
	}
	return res
}

func splitPath(pointer string) (parent, last string, ok bool) {
	if pointer == "" || pointer[0] != '/' {
		return "", "", false
	}
	i := strings.LastIndexByte(pointer, '/')
	return pointer[:i], unescape(pointer[i+1:]), true
}

func unescape(tok string) string {
	tok = strings.ReplaceAll(tok, "~1", "/")
	return strings.ReplaceAll(tok, "~0", "~")
}
