package tree

import (
	"github.com/graft-format/graft/debug"
)

// ChildVisitor implements the engine's descend seam for *Node trees:
// it applies a visitor to each child of a container node and splices
// the returned replacement sequences into a rebuilt node. A node none
// of whose descendants changed is returned as the identical instance.
//
// Rebuilding a node does not carry its attached comment: rebuilt nodes
// are fresh containers and only reused children keep their comments.
// Interior nodes are only rebuilt on the spine above an edit, so in
// practice this loses at most the comments between an edit and the
// root. The root's own comment is the document head comment, which is
// worth keeping; the PreserveRootComment variant re-attaches it after
// a root rebuild. Which variant to use is a property of the host
// encoding layer (see yamldoc.DefaultVisitor) and is chosen once, not
// per call.
type ChildVisitor struct {
	preserveRootComment bool
}

type VisitorOpt func(*ChildVisitor)

func PreserveRootComment(v bool) VisitorOpt {
	return func(cv *ChildVisitor) { cv.preserveRootComment = v }
}

func NewChildVisitor(opts ...VisitorOpt) *ChildVisitor {
	cv := &ChildVisitor{}
	for _, opt := range opts {
		opt(cv)
	}
	return cv
}

// Descend applies visit to each child of n and rebuilds n if any child
// changed. visit returns the replacement sequence for a child: an
// empty sequence drops it, a single identical node keeps it, anything
// else is spliced in place. Reused children are not re-parented; the
// input tree stays intact.
func (cv *ChildVisitor) Descend(n *Node, visit func(*Node) []*Node) *Node {
	switch n.Type {
	case ArrayType:
		return cv.descendArray(n, visit)
	case ObjectType:
		return cv.descendObject(n, visit)
	default:
		return n
	}
}

func (cv *ChildVisitor) descendArray(n *Node, visit func(*Node) []*Node) *Node {
	vals := make([]*Node, 0, len(n.Values))
	changed := false
	for _, val := range n.Values {
		rs := visit(val)
		if len(rs) == 1 && rs[0] == val {
			vals = append(vals, val)
			continue
		}
		changed = true
		vals = append(vals, rs...)
	}
	if !changed {
		return n
	}
	if debug.Host() {
		debug.Logf("descend: rebuilding array %s with %d value(s)\n", n.Path(), len(vals))
	}
	res := &Node{Type: ArrayType, Values: vals}
	cv.keepRootComment(n, res)
	return res
}

func (cv *ChildVisitor) descendObject(n *Node, visit func(*Node) []*Node) *Node {
	fields := make([]*Node, 0, len(n.Fields))
	vals := make([]*Node, 0, len(n.Values))
	changed := false
	for i, val := range n.Values {
		rs := visit(val)
		if len(rs) == 1 && rs[0] == val {
			fields = append(fields, n.Fields[i])
			vals = append(vals, val)
			continue
		}
		changed = true
		for _, r := range rs {
			// A spliced-in node names its own key via ParentField;
			// one that carries none inherits the key it displaced.
			key := r.ParentField
			if r == val || key == "" {
				key = n.Fields[i].String
			}
			fields = append(fields, &Node{Type: StringType, String: key})
			vals = append(vals, r)
		}
	}
	if !changed {
		return n
	}
	if debug.Host() {
		debug.Logf("descend: rebuilding object %s with %d member(s)\n", n.Path(), len(vals))
	}
	res := &Node{Type: ObjectType, Fields: fields, Values: vals}
	cv.keepRootComment(n, res)
	return res
}

func (cv *ChildVisitor) keepRootComment(old, rebuilt *Node) {
	if !cv.preserveRootComment {
		return
	}
	if old.Parent != nil {
		return
	}
	rebuilt.Comment = old.Comment
}
