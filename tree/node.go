// Package tree holds the reference document tree the graft engine is
// exercised against: an ordered, rooted structure of nodes identified
// by pointer. The package also provides the two reference child
// visitors (see descend.go) that implement the engine's descend seam.
//
// Parent back-links are maintained for trees built by this package's
// constructors and by yamldoc loading. A rewrite reuses untouched nodes
// without re-linking them, so upward navigation is only meaningful on
// the tree a node was loaded into, never on a rewritten result.
package tree

import (
	"maps"
	"slices"
)

type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string

	// Object nodes: Fields[i] names Values[i]. Array nodes: Values
	// only. Leaves: neither.
	Fields []*Node
	Values []*Node

	// Comment is an optional CommentType node holding the lines of
	// the comment block attached above this node.
	Comment *Node
	Lines   []string

	String  string
	Bool    bool
	Int64   *int64
	Float64 *float64
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Int64: &v}
}

func FromFloat(v float64) *Node {
	return &Node{Type: NumberType, Float64: &v}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func Null() *Node {
	return &Node{Type: NullType}
}

func Comment(lines ...string) *Node {
	return &Node{Type: CommentType, Lines: lines}
}

// WithComment attaches a comment block to y and returns y.
func (y *Node) WithComment(lines ...string) *Node {
	y.Comment = Comment(lines...)
	return y
}

// WithField sets the key y contributes when spliced into an object
// parent, and returns y.
func (y *Node) WithField(field string) *Node {
	y.ParentField = field
	return y
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals builds an object node preserving member order.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		key := &Node{
			Type:        StringType,
			String:      kv.Key,
			Parent:      res,
			ParentIndex: i,
			ParentField: kv.Key,
		}
		kv.Val.Parent = res
		kv.Val.ParentIndex = i
		kv.Val.ParentField = kv.Key
		res.Fields[i] = key
		res.Values[i] = kv.Val
	}
	return res
}

// FromMap builds an object node with members in sorted key order.
func FromMap(m map[string]*Node) *Node {
	keys := slices.Sorted(maps.Keys(m))
	kvs := make([]KeyVal, len(keys))
	for i, key := range keys {
		kvs[i] = KeyVal{Key: key, Val: m[key]}
	}
	return FromKeyVals(kvs)
}

// ToMap returns the members of an object node; nil for other types.
func ToMap(y *Node) map[string]*Node {
	if y.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(y.Fields))
	for i := range y.Fields {
		res[y.Fields[i].String] = y.Values[i]
	}
	return res
}

func FromSlice(vals []*Node) *Node {
	res := &Node{Type: ArrayType}
	res.Values = make([]*Node, len(vals))
	for i, v := range vals {
		v.Parent = res
		v.ParentIndex = i
		res.Values[i] = v
	}
	return res
}

// Get returns the value of the named object member, or nil.
func Get(y *Node, field string) *Node {
	for i := range y.Fields {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.cloneTo(res)
}

func (y *Node) cloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.String = y.String
	dst.Bool = y.Bool
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	dst.Lines = slices.Clone(y.Lines)
	if y.Comment != nil {
		dst.Comment = y.Comment.Clone()
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, yf := range y.Fields {
			f := yf.Clone()
			f.Parent = dst
			dst.Fields[i] = f
		}
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			v := yv.Clone()
			v.Parent = dst
			dst.Values[i] = v
		}
	}
	return dst
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// Visit walks the subtree rooted at y in document order. f is called
// before and after each node's children (isPost false, then true); a
// false pre-order return skips the node's children.
func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yv := range y.Values {
			if err := yv.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

// Value returns the scalar payload of a leaf node as a plain Go value:
// string, bool, int64, float64, or nil.
func (y *Node) Value() any {
	switch y.Type {
	case StringType:
		return y.String
	case BoolType:
		return y.Bool
	case NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		return nil
	default:
		return nil
	}
}
