// Package selector builds edit operation batches from boolean
// expressions over node attributes, so callers can address targets by
// what they look like instead of by hand-resolved paths.
package selector

import (
	"fmt"
	"strconv"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/graft-format/graft/debug"
	"github.com/graft-format/graft/editop"
	"github.com/graft-format/graft/tree"
)

// Env is the expression environment presented for each node.
type Env struct {
	Type  string `expr:"type"`  // "Null", "Bool", "Number", "String", "Array", "Object"
	Value any    `expr:"value"` // scalar payload, nil for containers
	Field string `expr:"field"` // object member key the node sits under
	Path  string `expr:"path"`  // dollar path from the walked root
	Depth int    `expr:"depth"`
}

type Selector struct {
	src  string
	prog *vm.Program
}

func Compile(src string) (*Selector, error) {
	prog, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("error compiling selector %q: %w", src, err)
	}
	return &Selector{src: src, prog: prog}, nil
}

func (s *Selector) String() string {
	return s.src
}

// Select lists the nodes under root matching the selector, in document
// order. Results are the nodes themselves, usable as edit targets.
func (s *Selector) Select(root *tree.Node) ([]*tree.Node, error) {
	var dst []*tree.Node
	if err := s.walk(root, "$", "", 0, &dst); err != nil {
		return nil, err
	}
	return dst, nil
}

func (s *Selector) walk(n *tree.Node, path, field string, depth int, dst *[]*tree.Node) error {
	out, err := expr.Run(s.prog, Env{
		Type:  n.Type.String(),
		Value: n.Value(),
		Field: field,
		Path:  path,
		Depth: depth,
	})
	if err != nil {
		return fmt.Errorf("error evaluating %q at %s: %w", s.src, path, err)
	}
	matched, ok := out.(bool)
	if !ok {
		return fmt.Errorf("selector %q is not boolean at %s: got %T", s.src, path, out)
	}
	if matched {
		if debug.Select() {
			debug.Logf("select: %q matched %s\n", s.src, path)
		}
		*dst = append(*dst, n)
	}
	switch n.Type {
	case tree.ObjectType:
		for i, v := range n.Values {
			key := n.Fields[i].String
			if err := s.walk(v, path+"."+tree.PathField(key), key, depth+1, dst); err != nil {
				return err
			}
		}
	case tree.ArrayType:
		for i, v := range n.Values {
			if err := s.walk(v, path+"["+strconv.Itoa(i)+"]", "", depth+1, dst); err != nil {
				return err
			}
		}
	}
	return nil
}

// RemoveMatches builds one Remove per matching node.
func RemoveMatches(root *tree.Node, s *Selector) ([]editop.Op[*tree.Node], error) {
	matches, err := s.Select(root)
	if err != nil {
		return nil, err
	}
	ops := make([]editop.Op[*tree.Node], 0, len(matches))
	for _, m := range matches {
		ops = append(ops, editop.Remove(root, m))
	}
	return ops, nil
}

// ReplaceMatches builds one Replace per matching node. The factory is
// called once per match; each replacement must be a distinct node.
func ReplaceMatches(root *tree.Node, s *Selector, with func(*tree.Node) *tree.Node) ([]editop.Op[*tree.Node], error) {
	matches, err := s.Select(root)
	if err != nil {
		return nil, err
	}
	ops := make([]editop.Op[*tree.Node], 0, len(matches))
	for _, m := range matches {
		ops = append(ops, editop.Replace(root, m, with(m)))
	}
	return ops, nil
}

// InsertAround builds one Add per matching node. Either factory may be
// nil to skip that side.
func InsertAround(root *tree.Node, s *Selector, before, after func(*tree.Node) *tree.Node) ([]editop.Op[*tree.Node], error) {
	matches, err := s.Select(root)
	if err != nil {
		return nil, err
	}
	ops := make([]editop.Op[*tree.Node], 0, len(matches))
	for _, m := range matches {
		var b, a *tree.Node
		if before != nil {
			b = before(m)
		}
		if after != nil {
			a = after(m)
		}
		ops = append(ops, editop.Add(root, m, b, a))
	}
	return ops, nil
}
