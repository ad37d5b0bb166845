package tree

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Path renders the dollar path of y within the tree it was loaded
// into, e.g. $.spec.containers[0].name.
func (y *Node) Path() string {
	if y.Parent == nil {
		return "$"
	}
	switch y.Parent.Type {
	case ObjectType:
		return y.Parent.Path() + "." + PathField(y.ParentField)
	case ArrayType:
		return y.Parent.Path() + "[" + strconv.Itoa(y.ParentIndex) + "]"
	default:
		panic("parent but not in container")
	}
}

// PathField renders one object key as a dollar path fragment, quoting
// it when it contains path metacharacters. Anything that synthesizes
// paths meant to re-resolve through ParsePath must build them with
// this.
func PathField(f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[]") == -1 {
		return f
	}
	return "'" + strings.Replace(f, "'", "\\'", -1) + "'"
}

// Path is one parsed fragment of a dollar path. Exactly one of Field,
// Index, IndexAll, or Subtree is set per fragment.
type Path struct {
	Field    *string
	Index    *int
	IndexAll bool
	Subtree  bool
	Next     *Path
}

func (p *Path) String() string {
	buf := bytes.NewBuffer([]byte{'$'})
	for x := p; x != nil; x = x.Next {
		switch {
		case x.Subtree:
			buf.WriteString("..")
		case x.IndexAll:
			buf.WriteString("[*]")
		case x.Field != nil:
			buf.WriteString("." + PathField(*x.Field))
		case x.Index != nil:
			fmt.Fprintf(buf, "[%d]", *x.Index)
		}
	}
	return buf.String()
}

func ParsePath(p string) (*Path, error) {
	if len(p) == 0 || p[0] != '$' {
		return nil, fmt.Errorf("path %q should start with '$'", p)
	}
	root := &Path{}
	if len(p) == 1 {
		return root, nil
	}
	if err := parseFrag(p[1:], root); err != nil {
		return nil, err
	}
	return root, nil
}

func parseFrag(frag string, parent *Path) error {
	if len(frag) == 0 {
		return nil
	}
	switch frag[0] {
	case '.':
		if len(frag) > 1 && frag[1] == '.' {
			parent.Subtree = true
			next := &Path{}
			if err := parseFrag(frag[2:], next); err != nil {
				return err
			}
			parent.Next = next
			return nil
		}
		field, rest, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		parent.Field = &field
		if rest == "" {
			return nil
		}
		next := &Path{}
		if err := parseFrag(rest, next); err != nil {
			return err
		}
		parent.Next = next
		return nil
	case '[':
		i := strings.IndexByte(frag[1:], ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		index, all, err := parseIndex(frag[1 : i+1])
		if err != nil {
			return err
		}
		parent.IndexAll = all
		if !all {
			parent.Index = &index
		}
		if len(frag) == i+2 {
			return nil
		}
		next := &Path{}
		if err := parseFrag(frag[i+2:], next); err != nil {
			return err
		}
		parent.Next = next
		return nil
	default:
		return fmt.Errorf("expected '.' or '['")
	}
}

func parseIndex(is string) (index int, all bool, err error) {
	if is == "*" {
		return 0, true, nil
	}
	u64, err := strconv.ParseUint(is, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return int(u64), false, nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch c {
		case '\\':
			escaped = true
		case '\'':
			if !escaped {
				return string(res), frag[i+1:], nil
			}
			fallthrough
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("end of string scanning for \"'\"")
}

// GetPath resolves a single-target dollar path to the node it names.
// Unlike ListPath it rejects [*] and .., and it returns the node
// itself, not a copy, so the result can be used as an edit target.
// A missing field resolves to (nil, nil).
func (y *Node) GetPath(path string) (*Node, error) {
	yp, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	res := y
	for yp != nil {
		switch {
		case yp.IndexAll:
			return nil, fmt.Errorf("any index in get")
		case yp.Subtree:
			return nil, fmt.Errorf("recurse .. in get")
		case yp.Index != nil:
			if res.Type != ArrayType {
				return nil, fmt.Errorf("expected array, got %s", res.Type)
			}
			index := *yp.Index
			if index < 0 || index >= len(res.Values) {
				return nil, fmt.Errorf("index out of bounds %d (len %d)", index, len(res.Values))
			}
			res = res.Values[index]
		case yp.Field != nil:
			if res.Type != ObjectType {
				return nil, fmt.Errorf("expected object, got %s", res.Type)
			}
			v := Get(res, *yp.Field)
			if v == nil {
				return nil, nil
			}
			res = v
		}
		yp = yp.Next
	}
	return res, nil
}

// ListPath resolves a dollar path to every node it names, appending to
// dst in document order. [*] selects all array elements and ..
// descends into all subtrees. Results are the nodes themselves.
func (y *Node) ListPath(dst []*Node, path string) ([]*Node, error) {
	yp, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return y.listPath(dst, yp)
}

func (y *Node) listPath(dst []*Node, yp *Path) ([]*Node, error) {
	if yp == nil || (yp.Field == nil && yp.Index == nil && !yp.IndexAll && !yp.Subtree) {
		return append(dst, y), nil
	}
	var err error
	if yp.Subtree {
		if err := y.Visit(func(node *Node, isPost bool) (bool, error) {
			if isPost {
				return false, nil
			}
			dst, err = node.listPath(dst, yp.Next)
			if err != nil {
				return false, err
			}
			return !node.Type.IsLeaf(), nil
		}); err != nil {
			return nil, err
		}
		return dst, nil
	}
	switch y.Type {
	case ObjectType:
		if yp.Field == nil {
			return dst, nil
		}
		for i := range y.Fields {
			if y.Fields[i].String != *yp.Field {
				continue
			}
			dst, err = y.Values[i].listPath(dst, yp.Next)
			if err != nil {
				return nil, err
			}
		}
		return dst, nil
	case ArrayType:
		if yp.Field != nil {
			return dst, nil
		}
		if yp.Index != nil {
			idx := *yp.Index
			if 0 <= idx && idx < len(y.Values) {
				dst, err = y.Values[idx].listPath(dst, yp.Next)
				if err != nil {
					return nil, err
				}
			}
			return dst, nil
		}
		for _, yv := range y.Values {
			dst, err = yv.listPath(dst, yp.Next)
			if err != nil {
				return nil, err
			}
		}
		return dst, nil
	default:
		return dst, nil
	}
}
