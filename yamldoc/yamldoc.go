// Package yamldoc loads and saves tree documents through goccy/go-yaml.
// Parsing and emission belong to that library; this package only
// converts between its ordered decoding and *tree.Node, carrying head
// comments across via the comment map.
package yamldoc

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/graft-format/graft/debug"
	"github.com/graft-format/graft/tree"
)

// Load decodes one YAML (or JSON) document into a tree, attaching head
// comments to the nodes they precede.
func Load(data []byte) (*tree.Node, error) {
	cm := yaml.CommentMap{}
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap(), yaml.CommentToMap(cm)); err != nil {
		return nil, fmt.Errorf("error decoding document: %w", err)
	}
	root := FromValue(v)
	attachComments(root, cm)
	return root, nil
}

// Save encodes a tree as YAML, re-emitting node head comments.
func Save(root *tree.Node) ([]byte, error) {
	cm := yaml.CommentMap{}
	v := toValue(root, "$", cm)
	d, err := yaml.MarshalWithOptions(v, yaml.WithComment(cm))
	if err != nil {
		return nil, fmt.Errorf("error encoding document: %w", err)
	}
	return d, nil
}

// SaveJSON encodes a tree as JSON. Comments do not survive.
func SaveJSON(root *tree.Node) ([]byte, error) {
	v := toValue(root, "$", yaml.CommentMap{})
	d, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("error encoding document: %w", err)
	}
	return yaml.YAMLToJSON(d)
}

// FromValue builds a tree from a plain decoded Go value. Ordered maps
// (yaml.MapSlice) keep member order; plain maps fall back to sorted
// keys.
func FromValue(v any) *tree.Node {
	switch x := v.(type) {
	case nil:
		return tree.Null()
	case bool:
		return tree.FromBool(x)
	case string:
		return tree.FromString(x)
	case int:
		return tree.FromInt(int64(x))
	case int64:
		return tree.FromInt(x)
	case uint64:
		return tree.FromInt(int64(x))
	case float64:
		return tree.FromFloat(x)
	case float32:
		return tree.FromFloat(float64(x))
	case yaml.MapSlice:
		kvs := make([]tree.KeyVal, 0, len(x))
		for _, item := range x {
			kvs = append(kvs, tree.KeyVal{
				Key: fmt.Sprint(item.Key),
				Val: FromValue(item.Value),
			})
		}
		return tree.FromKeyVals(kvs)
	case map[string]any:
		m := make(map[string]*tree.Node, len(x))
		for k, mv := range x {
			m[k] = FromValue(mv)
		}
		return tree.FromMap(m)
	case []any:
		vals := make([]*tree.Node, len(x))
		for i, xv := range x {
			vals[i] = FromValue(xv)
		}
		return tree.FromSlice(vals)
	default:
		return tree.FromString(fmt.Sprint(x))
	}
}

func toValue(y *tree.Node, path string, cm yaml.CommentMap) any {
	if y.Comment != nil && len(y.Comment.Lines) > 0 {
		cm[path] = []*yaml.Comment{yaml.HeadComment(y.Comment.Lines...)}
	}
	switch y.Type {
	case tree.NullType:
		return nil
	case tree.BoolType:
		return y.Bool
	case tree.StringType:
		return y.String
	case tree.NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		return nil
	case tree.ObjectType:
		ms := make(yaml.MapSlice, 0, len(y.Values))
		for i, val := range y.Values {
			key := y.Fields[i].String
			ms = append(ms, yaml.MapItem{
				Key:   key,
				Value: toValue(val, path+"."+key, cm),
			})
		}
		return ms
	case tree.ArrayType:
		vals := make([]any, len(y.Values))
		for i, val := range y.Values {
			vals[i] = toValue(val, path+"["+strconv.Itoa(i)+"]", cm)
		}
		return vals
	default:
		return nil
	}
}

func attachComments(root *tree.Node, cm yaml.CommentMap) {
	for path, comments := range cm {
		node, err := root.GetPath(path)
		if err != nil || node == nil {
			if debug.Host() {
				debug.Logf("yamldoc: no node for comment path %q\n", path)
			}
			continue
		}
		for _, c := range comments {
			if c.Position != yaml.CommentHeadPosition {
				continue
			}
			node.Comment = tree.Comment(c.Texts...)
			break
		}
	}
}
