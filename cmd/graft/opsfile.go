package main

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/graft-format/graft/editop"
	"github.com/graft-format/graft/rfc6902"
	"github.com/graft-format/graft/selector"
	"github.com/graft-format/graft/tree"
	"github.com/graft-format/graft/yamldoc"
)

// OpSpec is one entry of an ops file: a YAML list of edits addressed
// either by dollar path ([*] and .. select multiple targets) or by a
// selector expression.
type OpSpec struct {
	Op    string `yaml:"op"`
	Path  string `yaml:"path"`
	Where string `yaml:"where"`

	Value  any `yaml:"value"`
	Before any `yaml:"before"`
	After  any `yaml:"after"`
}

func readOps(rfc bool, doc *tree.Node, data []byte) ([]editop.Op[*tree.Node], error) {
	if rfc {
		return rfc6902.Ops(doc, data)
	}
	var specs []OpSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("error decoding ops file: %w", err)
	}
	return compileOps(doc, specs)
}

func compileOps(doc *tree.Node, specs []OpSpec) ([]editop.Op[*tree.Node], error) {
	var ops []editop.Op[*tree.Node]
	for i := range specs {
		spec := &specs[i]
		targets, err := specTargets(doc, spec)
		if err != nil {
			return nil, fmt.Errorf("ops[%d]: %w", i, err)
		}
		for _, target := range targets {
			switch spec.Op {
			case "remove":
				ops = append(ops, editop.Remove(doc, target))
			case "replace":
				ops = append(ops, editop.Replace(doc, target, yamldoc.FromValue(spec.Value)))
			case "add":
				var before, after *tree.Node
				if spec.Before != nil {
					before = yamldoc.FromValue(spec.Before)
				}
				if spec.After != nil {
					after = yamldoc.FromValue(spec.After)
				}
				ops = append(ops, editop.Add(doc, target, before, after))
			default:
				return nil, fmt.Errorf("ops[%d]: unknown op %q", i, spec.Op)
			}
		}
	}
	return ops, nil
}

func specTargets(doc *tree.Node, spec *OpSpec) ([]*tree.Node, error) {
	switch {
	case spec.Path != "" && spec.Where != "":
		return nil, fmt.Errorf("op %q has both path and where", spec.Op)
	case spec.Path != "":
		return doc.ListPath(nil, spec.Path)
	case spec.Where != "":
		s, err := selector.Compile(spec.Where)
		if err != nil {
			return nil, err
		}
		return s.Select(doc)
	default:
		return nil, fmt.Errorf("op %q has neither path nor where", spec.Op)
	}
}
