package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/graft-format/graft"
	"github.com/graft-format/graft/tree"
	"github.com/graft-format/graft/yamldoc"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires 2 arguments, an ops file and a file to which to apply it", cli.ErrUsage)
	}
	_, res, err := applyOps(cfg.RFC, cc, args[0], args[1])
	if err != nil {
		return err
	}
	return writeDoc(cfg.MainConfig, cc, res)
}

// applyOps loads the document, compiles the ops file against it, and
// runs one rewrite. It returns the document as loaded and as rewritten.
func applyOps(rfc bool, cc *cli.Context, opsPath, docPath string) (doc, res *tree.Node, err error) {
	doc, err = getObjFile(cc, docPath)
	if err != nil {
		return nil, nil, err
	}
	opsData, err := readFile(cc, opsPath)
	if err != nil {
		return nil, nil, err
	}
	ops, err := readOps(rfc, doc, opsData)
	if err != nil {
		return nil, nil, fmt.Errorf("error compiling %q: %w", opsPath, err)
	}
	t := graft.New(yamldoc.DefaultVisitor(), ops)
	return doc, t.Transform(doc), nil
}
