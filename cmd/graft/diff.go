package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/graft-format/graft/textdiff"
	"github.com/graft-format/graft/yamldoc"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 arguments, an ops file and a file", cli.ErrUsage)
	}
	doc, res, err := applyOps(cfg.RFC, cc, args[0], args[1])
	if err != nil {
		return err
	}
	before, err := yamldoc.Save(doc)
	if err != nil {
		return fmt.Errorf("error encoding %q: %w", args[1], err)
	}
	after, err := yamldoc.Save(res)
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	out := textdiff.Unified(string(before), string(after),
		textdiff.Color(cfg.useColor(cc)))
	_, err = cc.Out.Write([]byte(out))
	return err
}
