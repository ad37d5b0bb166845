package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/graft-format/graft/selector"
)

func sel(cfg *SelectConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Select.Parse(cc, args)
	if err != nil {
		cfg.Select.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: select requires an expression", cli.ErrUsage)
	}
	s, err := selector.Compile(args[0])
	if err != nil {
		return err
	}
	file := "-"
	if len(args) > 1 {
		file = args[1]
	}
	doc, err := getObjFile(cc, file)
	if err != nil {
		return err
	}
	matches, err := s.Select(doc)
	if err != nil {
		return err
	}
	for _, m := range matches {
		if cfg.Values {
			if err := writeDoc(cfg.MainConfig, cc, m); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(cc.Out, "%s\n", m.Path())
	}
	return nil
}
