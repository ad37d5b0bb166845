package main

import (
	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, file := range args {
		doc, err := getObjFile(cc, file)
		if err != nil {
			return err
		}
		if err := writeDoc(cfg.MainConfig, cc, doc); err != nil {
			return err
		}
		if i < len(args)-1 {
			cc.Out.Write([]byte("---\n"))
		}
	}
	return nil
}
