package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/graft-format/graft/tree"
	"github.com/graft-format/graft/yamldoc"
)

func getObjFile(cc *cli.Context, path string) (*tree.Node, error) {
	d, err := readFile(cc, path)
	if err != nil {
		return nil, err
	}
	doc, err := yamldoc.Load(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding %q: %w", path, err)
	}
	return doc, nil
}

func readFile(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

func writeDoc(cfg *MainConfig, cc *cli.Context, doc *tree.Node) error {
	var (
		d   []byte
		err error
	)
	if cfg.J {
		d, err = yamldoc.SaveJSON(doc)
	} else {
		d, err = yamldoc.Save(doc)
	}
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	_, err = cc.Out.Write(d)
	return err
}
