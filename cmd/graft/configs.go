package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	J     bool `cli:"name=j aliases=json desc='encode output as json'"`
	Color bool `cli:"name=color desc='force color in diff output'"`

	Main *cli.Command
}

// useColor honors -color and otherwise follows the output terminal.
func (cfg *MainConfig) useColor(cc *cli.Context) bool {
	if cfg.Color {
		return true
	}
	colorSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorSet = opt.Value != nil
		break
	}
	if colorSet {
		return false
	}
	f, ok := cc.Out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type PatchConfig struct {
	*MainConfig

	RFC bool `cli:"name=rfc6902 desc='ops file is an RFC 6902 JSON patch'"`

	Patch *cli.Command
}

type DiffConfig struct {
	*MainConfig

	RFC bool `cli:"name=rfc6902 desc='ops file is an RFC 6902 JSON patch'"`

	Diff *cli.Command
}

type SelectConfig struct {
	*MainConfig

	Values bool `cli:"name=v aliases=values desc='print matched values instead of paths'"`

	Select *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}
