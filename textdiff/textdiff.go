// Package textdiff renders a line diff between two encoded documents,
// used by the CLI to preview what a patch will do.
package textdiff

import (
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Config struct {
	Color bool
}

type Opt func(*Config)

func Color(v bool) Opt {
	return func(c *Config) { c.Color = v }
}

// Lines computes a line-granular diff between from and to.
func Lines(from, to string) []diffpatch.Diff {
	diffCfg := diffpatch.New()
	c1, c2, lines := diffCfg.DiffLinesToChars(from, to)
	diffs := diffCfg.DiffMain(c1, c2, false)
	return diffCfg.DiffCharsToLines(diffs, lines)
}

// Render formats diffs with -/+ markers, one marker per line.
func Render(diffs []diffpatch.Diff, opts ...Opt) string {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	buf := &strings.Builder{}
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			writeLines(buf, "-", d.Text, cfg.Color, color.RedString)
		case diffpatch.DiffInsert:
			writeLines(buf, "+", d.Text, cfg.Color, color.GreenString)
		case diffpatch.DiffEqual:
			writeLines(buf, " ", d.Text, false, nil)
		}
	}
	return buf.String()
}

// Unified diffs two documents and renders the result in one call.
func Unified(from, to string, opts ...Opt) string {
	return Render(Lines(from, to), opts...)
}

func writeLines(buf *strings.Builder, marker, text string, colorize bool, paint func(string, ...any) string) {
	for line := range strings.Lines(text) {
		out := marker + " " + strings.TrimSuffix(line, "\n")
		if colorize {
			out = paint("%s", out)
		}
		buf.WriteString(out)
		buf.WriteByte('\n')
	}
}
