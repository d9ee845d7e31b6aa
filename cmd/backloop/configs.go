package main

import (
	"io"
	"os"

	"github.com/signadot/backloop/encode"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	NoTypes bool `cli:"name=notypes desc='omit type names from output'"`
	Indent  int  `cli:"name=indent desc='spaces per nesting level'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeTypes(!cfg.NoTypes),
	}
	if cfg.Indent > 0 {
		res = append(res, encode.EncodeIndent(cfg.Indent))
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// useColor reports whether output to w is colorized: always with -color,
// never with an explicit -color=false, otherwise when w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type DemoConfig struct {
	*MainConfig

	Refs bool `cli:"name=refs desc='also print the shadow tree'"`
	Demo *cli.Command
}

type ViewConfig struct {
	*MainConfig

	Refs bool `cli:"name=refs desc='print the shadow tree instead of the node tree'"`
	View *cli.Command
}

type ResolveConfig struct {
	*MainConfig

	Resolve *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}
