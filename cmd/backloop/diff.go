package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/backloop/encode"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two files", cli.ErrUsage)
	}
	from, err := renderDocs(cfg.MainConfig, args[0], cc.In)
	if err != nil {
		return err
	}
	to, err := renderDocs(cfg.MainConfig, args[1], cc.In)
	if err != nil {
		return err
	}
	n, err := writeLineDiff(cc.Out, from, to, cfg.useColor(cc.Out))
	if err != nil {
		return err
	}
	if n > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// renderDocs renders the node trees of file without colors, so that the
// diff is computed on plain text.
func renderDocs(cfg *MainConfig, file string, r io.Reader) (string, error) {
	docs, err := loadDocs(file, r)
	if err != nil {
		return "", err
	}
	buf := bytes.NewBuffer(nil)
	opts := []encode.EncodeOption{encode.EncodeTypes(!cfg.NoTypes)}
	if cfg.Indent > 0 {
		opts = append(opts, encode.EncodeIndent(cfg.Indent))
	}
	for i, doc := range docs {
		if i > 0 {
			buf.WriteString("---\n")
		}
		if err := encode.Encode(doc, buf, opts...); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// writeLineDiff writes a line oriented diff of from and to, returning the
// number of lines which differ.
func writeLineDiff(w io.Writer, from, to string, colored bool) (int, error) {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	changed := 0
	for _, d := range diffs {
		prefix, paint := " ", fmt.Sprint
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix, paint = "+", color.New(color.FgGreen).Sprint
		case diffpatch.DiffDelete:
			prefix, paint = "-", color.New(color.FgRed).Sprint
		}
		if !colored {
			paint = fmt.Sprint
		}
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			if d.Type != diffpatch.DiffEqual {
				changed++
			}
			if _, err := io.WriteString(w, paint(prefix+ln)); err != nil {
				return changed, err
			}
		}
	}
	return changed, nil
}
