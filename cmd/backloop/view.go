package main

import (
	"io"

	"github.com/signadot/backloop/encode"
	"github.com/signadot/backloop/snode"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := cfg.encOpts(cc.Out)
	return forEachDoc(args, cc.In, func(_ string, i int, node *snode.Node) error {
		if i > 0 {
			if _, err := io.WriteString(cc.Out, "---\n"); err != nil {
				return err
			}
		}
		if !cfg.Refs {
			return encode.Encode(node, cc.Out, opts...)
		}
		tree, resolver := node.CreateBackloopReference()
		return encode.EncodeRefs(tree, resolver, cc.Out, opts...)
	})
}
