package main

import (
	"fmt"

	"github.com/signadot/backloop/encode"
	"github.com/signadot/backloop/kpath"
	"github.com/signadot/backloop/snode"

	"github.com/scott-cotton/cli"
)

func resolve(cfg *ResolveConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Resolve.Parse(cc, args)
	if err != nil {
		cfg.Resolve.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: resolve requires one argument, a kinded path", cli.ErrUsage)
	}
	path := args[0]
	if _, err := kpath.Parse(path); err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	opts := cfg.encOpts(cc.Out)
	return forEachDoc(args[1:], cc.In, func(_ string, _ int, node *snode.Node) error {
		tree, resolver := node.CreateBackloopReference()
		res, err := resolver.ResolveKPath(tree, path)
		if err != nil {
			return err
		}
		return encode.Encode(res, cc.Out, opts...)
	})
}
