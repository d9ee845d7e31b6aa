package main

import (
	"fmt"
	"io"

	"github.com/signadot/backloop/encode"
	"github.com/signadot/backloop/snode"

	"github.com/scott-cotton/cli"
)

func sampleObject() snode.Doc {
	return snode.Doc{
		{Key: "a", Value: "Hello World"},
		{Key: "b", Value: []string{"at index 0", "at index 1"}},
		{Key: "c", Value: snode.Doc{
			{Key: "d", Value: true},
			{Key: "e", Value: nil},
			{Key: "f", Value: snode.Undefined},
		}},
	}
}

func demo(cfg *DemoConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Demo.Parse(cc, args)
	if err != nil {
		cfg.Demo.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: demo takes no arguments", cli.ErrUsage)
	}
	return runDemo(cc.Out, cfg.Refs, cfg.encOpts(cc.Out)...)
}

func runDemo(w io.Writer, refs bool, opts ...encode.EncodeOption) error {
	node, err := snode.From(sampleObject())
	if err != nil {
		return err
	}
	tree, resolver := node.CreateBackloopReference()
	if refs {
		if err := encode.EncodeRefs(tree, resolver, w, opts...); err != nil {
			return err
		}
	}
	res, err := resolver.Resolve(tree.Field("c").Field("d"))
	if err != nil {
		return err
	}
	return encode.Encode(res, w, opts...)
}
