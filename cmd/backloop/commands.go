package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "backloop").
		WithSynopsis("backloop [opts] command [opts]").
		WithDescription("backloop builds typed node trees and resolves shadow tree placeholders.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return backloopMain(cfg, cc, args)
		}).
		WithSubs(
			DemoCommand(cfg),
			ViewCommand(cfg),
			ResolveCommand(cfg),
			DiffCommand(cfg))
}

func DemoCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DemoConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("demo").
		WithSynopsis("demo [-refs]").
		WithDescription("build the sample object's node tree and resolve the placeholder at c.d").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return demo(cfg, cc, args)
		})
	cfg.Demo = cmd
	return cmd
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithSynopsis("view [-refs] [files]").
		WithDescription("view the node trees of yaml or json documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func ResolveCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ResolveConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("resolve").
		WithAliases("r", "res").
		WithSynopsis("resolve <kpath> [files]").
		WithDescription("navigate the shadow tree of documents and resolve the placeholder found").
		WithRun(func(cc *cli.Context, args []string) error {
			return resolve(cfg, cc, args)
		})
	cfg.Resolve = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("diff").
		WithAliases("d").
		WithSynopsis("diff a b").
		WithDescription("diff the node trees of two documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}
