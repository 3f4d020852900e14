package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"resincalc/internal/catalog"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var opts calcOptions

	cmd := &cobra.Command{
		Use:   "watch <recipe> [quantity]",
		Short: "Recompute a batch every time the recipe file changes",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			quantity, err := quantityArg(args, cfg.Display)
			if err != nil {
				return err
			}
			cat, err := ctx.loadCatalog()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()
			show := func(snap *catalog.Snapshot) {
				result, err := opts.compute(snap.Store, args[0], quantity)
				if err != nil {
					fmt.Fprintf(errOut, "recipes updated but %v\n", err)
					return
				}
				if err := opts.render(cmd, out, cfg.Display, result); err != nil {
					fmt.Fprintln(errOut, err)
				}
			}

			first, err := cat.Current()
			if err != nil {
				return err
			}
			result, err := opts.compute(first.Store, args[0], quantity)
			if err != nil {
				return err
			}
			if err := opts.render(cmd, out, cfg.Display, result); err != nil {
				return err
			}

			cmdCtx := cmd.Context()
			if cmdCtx == nil {
				cmdCtx = context.Background()
			}
			signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return cat.Watch(signalCtx, cfg.Recipes.File, cfg.WatchDebounce(), func(snap *catalog.Snapshot) {
				if !opts.json {
					fmt.Fprintf(out, "\nReloaded %s (generation %d)\n", snap.LoadedAt.Format(dateLayout), snap.Generation)
				}
				show(snap)
			})
		},
	}
	opts.register(cmd)
	return cmd
}
