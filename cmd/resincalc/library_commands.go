package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"resincalc/internal/config"
	"resincalc/internal/recipefile"
)

func newLibraryCommand(ctx *commandContext) *cobra.Command {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Manage the SQLite recipe library",
	}

	libraryCmd.AddCommand(newLibraryImportCommand(ctx))
	libraryCmd.AddCommand(newLibraryListCommand(ctx))
	libraryCmd.AddCommand(newLibraryCalcCommand(ctx))
	libraryCmd.AddCommand(newLibraryExportCommand(ctx))

	return libraryCmd
}

func newLibraryImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the library content with a recipe document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			source := cfg.Recipes.File
			if len(args) == 1 {
				if source, err = config.ExpandPath(strings.TrimSpace(args[0])); err != nil {
					return fmt.Errorf("resolve recipe file: %w", err)
				}
			}

			store, err := recipefile.Load(source)
			if err != nil {
				return fmt.Errorf("load recipes: %w", err)
			}

			lib, err := ctx.openLibrary(cmd.Context())
			if err != nil {
				return err
			}
			defer lib.Close()

			result, err := lib.Import(cmd.Context(), store)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d recipes from %s into %s (batch %s)\n",
				result.Recipes, source, lib.Path(), result.BatchID)
			return nil
		},
	}
}

func newLibraryListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes stored in the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			lib, err := ctx.openLibrary(cmd.Context())
			if err != nil {
				return err
			}
			defer lib.Close()

			entries, err := lib.List(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Library is empty; run `resincalc library import` first")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.Name,
					strconv.Itoa(e.Components),
					formatDate(e.LastModified, e.HasLastModified),
					e.ImportedAt.Local().Format(dateLayout),
				})
			}
			fmt.Fprintln(out, renderTable(tableData{
				headers: []string{"Recipe", "Components", "Last modified", "Imported"},
				rows:    rows,
				aligns:  []columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
			}, tableStyle(cfg.Display.Style, out)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newLibraryCalcCommand(ctx *commandContext) *cobra.Command {
	var opts calcOptions

	cmd := &cobra.Command{
		Use:   "calc <recipe> [quantity]",
		Short: "Compute a batch from a recipe stored in the library",
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
			lib, err := ctx.openLibrary(cmd.Context())
			if err != nil {
				return err
			}
			defer lib.Close()

			store, err := lib.Load(cmd.Context())
			if err != nil {
				return err
			}
			result, err := opts.compute(store, args[0], quantity)
			if err != nil {
				return err
			}
			return opts.render(cmd, cmd.OutOrStdout(), cfg.Display, result)
		},
	}
	opts.register(cmd)
	return cmd
}

func newLibraryExportCommand(ctx *commandContext) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the library content as a recipe document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve export path: %w", err)
			}
			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("%s already exists (use --overwrite to replace it)", target)
				}
			}

			lib, err := ctx.openLibrary(cmd.Context())
			if err != nil {
				return err
			}
			defer lib.Close()

			store, err := lib.Load(cmd.Context())
			if err != nil {
				return err
			}
			modified, _ := store.LastModified()
			if err := recipefile.Save(target, store.Recipes(), modified); err != nil {
				return fmt.Errorf("export recipes: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d recipes to %s\n", store.Len(), target)
			return nil
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing file")
	return cmd
}
