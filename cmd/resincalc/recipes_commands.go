package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"resincalc/internal/config"
	"resincalc/internal/recipefile"
)

func newRecipesCommand(ctx *commandContext) *cobra.Command {
	recipesCmd := &cobra.Command{
		Use:   "recipes",
		Short: "Recipe document utilities",
	}
	recipesCmd.AddCommand(newRecipesInitCommand(ctx))
	return recipesCmd
}

func newRecipesInitCommand(ctx *commandContext) *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample recipe document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			target := cfg.Recipes.File
			if strings.TrimSpace(targetPath) != "" {
				if target, err = config.ExpandPath(strings.TrimSpace(targetPath)); err != nil {
					return fmt.Errorf("resolve recipe path: %w", err)
				}
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("recipe file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check recipe path: %w", err)
				}
			}

			if err := recipefile.WriteFile(target, recipefile.Sample()); err != nil {
				return fmt.Errorf("write sample recipes: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample recipes to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the recipe file (default recipes.file)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing recipe file")
	return cmd
}
