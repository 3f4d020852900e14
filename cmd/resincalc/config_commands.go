package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"resincalc/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the resincalc settings file",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

// configTarget resolves where config init writes: --path when given,
// otherwise the default config location.
func configTarget(flagPath string) (string, error) {
	flagPath = strings.TrimSpace(flagPath)
	if flagPath == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("locate default settings file: %w", err)
		}
		return path, nil
	}
	path, err := config.ExpandPath(flagPath)
	if err != nil {
		return "", fmt.Errorf("resolve settings path %q: %w", flagPath, err)
	}
	return path, nil
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented sample settings file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := configTarget(targetPath)
			if err != nil {
				return err
			}

			_, statErr := os.Stat(target)
			switch {
			case statErr == nil && !overwrite:
				return fmt.Errorf("settings file %s exists; pass --overwrite to replace it with the sample", target)
			case statErr != nil && !errors.Is(statErr, fs.ErrNotExist):
				return fmt.Errorf("inspect %s: %w", target, statErr)
			}

			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create settings directory: %w", err)
			}
			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("write sample settings: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sample resincalc settings saved to %s\n", target)
			fmt.Fprintln(out, "Point [recipes] file at your recipe document (or set "+config.RecipesEnv+"), then check it with `resincalc config validate`.")
			fmt.Fprintln(out, "No recipe document yet? `resincalc recipes init` writes a starter one.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Where to write the settings file (default: user config directory)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing settings file")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the settings file and the recipe document it points at",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if !ctx.configSeen {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			if _, err := os.Stat(cfg.Recipes.File); err != nil {
				fmt.Fprintf(out, "Recipe file %s is not readable: %v\n", cfg.Recipes.File, err)
			} else {
				fmt.Fprintf(out, "Recipe file: %s\n", cfg.Recipes.File)
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
