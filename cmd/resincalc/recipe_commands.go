package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"resincalc/internal/recipe"
)

type recipeSummaryJSON struct {
	Name       string `json:"name"`
	Components int    `json:"components"`
	Base       int    `json:"base"`
	Mixture    bool   `json:"mixture"`
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes in document order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cat, err := ctx.loadCatalog()
			if err != nil {
				return err
			}
			store := cat.Store()
			modified, hasModified := store.LastModified()

			if jsonOut {
				payload := struct {
					Source       string              `json:"source"`
					LastModified string              `json:"last_modified,omitempty"`
					Recipes      []recipeSummaryJSON `json:"recipes"`
				}{Source: cat.Source(), Recipes: summarize(store)}
				if hasModified {
					payload.LastModified = modified.Format(dateLayout)
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Recipes: %s (last modified %s)\n", cat.Source(), formatDate(modified, hasModified))
			rows := make([][]string, 0, store.Len())
			for _, s := range summarize(store) {
				kind := "recipe"
				if s.Mixture {
					kind = "mixture"
				}
				rows = append(rows, []string{s.Name, strconv.Itoa(s.Components), kind})
			}
			fmt.Fprintln(out, renderTable(tableData{
				headers: []string{"Recipe", "Components", "Type"},
				rows:    rows,
				aligns:  []columnAlignment{alignLeft, alignRight, alignLeft},
			}, tableStyle(cfg.Display.Style, out)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func summarize(store *recipe.Store) []recipeSummaryJSON {
	recipes := store.Recipes()
	out := make([]recipeSummaryJSON, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, recipeSummaryJSON{
			Name:       r.Name,
			Components: len(r.Components),
			Base:       r.Base,
			Mixture:    r.IsMixture(),
		})
	}
	return out
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <recipe>",
		Short: "Show a recipe's components and their share of the total",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cat, err := ctx.loadCatalog()
			if err != nil {
				return err
			}
			r, err := findRecipe(cat.Store(), args[0])
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, r)
			}

			f := newQuantityFormatter(cfg.Display, -1)
			sum := r.PartsSum()
			rows := make([][]string, 0, len(r.Components))
			for i, c := range r.Components {
				marker := ""
				if i == r.Base {
					marker = "base"
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					c.Name,
					f.parts(c.Parts),
					f.percent(c.Parts / sum),
					marker,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, r.Name)
			fmt.Fprintln(out, renderTable(tableData{
				headers: []string{"#", "Component", "Parts", "Share", ""},
				rows:    rows,
				footer:  []string{"", "Total", f.parts(sum), f.percent(1), ""},
				aligns:  []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft},
			}, tableStyle(cfg.Display.Style, out)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
