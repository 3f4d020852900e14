package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"resincalc/internal/config"
	"resincalc/internal/recipe"
)

const defaultQuantity = 100

// calcOptions holds the flags shared by calc, watch and library calc.
type calcOptions struct {
	component string
	base      bool
	precision int
	expand    bool
	json      bool
}

func (o *calcOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.component, "component", "", "Scale so this component (name or 1-based position) weighs the quantity")
	cmd.Flags().BoolVar(&o.base, "base", false, "Scale so the base component weighs the quantity")
	cmd.Flags().IntVar(&o.precision, "precision", -1, "Decimals to display (default from config)")
	cmd.Flags().BoolVar(&o.expand, "expand", false, "Replace mixture references by their components")
	cmd.Flags().BoolVar(&o.json, "json", false, "Output unrounded values as JSON")
}

func (o *calcOptions) validate() error {
	if o.component != "" && o.base {
		return errors.New("--component and --base are mutually exclusive")
	}
	if o.precision > 6 {
		return fmt.Errorf("--precision must be at most 6, got %d", o.precision)
	}
	return nil
}

// calcResult is one computed batch. Masses are never rounded here.
type calcResult struct {
	Recipe    string           `json:"recipe"`
	Mode      string           `json:"mode"`
	Component string           `json:"component,omitempty"`
	Value     float64          `json:"value"`
	Expanded  bool             `json:"expanded"`
	Portions  []recipe.Portion `json:"portions"`
	Total     float64          `json:"total"`
}

func quantityArg(args []string, display config.Display) (float64, error) {
	if len(args) < 2 {
		return defaultQuantity, nil
	}
	return newQuantityFormatter(display, -1).parseQuantity(args[1])
}

func (o *calcOptions) compute(store *recipe.Store, name string, quantity float64) (calcResult, error) {
	r, err := findRecipe(store, name)
	if err != nil {
		return calcResult{}, err
	}

	spec := recipe.Total(quantity)
	switch {
	case o.base:
		spec = recipe.ByBase(r, quantity)
	case o.component != "":
		index, err := componentIndex(r, o.component)
		if err != nil {
			return calcResult{}, err
		}
		spec = recipe.ByIndex(index, quantity)
	}

	var portions []recipe.Portion
	if o.expand {
		portions, err = store.Expand(r.Name, spec)
	} else {
		portions, err = recipe.Scale(r, spec)
	}
	if err != nil {
		return calcResult{}, err
	}

	result := calcResult{
		Recipe:   r.Name,
		Mode:     spec.Mode.String(),
		Value:    quantity,
		Expanded: o.expand,
		Portions: portions,
		Total:    recipe.TotalOf(portions),
	}
	if spec.Mode == recipe.ByComponent && spec.Index >= 0 && spec.Index < len(r.Components) {
		result.Component = r.Components[spec.Index].Name
	}
	return result, nil
}

func (o *calcOptions) render(cmd *cobra.Command, out io.Writer, display config.Display, result calcResult) error {
	if o.json {
		return writeJSON(cmd, result)
	}
	f := newQuantityFormatter(display, o.precision)

	switch result.Mode {
	case recipe.ByComponent.String():
		fmt.Fprintf(out, "%s: %s of %s\n", result.Recipe, f.mass(result.Value), result.Component)
	default:
		fmt.Fprintf(out, "%s: %s total\n", result.Recipe, f.mass(result.Value))
	}

	rows := make([][]string, 0, len(result.Portions))
	for i, p := range result.Portions {
		rows = append(rows, []string{strconv.Itoa(i + 1), p.Name, f.mass(p.Mass)})
	}
	fmt.Fprintln(out, renderTable(tableData{
		headers: []string{"#", "Component", "Mass"},
		rows:    rows,
		footer:  []string{"", "Total", f.mass(result.Total)},
		aligns:  []columnAlignment{alignRight, alignLeft, alignRight},
	}, tableStyle(display.Style, out)))
	return nil
}

func newCalcCommand(ctx *commandContext) *cobra.Command {
	var opts calcOptions

	cmd := &cobra.Command{
		Use:   "calc <recipe> [quantity]",
		Short: "Compute component masses for a batch (default 100 g total)",
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
			result, err := opts.compute(cat.Store(), args[0], quantity)
			if err != nil {
				return err
			}
			return opts.render(cmd, cmd.OutOrStdout(), cfg.Display, result)
		},
	}
	opts.register(cmd)
	return cmd
}
