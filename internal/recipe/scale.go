package recipe

import "math"

// Mode selects how a ScaleSpec's value is interpreted.
type Mode int

const (
	// TotalMass scales the recipe so all components add up to the value.
	TotalMass Mode = iota
	// ByComponent scales the recipe so the component at Index weighs the value.
	ByComponent
)

func (m Mode) String() string {
	switch m {
	case TotalMass:
		return "total"
	case ByComponent:
		return "component"
	default:
		return "unknown"
	}
}

// ScaleSpec describes the requested batch size.
type ScaleSpec struct {
	Mode  Mode
	Index int
	Value float64
}

// Total requests a batch whose components add up to mass.
func Total(mass float64) ScaleSpec {
	return ScaleSpec{Mode: TotalMass, Value: mass}
}

// ByIndex requests a batch in which component index weighs mass.
func ByIndex(index int, mass float64) ScaleSpec {
	return ScaleSpec{Mode: ByComponent, Index: index, Value: mass}
}

// ByBase requests a batch in which the recipe's base component weighs mass.
func ByBase(r Recipe, mass float64) ScaleSpec {
	return ByIndex(r.Base, mass)
}

// Portion is the scaled mass of one component.
type Portion struct {
	Name string  `json:"name"`
	Mass float64 `json:"mass"`
}

// Scale returns the mass of every component of r, in recipe order, for the
// requested batch. Values are not rounded.
func Scale(r Recipe, spec ScaleSpec) ([]Portion, error) {
	if spec.Value <= 0 || math.IsInf(spec.Value, 0) || math.IsNaN(spec.Value) {
		return nil, &InvalidScaleValueError{Value: spec.Value}
	}

	if spec.Mode == ByComponent && (spec.Index < 0 || spec.Index >= len(r.Components)) {
		return nil, &IndexOutOfRangeError{Index: spec.Index, Count: len(r.Components)}
	}

	sum := r.PartsSum()
	if !(sum > 0) || math.IsInf(sum, 0) {
		return nil, &InvalidRecipeStateError{Recipe: r.Name, Reason: "parts do not add up to a positive finite sum"}
	}

	var factor float64
	switch spec.Mode {
	case TotalMass:
		factor = spec.Value / sum
	case ByComponent:
		parts := r.Components[spec.Index].Parts
		if !validParts(parts) {
			return nil, &InvalidRecipeStateError{Recipe: r.Name, Reason: "selected component has no positive parts"}
		}
		factor = spec.Value / parts
	default:
		return nil, &UnknownModeError{Mode: spec.Mode}
	}

	out := make([]Portion, len(r.Components))
	for i, c := range r.Components {
		out[i] = Portion{Name: c.Name, Mass: c.Parts * factor}
	}
	if spec.Mode == ByComponent {
		// parts*(v/parts) can drift by an ulp; the requested component is exact.
		out[spec.Index].Mass = spec.Value
	}
	return out, nil
}

// TotalOf returns the summed mass of portions.
func TotalOf(portions []Portion) float64 {
	var total float64
	for _, p := range portions {
		total += p.Mass
	}
	return total
}

// Round rounds v to the given number of decimals, halves away from zero.
// Negative precision is treated as zero. Only presentation code should round;
// Scale always returns full precision.
func Round(v float64, precision int) float64 {
	if precision < 0 {
		precision = 0
	}
	pow := math.Pow10(precision)
	return math.Round(v*pow) / pow
}
