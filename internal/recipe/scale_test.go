package recipe_test

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"resincalc/internal/recipe"
)

const tolerance = 1e-9

func approxEqual(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= tolerance*scale
}

func mustScale(t *testing.T, r recipe.Recipe, spec recipe.ScaleSpec) []recipe.Portion {
	t.Helper()
	out, err := recipe.Scale(r, spec)
	if err != nil {
		t.Fatalf("Scale(%s, %+v) returned error: %v", r.Name, spec, err)
	}
	return out
}

func TestScaleEpikoteByTotal(t *testing.T) {
	got := mustScale(t, epikote(), recipe.Total(130))
	want := []recipe.Portion{
		{Name: "epikote EPR 04908", Mass: 100},
		{Name: "epikure EPH 04908", Mass: 30},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d portions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Name != want[i].Name || !approxEqual(got[i].Mass, want[i].Mass) {
			t.Fatalf("portion %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestScaleEpikoteByComponent(t *testing.T) {
	got := mustScale(t, epikote(), recipe.ByIndex(1, 15))
	want := []recipe.Portion{
		{Name: "epikote EPR 04908", Mass: 50},
		{Name: "epikure EPH 04908", Mass: 15},
	}
	for i := range want {
		if got[i].Name != want[i].Name || !approxEqual(got[i].Mass, want[i].Mass) {
			t.Fatalf("portion %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestScaleByBase(t *testing.T) {
	r := araldite()
	r.Base = 1
	got := mustScale(t, r, recipe.ByBase(r, 19))
	if got[1].Mass != 19 {
		t.Fatalf("base component mass = %v, want 19", got[1].Mass)
	}
	if !approxEqual(got[0].Mass, 50) {
		t.Fatalf("resin mass = %v, want 50", got[0].Mass)
	}
}

func TestScaleRejectsInvalidValues(t *testing.T) {
	for _, v := range []float64{-5, 0, math.NaN(), math.Inf(1), math.Inf(-1)} {
		t.Run(fmt.Sprint(v), func(t *testing.T) {
			for _, spec := range []recipe.ScaleSpec{recipe.Total(v), recipe.ByIndex(0, v)} {
				_, err := recipe.Scale(epikote(), spec)
				var target *recipe.InvalidScaleValueError
				if !errors.As(err, &target) {
					t.Fatalf("expected InvalidScaleValueError, got %v", err)
				}
				if !errors.Is(err, recipe.ErrScale) {
					t.Fatalf("expected ErrScale, got %v", err)
				}
			}
		})
	}
}

func TestScaleIndexOutOfRange(t *testing.T) {
	for _, idx := range []int{-1, 2, 10} {
		_, err := recipe.Scale(epikote(), recipe.ByIndex(idx, 10))
		var target *recipe.IndexOutOfRangeError
		if !errors.As(err, &target) {
			t.Fatalf("index %d: expected IndexOutOfRangeError, got %v", idx, err)
		}
		if target.Index != idx || target.Count != 2 {
			t.Fatalf("unexpected error fields: %+v", target)
		}
	}
}

func TestScaleIndexCheckedBeforeRecipeState(t *testing.T) {
	_, err := recipe.Scale(recipe.Recipe{Name: "empty"}, recipe.ByIndex(0, 10))
	var target *recipe.IndexOutOfRangeError
	if !errors.As(err, &target) {
		t.Fatalf("expected IndexOutOfRangeError, got %v", err)
	}
	if target.Index != 0 || target.Count != 0 {
		t.Fatalf("unexpected error fields: %+v", target)
	}
}

func TestScaleUnknownMode(t *testing.T) {
	_, err := recipe.Scale(epikote(), recipe.ScaleSpec{Mode: recipe.Mode(7), Value: 10})
	var target *recipe.UnknownModeError
	if !errors.As(err, &target) {
		t.Fatalf("expected UnknownModeError, got %v", err)
	}
}

func TestScaleGuardsUnvalidatedRecipes(t *testing.T) {
	tests := []struct {
		name string
		r    recipe.Recipe
		spec recipe.ScaleSpec
	}{
		{"no components", recipe.Recipe{Name: "empty"}, recipe.Total(10)},
		{"zero parts", recipe.Recipe{Name: "zero", Components: []recipe.Component{{Name: "a", Parts: 0}, {Name: "b", Parts: 0}}}, recipe.Total(10)},
		{"zero selected", recipe.Recipe{Name: "sel", Components: []recipe.Component{{Name: "a", Parts: 0}, {Name: "b", Parts: 5}}}, recipe.ByIndex(0, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := recipe.Scale(tt.r, tt.spec)
			var target *recipe.InvalidRecipeStateError
			if !errors.As(err, &target) {
				t.Fatalf("expected InvalidRecipeStateError, got %v", err)
			}
		})
	}
}

func randomRecipe(rng *rand.Rand, i int) recipe.Recipe {
	n := 2 + rng.IntN(6)
	components := make([]recipe.Component, n)
	for j := range components {
		components[j] = recipe.Component{
			Name:  fmt.Sprintf("component-%d", j),
			Parts: 0.1 + rng.Float64()*200,
		}
	}
	return recipe.Recipe{Name: fmt.Sprintf("recipe-%d", i), Components: components}
}

func TestScaleProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(4908, 130))
	for i := 0; i < 200; i++ {
		r := randomRecipe(rng, i)
		if _, err := recipe.Build([]recipe.Recipe{r}); err != nil {
			t.Fatalf("generated invalid recipe: %v", err)
		}
		v := 0.5 + rng.Float64()*5000

		total := mustScale(t, r, recipe.Total(v))
		if got := recipe.TotalOf(total); !approxEqual(got, v) {
			t.Fatalf("%s: total mass %v, want %v", r.Name, got, v)
		}

		doubled := mustScale(t, r, recipe.Total(2*v))
		for j := range total {
			if !approxEqual(doubled[j].Mass, 2*total[j].Mass) {
				t.Fatalf("%s: scaling not linear at %d: %v vs %v", r.Name, j, doubled[j].Mass, 2*total[j].Mass)
			}
		}

		idx := rng.IntN(len(r.Components))
		byComp := mustScale(t, r, recipe.ByIndex(idx, v))
		if byComp[idx].Mass != v {
			t.Fatalf("%s: selected component mass %v, want %v", r.Name, byComp[idx].Mass, v)
		}
		for j, c := range r.Components {
			want := v * (c.Parts / r.Components[idx].Parts)
			if !approxEqual(byComp[j].Mass, want) {
				t.Fatalf("%s: component %d mass %v, want %v", r.Name, j, byComp[j].Mass, want)
			}
			if byComp[j].Name != c.Name {
				t.Fatalf("%s: order changed at %d", r.Name, j)
			}
		}
	}
}

func TestScaleIsPureUnderConcurrency(t *testing.T) {
	r := araldite()
	want := mustScale(t, r, recipe.Total(500))
	done := make(chan []recipe.Portion, 16)
	for i := 0; i < cap(done); i++ {
		go func() {
			out, _ := recipe.Scale(r, recipe.Total(500))
			done <- out
		}()
	}
	for i := 0; i < cap(done); i++ {
		got := <-done
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("concurrent result differs: %+v vs %+v", got[j], want[j])
			}
		}
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		v         float64
		precision int
		want      float64
	}{
		{23.076923, 1, 23.1},
		{76.923077, 1, 76.9},
		{0.25, 1, 0.3},
		{-0.25, 1, -0.3},
		{12.5, 0, 13},
		{12.5, -2, 13},
		{1.23456, 3, 1.235},
	}
	for _, tt := range tests {
		if got := recipe.Round(tt.v, tt.precision); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.v, tt.precision, got, tt.want)
		}
	}
}

func TestModeString(t *testing.T) {
	if recipe.TotalMass.String() != "total" || recipe.ByComponent.String() != "component" {
		t.Fatalf("unexpected mode names: %s %s", recipe.TotalMass, recipe.ByComponent)
	}
}
