package recipe

import (
	"errors"
	"fmt"
	"strings"
)

// Category sentinels. Every typed error in this package matches exactly one of
// them with errors.Is.
var (
	ErrValidation = errors.New("invalid recipe data")
	ErrNotFound   = errors.New("recipe not found")
	ErrScale      = errors.New("invalid scale request")
)

// Error kinds reported by ErrorKind.
const (
	KindValidation = "validation"
	KindNotFound   = "not_found"
	KindScale      = "scale"
)

type validationError struct{}

func (validationError) Is(target error) bool { return target == ErrValidation }

// ErrorKind classifies the error for callers that map failures to statuses.
func (validationError) ErrorKind() string { return KindValidation }

type scaleError struct{}

func (scaleError) Is(target error) bool { return target == ErrScale }

// ErrorKind classifies the error for callers that map failures to statuses.
func (scaleError) ErrorKind() string { return KindScale }

// DuplicateRecipeError reports a recipe name that appears more than once.
type DuplicateRecipeError struct {
	validationError
	Name string
}

func (e *DuplicateRecipeError) Error() string {
	return fmt.Sprintf("duplicate recipe %q", e.Name)
}

// DuplicateComponentError reports a component name repeated within a recipe.
type DuplicateComponentError struct {
	validationError
	Recipe    string
	Component string
}

func (e *DuplicateComponentError) Error() string {
	return fmt.Sprintf("recipe %q: duplicate component %q", e.Recipe, e.Component)
}

// InvalidPartsError reports a parts value that is not a positive finite number.
type InvalidPartsError struct {
	validationError
	Recipe    string
	Component string
	Parts     float64
}

func (e *InvalidPartsError) Error() string {
	if e.Component == "" {
		return fmt.Sprintf("recipe %q: parts add up to %v (must be a positive finite number)", e.Recipe, e.Parts)
	}
	return fmt.Sprintf("recipe %q: component %q has invalid parts %v (must be a positive finite number)", e.Recipe, e.Component, e.Parts)
}

// InsufficientComponentsError reports a recipe with fewer than two components.
type InsufficientComponentsError struct {
	validationError
	Recipe string
	Count  int
}

func (e *InsufficientComponentsError) Error() string {
	return fmt.Sprintf("recipe %q: has %d component(s), at least %d required", e.Recipe, e.Count, MinComponents)
}

// EmptyNameError reports a blank recipe name (Position < 0) or a blank
// component name at Position.
type EmptyNameError struct {
	validationError
	Recipe   string
	Position int
}

func (e *EmptyNameError) Error() string {
	if e.Position < 0 {
		return "recipe name must not be empty"
	}
	return fmt.Sprintf("recipe %q: component %d has an empty name", e.Recipe, e.Position+1)
}

// InvalidBaseError reports a base component index outside the recipe.
type InvalidBaseError struct {
	validationError
	Recipe string
	Base   int
	Count  int
}

func (e *InvalidBaseError) Error() string {
	return fmt.Sprintf("recipe %q: base component index %d out of range [0, %d)", e.Recipe, e.Base, e.Count)
}

// UnknownReferenceError reports a mixture component that names a recipe the
// store does not contain.
type UnknownReferenceError struct {
	validationError
	Recipe    string
	Reference string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("recipe %q: references unknown recipe %q", e.Recipe, e.Reference)
}

// CycleError reports mixture references that loop back on themselves. Path
// starts and ends with the same recipe.
type CycleError struct {
	validationError
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("recipe reference cycle: %s", strings.Join(e.Path, " -> "))
}

// NotFoundError reports a lookup of a recipe the store does not contain.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("recipe %q not found", e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ErrorKind classifies the error for callers that map failures to statuses.
func (e *NotFoundError) ErrorKind() string { return KindNotFound }

// InvalidScaleValueError reports a requested mass that is not a positive
// finite number.
type InvalidScaleValueError struct {
	scaleError
	Value float64
}

func (e *InvalidScaleValueError) Error() string {
	return fmt.Sprintf("scale value %v must be a positive finite number", e.Value)
}

// IndexOutOfRangeError reports a component index outside the recipe.
type IndexOutOfRangeError struct {
	scaleError
	Index int
	Count int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("component index %d out of range [0, %d)", e.Index, e.Count)
}

// UnknownModeError reports a ScaleSpec with an unrecognised mode.
type UnknownModeError struct {
	scaleError
	Mode Mode
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("unknown scale mode %d", int(e.Mode))
}

// InvalidRecipeStateError reports a recipe that cannot be scaled because its
// parts do not add up to a usable divisor. Build never produces such recipes.
type InvalidRecipeStateError struct {
	scaleError
	Recipe string
	Reason string
}

func (e *InvalidRecipeStateError) Error() string {
	if e.Recipe == "" {
		return "invalid recipe state: " + e.Reason
	}
	return fmt.Sprintf("recipe %q: invalid state: %s", e.Recipe, e.Reason)
}
