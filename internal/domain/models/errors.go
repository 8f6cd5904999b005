package models

import (
	"errors"
	"fmt"
)

var (
	// ErrParse indicates the target volume text could not be read.
	ErrParse = errors.New("invalid volume")
	// ErrEmptyRecipe indicates no component could be parsed from the recipe text.
	ErrEmptyRecipe = errors.New("no components in recipe")
	// ErrUnitMismatch indicates a unit incompatible with the stock solution's unit.
	ErrUnitMismatch = errors.New("unit mismatch")
	// ErrUnsupportedUnit indicates a unit that cannot be used for the reagent.
	ErrUnsupportedUnit = errors.New("unsupported unit")
	// ErrUnknownReagent indicates a reagent missing from the catalog.
	ErrUnknownReagent = errors.New("unknown reagent")
	// ErrInvalidVolume indicates a non-positive total volume handed to the calculator.
	ErrInvalidVolume = errors.New("total volume must be positive")
	// ErrOutOfRange indicates a quantity too large to compute.
	ErrOutOfRange = errors.New("quantity out of range")
	// ErrExport indicates the worksheet could not be written.
	ErrExport = errors.New("export failed")
)

// ParseError names the volume text that could not be parsed.
type ParseError struct {
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s %q", ErrParse, e.Text)
	}
	return fmt.Sprintf("%s %q: %s", ErrParse, e.Text, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// UnitMismatchError reports a requested unit whose category differs from the stock's.
type UnitMismatchError struct {
	Reagent   string
	Requested Unit
	Stock     Unit
}

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("%s: %s requested in %s but stock is %s", ErrUnitMismatch, e.Reagent, e.Requested, e.Stock)
}

func (e *UnitMismatchError) Unwrap() error { return ErrUnitMismatch }

// UnsupportedUnitError reports a unit that cannot be applied to a reagent or
// a raw token that is not a known unit.
type UnsupportedUnitError struct {
	Reagent string
	Unit    string
}

func (e *UnsupportedUnitError) Error() string {
	if e.Reagent == "" {
		return fmt.Sprintf("%s %q", ErrUnsupportedUnit, e.Unit)
	}
	return fmt.Sprintf("%s %q for solid %s", ErrUnsupportedUnit, e.Unit, e.Reagent)
}

func (e *UnsupportedUnitError) Unwrap() error { return ErrUnsupportedUnit }

// UnknownReagentError names a reagent found in neither catalog table.
type UnknownReagentError struct {
	Reagent string
}

func (e *UnknownReagentError) Error() string {
	return fmt.Sprintf("%s %q", ErrUnknownReagent, e.Reagent)
}

func (e *UnknownReagentError) Unwrap() error { return ErrUnknownReagent }

// OutOfRangeError names the reagent whose volume or mass overflowed.
type OutOfRangeError struct {
	Reagent string
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s for %q", ErrOutOfRange, e.Reagent)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// ExportError wraps a downstream writer failure.
type ExportError struct {
	Target string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("%s (%s): %v", ErrExport, e.Target, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *ExportError) Unwrap() []error { return []error{ErrExport, e.Err} }
