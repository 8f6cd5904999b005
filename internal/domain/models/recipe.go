package models

import "strconv"

// ParsedComponent is one reagent request extracted from recipe text.
type ParsedComponent struct {
	Name                string  `json:"name"`
	TargetConcentration float64 `json:"target_concentration"`
	TargetUnit          Unit    `json:"target_unit"`
}

// Label renders the requested concentration, e.g. "20 mM".
func (p ParsedComponent) Label() string {
	return strconv.FormatFloat(p.TargetConcentration, 'f', -1, 64) + " " + string(p.TargetUnit)
}

// ComponentKind tells how a component is dispensed.
type ComponentKind string

const (
	KindStock ComponentKind = "stock"
	KindSolid ComponentKind = "solid"
	KindWater ComponentKind = "water"
)

// WaterName is the name of the synthesized make-up water entry.
const WaterName = "Water"

// WaterLabel is the target label of the water entry.
const WaterLabel = "-"

// ComponentResult holds the amount of one component to dispense.
type ComponentResult struct {
	Name        string        `json:"name"`
	TargetLabel string        `json:"target_label"`
	VolumeML    float64       `json:"volume_ml"`
	MassG       float64       `json:"mass_g"`
	Kind        ComponentKind `json:"kind"`
}

// RecipeResult is the full worksheet for one calculation. Components are in
// parse order with water last.
type RecipeResult struct {
	Components      []ComponentResult `json:"components"`
	TotalNonWaterML float64           `json:"total_non_water_ml"`
	TotalVolumeML   float64           `json:"total_volume_ml"`
}

// Water returns the make-up water entry.
func (r *RecipeResult) Water() ComponentResult {
	if r == nil || len(r.Components) == 0 {
		return ComponentResult{}
	}
	return r.Components[len(r.Components)-1]
}

// Reagents returns the non-water components.
func (r *RecipeResult) Reagents() []ComponentResult {
	if r == nil || len(r.Components) == 0 {
		return nil
	}
	return r.Components[:len(r.Components)-1]
}
