// Package calculator turns parsed recipe components into dispensing amounts.
//
// Calculate is a pure function of its arguments: it performs no I/O and never
// mutates the catalog, so identical inputs yield identical results. Values are
// not rounded here; rounding belongs to presentation.
package calculator

import (
	"math"

	"github.com/mamadbah2/buffercalc/internal/catalog"
	"github.com/mamadbah2/buffercalc/internal/domain/models"
)

type options struct {
	solids map[string]bool
}

// Option adjusts a single calculation.
type Option func(*options)

// WithSolids makes the named reagents resolve to their solid form when the
// catalog lists them both as a stock solution and as a solid.
func WithSolids(names ...string) Option {
	return func(o *options) {
		for _, n := range names {
			o.solids[n] = true
		}
	}
}

// Calculate computes the volume or mass of every component for totalML of
// buffer and appends the make-up water entry last.
//
// Stock solutions must be requested in the unit category of the stock (mM, μM
// and M for molar stocks, % for percent stocks, X for fold stocks). Solid
// reagents must be requested in a molar unit. Names found in neither catalog
// table fail with *models.UnknownReagentError.
func Calculate(components []models.ParsedComponent, totalML float64, cat *catalog.Catalog, opts ...Option) (*models.RecipeResult, error) {
	if !(totalML > 0) {
		return nil, models.ErrInvalidVolume
	}
	if len(components) == 0 {
		return nil, models.ErrEmptyRecipe
	}
	if cat == nil {
		cat = catalog.Default()
	}

	o := options{solids: make(map[string]bool)}
	for _, opt := range opts {
		opt(&o)
	}

	result := &models.RecipeResult{
		Components:    make([]models.ComponentResult, 0, len(components)+1),
		TotalVolumeML: totalML,
	}

	for _, comp := range components {
		stock, isStock := cat.Stock(comp.Name)
		solid, isSolid := cat.Solid(comp.Name)
		if isStock && isSolid && o.solids[comp.Name] {
			isStock = false
		}

		var (
			entry models.ComponentResult
			err   error
		)
		switch {
		case isStock:
			entry, err = fromStock(comp, stock, totalML)
			if err != nil {
				return nil, err
			}
			result.TotalNonWaterML += entry.VolumeML
		case isSolid:
			entry, err = fromSolid(comp, solid, totalML)
			if err != nil {
				return nil, err
			}
		default:
			return nil, &models.UnknownReagentError{Reagent: comp.Name}
		}
		if !finite(entry.VolumeML) || !finite(entry.MassG) || !finite(result.TotalNonWaterML) {
			return nil, &models.OutOfRangeError{Reagent: comp.Name}
		}

		result.Components = append(result.Components, entry)
	}

	water := totalML - result.TotalNonWaterML
	if water < 0 {
		water = 0
	}
	result.Components = append(result.Components, models.ComponentResult{
		Name:        models.WaterName,
		TargetLabel: models.WaterLabel,
		VolumeML:    water,
		MassG:       water,
		Kind:        models.KindWater,
	})

	return result, nil
}

func fromStock(comp models.ParsedComponent, stock models.StockSolution, totalML float64) (models.ComponentResult, error) {
	if comp.TargetUnit.Category() != stock.Unit.Category() {
		return models.ComponentResult{}, &models.UnitMismatchError{
			Reagent:   comp.Name,
			Requested: comp.TargetUnit,
			Stock:     stock.Unit,
		}
	}

	target := comp.TargetConcentration
	if stock.Unit.IsMolar() {
		target, _ = comp.TargetUnit.ToMolar(comp.TargetConcentration)
	}

	// stock.Unit is always M for molar stocks, so target and stock share a scale.
	volume := (target * totalML) / stock.Concentration

	return models.ComponentResult{
		Name:        comp.Name,
		TargetLabel: comp.Label(),
		VolumeML:    volume,
		MassG:       volume * stock.Density,
		Kind:        models.KindStock,
	}, nil
}

func fromSolid(comp models.ParsedComponent, solid models.SolidReagent, totalML float64) (models.ComponentResult, error) {
	molar, ok := comp.TargetUnit.ToMolar(comp.TargetConcentration)
	if !ok {
		return models.ComponentResult{}, &models.UnsupportedUnitError{
			Reagent: comp.Name,
			Unit:    string(comp.TargetUnit),
		}
	}

	molNeeded := molar * (totalML / 1000)

	return models.ComponentResult{
		Name:        comp.Name,
		TargetLabel: comp.Label(),
		VolumeML:    0,
		MassG:       molNeeded * solid.MolecularWeight,
		Kind:        models.KindSolid,
	}, nil
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
