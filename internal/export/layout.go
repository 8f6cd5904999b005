// Package export writes finished results into cell-addressed spreadsheet
// templates. Cell addresses live here only; the calculation core knows nothing
// about them.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/buffercalc/internal/domain/models"
	"github.com/mamadbah2/buffercalc/internal/i18n"
	"github.com/mamadbah2/buffercalc/internal/render"
)

const dateLayout = "2006-01-02"

// Layout describes where a worksheet template expects each value.
type Layout struct {
	DateCell    string
	FormulaCell string
	VolumeCell  string
	// FirstColumn is the column of the first component; water follows the
	// last component.
	FirstColumn string
	NameRow     int
	TargetRow   int
	MassRow     int
	VolumeRow   int
	// ClearColumns component columns are emptied before writing so stale
	// values from a longer recipe never survive.
	ClearColumns int
}

// DefaultLayout matches the bench worksheet template.
func DefaultLayout() Layout {
	return Layout{
		DateCell:     "C5",
		FormulaCell:  "C6",
		VolumeCell:   "G6",
		FirstColumn:  "C",
		NameRow:      8,
		TargetRow:    11,
		MassRow:      12,
		VolumeRow:    13,
		ClearColumns: 6,
	}
}

// Cell is one value at an A1 reference.
type Cell struct {
	Ref   string
	Value interface{}
}

// Sheet is the full set of writes for one export.
type Sheet struct {
	Clear []string
	Cells []Cell
}

// BuildSheet maps a result onto the layout. Numbers are rounded here: 2
// decimals for liquids and water, 4 for weighed solids.
func BuildSheet(layout Layout, formulaText string, totalML float64, result *models.RecipeResult, lang i18n.Lang, now time.Time) (Sheet, error) {
	if result == nil || len(result.Components) == 0 {
		return Sheet{}, fmt.Errorf("empty result")
	}

	first, err := excelize.ColumnNameToNumber(layout.FirstColumn)
	if err != nil {
		return Sheet{}, fmt.Errorf("first column %q: %w", layout.FirstColumn, err)
	}

	reagents := result.Reagents()
	waterCol := first + len(reagents)

	var sheet Sheet
	lastClear := first + layout.ClearColumns - 1
	if waterCol > lastClear {
		lastClear = waterCol
	}
	for col := first; col <= lastClear; col++ {
		for _, row := range []int{layout.NameRow, layout.TargetRow, layout.MassRow, layout.VolumeRow} {
			ref, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return Sheet{}, err
			}
			sheet.Clear = append(sheet.Clear, ref)
		}
	}

	sheet.Cells = append(sheet.Cells,
		Cell{Ref: layout.DateCell, Value: now.Format(dateLayout)},
		Cell{Ref: layout.FormulaCell, Value: formulaText},
		Cell{Ref: layout.VolumeCell, Value: render.Fixed(totalML/1000, render.LiquidPlaces) + " L"},
	)

	put := func(col, row int, v interface{}) error {
		ref, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		sheet.Cells = append(sheet.Cells, Cell{Ref: ref, Value: v})
		return nil
	}

	for i, c := range reagents {
		col := first + i
		var mass, volume interface{}
		if c.VolumeML > 0 {
			mass = dashOr(c.MassG, render.LiquidPlaces)
			volume = render.Round(c.VolumeML, render.LiquidPlaces)
		} else {
			mass = dashOr(c.MassG, render.SolidPlaces)
			volume = render.Dash
		}

		for _, w := range []struct {
			row int
			v   interface{}
		}{
			{layout.NameRow, c.Name},
			{layout.TargetRow, c.TargetLabel},
			{layout.MassRow, mass},
			{layout.VolumeRow, volume},
		} {
			if err := put(col, w.row, w.v); err != nil {
				return Sheet{}, err
			}
		}
	}

	water := result.Water()
	for _, w := range []struct {
		row int
		v   interface{}
	}{
		{layout.NameRow, i18n.WaterName(lang)},
		{layout.TargetRow, models.WaterLabel},
		{layout.MassRow, render.Round(water.MassG, render.LiquidPlaces)},
		{layout.VolumeRow, render.Round(water.VolumeML, render.LiquidPlaces)},
	} {
		if err := put(waterCol, w.row, w.v); err != nil {
			return Sheet{}, err
		}
	}

	return sheet, nil
}

func dashOr(v float64, places int32) interface{} {
	if v > 0 {
		return render.Round(v, places)
	}
	return render.Dash
}
