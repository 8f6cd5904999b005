// Package render formats calculation results for display. Rounding happens
// only here and in the exporters; results are never modified.
package render

import (
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/buffercalc/internal/domain/models"
	"github.com/mamadbah2/buffercalc/internal/i18n"
)

const (
	// LiquidPlaces is the precision of volumes and stock masses.
	LiquidPlaces = 2
	// SolidPlaces is the precision of weighed solid masses.
	SolidPlaces = 4
	// Dash marks a quantity that does not apply.
	Dash = "-"
)

// Fixed formats v rounded half away from zero to places decimals.
func Fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Round rounds v half away from zero to places decimals.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Rows turns a result into display rows, water last.
//
// A component with a volume shows it with 2 decimals and its mass with 2
// decimals (or "-" when zero); a component with only a mass is a weighed solid
// and shows "-" for volume and the mass with 4 decimals.
func Rows(result *models.RecipeResult, lang i18n.Lang) []models.ResultRow {
	if result == nil {
		return nil
	}

	rows := make([]models.ResultRow, 0, len(result.Components))
	for _, c := range result.Components {
		row := models.ResultRow{Name: c.Name, Target: c.TargetLabel}
		if c.Kind == models.KindWater {
			row.Name = i18n.WaterName(lang)
		}

		switch {
		case c.VolumeML > 0:
			row.Volume = Fixed(c.VolumeML, LiquidPlaces)
			row.Mass = Dash
			if c.MassG > 0 {
				row.Mass = Fixed(c.MassG, LiquidPlaces)
			}
		case c.MassG > 0:
			row.Volume = Dash
			row.Mass = Fixed(c.MassG, SolidPlaces)
		default:
			row.Volume = Fixed(c.VolumeML, LiquidPlaces)
			row.Mass = Fixed(c.MassG, LiquidPlaces)
		}

		rows = append(rows, row)
	}

	return rows
}

// Text lays rows out as an aligned plain-text table with a header line.
func Text(rows []models.ResultRow, lang i18n.Lang) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	h := i18n.Headers(lang)
	_, _ = w.Write([]byte(strings.Join(h[:], "\t") + "\n"))
	for _, r := range rows {
		_, _ = w.Write([]byte(r.Name + "\t" + r.Target + "\t" + r.Volume + "\t" + r.Mass + "\n"))
	}
	_ = w.Flush()

	return b.String()
}
