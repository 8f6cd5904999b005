package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		typ  CommandType
		args string
	}{
		{"/calc 1 L: 20 mM Tris", CommandCalc, "1 L: 20 mM Tris"},
		{"CALC 500 mL: 1 mM DTT", CommandCalc, "500 mL: 1 mM DTT"},
		{"/catalog", CommandCatalog, ""},
		{"  /help  ", CommandHelp, ""},
		{"/calc\n1 L: 1 X PBS", CommandCalc, "1 L: 1 X PBS"},
		{"", CommandUnknown, ""},
		{"hello there", CommandUnknown, "there"},
	}

	for _, tt := range tests {
		cmd := ParseCommand(tt.in)
		assert.Equal(t, tt.typ, cmd.Type, tt.in)
		assert.Equal(t, tt.args, cmd.Args, tt.in)
		assert.Equal(t, tt.in, cmd.Raw)
	}
}

func TestSplitCalcArgs(t *testing.T) {
	volume, formula, ok := SplitCalcArgs("1 L: 20 mM Tris, 150 mM NaCl")
	assert.True(t, ok)
	assert.Equal(t, "1 L", volume)
	assert.Equal(t, "20 mM Tris, 150 mM NaCl", formula)

	volume, formula, ok = SplitCalcArgs("500 mL：10 % 甘油")
	assert.True(t, ok)
	assert.Equal(t, "500 mL", volume)
	assert.Equal(t, "10 % 甘油", formula)

	_, _, ok = SplitCalcArgs("20 mM Tris")
	assert.False(t, ok)

	_, _, ok = SplitCalcArgs(": 20 mM Tris")
	assert.False(t, ok)
}

func TestUnitCategories(t *testing.T) {
	assert.Equal(t, CategoryMolar, UnitMicromolar.Category())
	assert.Equal(t, CategoryPercent, UnitPercent.Category())
	assert.Equal(t, CategoryFold, UnitFold.Category())
	assert.False(t, Unit("nM").Valid())

	v, ok := UnitMicromolar.ToMolar(250)
	assert.True(t, ok)
	assert.InDelta(t, 0.00025, v, 1e-15)

	_, ok = UnitPercent.ToMolar(1)
	assert.False(t, ok)

	assert.Equal(t, "20 mM", ParsedComponent{Name: "Tris", TargetConcentration: 20, TargetUnit: UnitMillimolar}.Label())
	assert.Equal(t, "0.5 %", ParsedComponent{Name: "CHAPS", TargetConcentration: 0.5, TargetUnit: UnitPercent}.Label())
}
