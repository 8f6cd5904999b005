package formula

import (
	"strconv"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/buffercalc/internal/domain/models"
)

func TestParseCommaSeparated(t *testing.T) {
	got := Parse("20 mM Tris, 150 mM NaCl")

	want := []models.ParsedComponent{
		{Name: "Tris", TargetConcentration: 20, TargetUnit: models.UnitMillimolar},
		{Name: "NaCl", TargetConcentration: 150, TargetUnit: models.UnitMillimolar},
	}
	assert.Equal(t, want, got)
}

func TestParseSeparators(t *testing.T) {
	inputs := []string{
		"20 mM Tris, 1 M NaCl; 10 % 甘油",
		"20 mM Tris\n1 M NaCl\n10 % 甘油",
		"20 mM Tris 1 M NaCl 10 % 甘油",
		"20 mM Tris，1 M NaCl；10 % 甘油",
		"20 mM Tris、1 M NaCl、10 % 甘油",
	}

	for _, in := range inputs {
		got := Parse(in)
		require.Len(t, got, 3, in)
		assert.Equal(t, "Tris", got[0].Name)
		assert.Equal(t, models.UnitMillimolar, got[0].TargetUnit)
		assert.Equal(t, "NaCl", got[1].Name)
		assert.Equal(t, models.UnitMolar, got[1].TargetUnit)
		assert.Equal(t, "甘油", got[2].Name)
		assert.Equal(t, models.UnitPercent, got[2].TargetUnit)
		assert.Equal(t, 10.0, got[2].TargetConcentration)
	}
}

func TestParseUnits(t *testing.T) {
	tests := []struct {
		in   string
		want models.ParsedComponent
	}{
		{"5 uM ATP", models.ParsedComponent{Name: "ATP", TargetConcentration: 5, TargetUnit: models.UnitMicromolar}},
		{"5 μM ATP", models.ParsedComponent{Name: "ATP", TargetConcentration: 5, TargetUnit: models.UnitMicromolar}},
		{"5µM ATP", models.ParsedComponent{Name: "ATP", TargetConcentration: 5, TargetUnit: models.UnitMicromolar}},
		{"1X PBS", models.ParsedComponent{Name: "PBS", TargetConcentration: 1, TargetUnit: models.UnitFold}},
		{"1 x PBS", models.ParsedComponent{Name: "PBS", TargetConcentration: 1, TargetUnit: models.UnitFold}},
		{"0.5%CHAPS", models.ParsedComponent{Name: "CHAPS", TargetConcentration: 0.5, TargetUnit: models.UnitPercent}},
		{"2 m NaCl", models.ParsedComponent{Name: "NaCl", TargetConcentration: 2, TargetUnit: models.UnitMolar}},
		{"20mm Tris", models.ParsedComponent{Name: "Tris", TargetConcentration: 20, TargetUnit: models.UnitMillimolar}},
		{"1 DTT", models.ParsedComponent{Name: "DTT", TargetConcentration: 1, TargetUnit: models.UnitMillimolar}},
		{"10 MgCl", models.ParsedComponent{Name: "MgCl", TargetConcentration: 10, TargetUnit: models.UnitMillimolar}},
		{"50 mM Tris-HCl", models.ParsedComponent{Name: "Tris-HCl", TargetConcentration: 50, TargetUnit: models.UnitMillimolar}},
		{"２０ ｍＭ Tris", models.ParsedComponent{Name: "Tris", TargetConcentration: 20, TargetUnit: models.UnitMillimolar}},
		{"10 ％ 甘油", models.ParsedComponent{Name: "甘油", TargetConcentration: 10, TargetUnit: models.UnitPercent}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Parse(tt.in)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestParseDuplicateNameLastWins(t *testing.T) {
	got := Parse("20 mM Tris, 150 mM NaCl, 50 mM Tris")

	require.Len(t, got, 2)
	assert.Equal(t, "Tris", got[0].Name)
	assert.Equal(t, 50.0, got[0].TargetConcentration)
	assert.Equal(t, "NaCl", got[1].Name)
}

func TestParseNothingMatches(t *testing.T) {
	for _, in := range []string{"", "Tris, NaCl", "20 mM", "1.2.3 mM Tris", "pH 7.5"} {
		assert.Empty(t, Parse(in), in)
	}
}

func TestParseSkipsBrokenFragments(t *testing.T) {
	got := Parse("20 mM, 150 mM NaCl")

	require.Len(t, got, 1)
	assert.Equal(t, "NaCl", got[0].Name)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a,b,c,d", Normalize("a，b；c、d"))
	assert.Equal(t, "20 mM", Normalize("２０ ｍＭ"))
}

func FuzzParse(f *testing.F) {
	for _, seed := range []string{
		"20 mM Tris, 150 mM NaCl",
		"1 mM DTT",
		"50 mM Tris-HCl 10 % 甘油",
		"5 μM N-acetyl-cystéine",
		"10 X PBS；0.1%CHAPS、2 M 氯化钠",
		"1-2-3 mM --",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, in string) {
		got := Parse(in)

		seen := make(map[string]bool)
		for _, c := range got {
			require.NotEmpty(t, c.Name)
			require.False(t, seen[c.Name], "duplicate name %q", c.Name)
			seen[c.Name] = true

			require.GreaterOrEqual(t, c.TargetConcentration, 0.0)
			require.True(t, c.TargetUnit.Valid(), "unit %q", c.TargetUnit)
			for _, r := range c.Name {
				require.True(t, r == '-' || unicode.IsLetter(r) || unicode.IsMark(r), "rune %q in %q", r, c.Name)
			}
		}
	})
}

func FuzzParseHyphenatedMixedScriptNames(f *testing.F) {
	for _, seed := range []string{"Tris-HCl", "甘油", "N-乙酰-cysteine", "β-ME", "Na-K-ATPase"} {
		f.Add(seed, 12.5)
	}

	f.Fuzz(func(t *testing.T, name string, value float64) {
		if name == "" || name == "Other" || value < 0 || value > 1e6 {
			t.Skip()
		}
		for _, r := range name {
			if !(r == '-' || unicode.IsLetter(r) || unicode.IsMark(r)) {
				t.Skip()
			}
		}
		if Normalize(name) != name {
			t.Skip()
		}

		text := strconv.FormatFloat(value, 'f', -1, 64) + " mM " + name + ", 1 M Other"
		got := Parse(text)

		require.Len(t, got, 2, text)
		assert.Equal(t, name, got[0].Name)
		assert.Equal(t, value, got[0].TargetConcentration)
		assert.Equal(t, models.UnitMillimolar, got[0].TargetUnit)
		assert.Equal(t, "Other", got[1].Name)
	})
}
