// Package formula tokenizes free-text buffer recipes such as
// "20 mM Tris, 150 mM NaCl" into reagent requests.
//
// A component is a number, an optional concentration unit and a name:
//
//	component = number ws* [ unit ws+ | "%" ws* ] name
//	name      = ( letter | "-" )+
//
// Letters are taken from any script. A unit made of letters ("mM", "X") only
// counts as a unit when whitespace and a name follow it; otherwise the letters
// are the start of the name and the default unit applies. Separators between
// components are optional, so newline- or space-separated recipes work too.
package formula

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"

	"github.com/mamadbah2/buffercalc/internal/domain/models"
	"github.com/mamadbah2/buffercalc/internal/units"
)

var separators = strings.NewReplacer("，", ",", "；", ",", "、", ",")

// Normalize rewrites full-width separators to a plain comma and folds
// full-width digits, letters and signs to their narrow forms.
func Normalize(text string) string {
	return width.Fold.String(separators.Replace(text))
}

// Parse extracts the components of a recipe in order of appearance. A name that
// appears twice keeps its first position and takes the last concentration. An
// empty slice means nothing matched.
func Parse(text string) []models.ParsedComponent {
	s := []rune(Normalize(text))

	var out []models.ParsedComponent
	index := make(map[string]int)

	for i := 0; i < len(s); {
		if !startsNumber(s, i) {
			i++
			continue
		}

		comp, end, ok := scanComponent(s, i)
		if !ok {
			i = skipNumber(s, i)
			continue
		}
		i = end

		if pos, seen := index[comp.Name]; seen {
			out[pos] = comp
			continue
		}
		index[comp.Name] = len(out)
		out = append(out, comp)
	}

	return out
}

func scanComponent(s []rune, start int) (models.ParsedComponent, int, bool) {
	numEnd := skipNumber(s, start)
	run := string(s[start:numEnd])
	value, n, ok := units.ScanNumber(run)
	if !ok || n != len(run) {
		return models.ParsedComponent{}, 0, false
	}

	i := skipSpace(s, numEnd)
	rawUnit := ""

	switch {
	case i < len(s) && s[i] == '%':
		rawUnit = "%"
		i = skipSpace(s, i+1)
	default:
		wordEnd := skipName(s, i)
		word := string(s[i:wordEnd])
		if units.IsConcentrationToken(word) {
			nameStart := skipSpace(s, wordEnd)
			if nameStart == wordEnd || skipName(s, nameStart) == nameStart {
				return models.ParsedComponent{}, 0, false
			}
			rawUnit = word
			i = nameStart
		}
	}

	nameEnd := skipName(s, i)
	if nameEnd == i {
		return models.ParsedComponent{}, 0, false
	}

	unit, err := units.NormalizeConcentration(rawUnit)
	if err != nil {
		return models.ParsedComponent{}, 0, false
	}

	return models.ParsedComponent{
		Name:                string(s[i:nameEnd]),
		TargetConcentration: value,
		TargetUnit:          unit,
	}, nameEnd, true
}

// startsNumber reports whether a number begins at i and is not the tail of a
// longer numeric run.
func startsNumber(s []rune, i int) bool {
	if i > 0 && isNumeric(s[i-1]) {
		return false
	}
	if isDigit(s[i]) {
		return true
	}
	return s[i] == '.' && i+1 < len(s) && isDigit(s[i+1])
}

func skipNumber(s []rune, i int) int {
	for i < len(s) && isNumeric(s[i]) {
		i++
	}
	return i
}

func skipSpace(s []rune, i int) int {
	for i < len(s) && unicode.IsSpace(s[i]) {
		i++
	}
	return i
}

func skipName(s []rune, i int) int {
	for i < len(s) && isNameRune(s[i]) {
		i++
	}
	return i
}

func isNameRune(r rune) bool {
	return r == '-' || unicode.IsLetter(r) || unicode.IsMark(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isNumeric(r rune) bool {
	return isDigit(r) || r == '.'
}
