// Package units reads volume and concentration tokens typed by users into
// canonical values.
package units

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/mamadbah2/buffercalc/internal/domain/models"
)

const (
	microSign = '\u00b5'
	greekMu   = '\u03bc'
)

// ParseVolume converts text such as "1 L", "500 mL" or "1000 μL" into
// milliliters. A missing unit means mL.
func ParseVolume(text string) (float64, error) {
	normalized := foldMicro(strings.TrimSpace(text))

	value, n, ok := ScanNumber(normalized)
	if !ok {
		return 0, &models.ParseError{Text: text, Reason: "no leading number"}
	}

	unit := strings.TrimSpace(normalized[n:])
	if unit == "" {
		unit = "ml"
	}

	var ml float64
	switch unit {
	case "l":
		ml = value * 1000
	case "ml":
		ml = value
	case "ul":
		ml = value / 1000
	default:
		return 0, &models.ParseError{Text: text, Reason: "unknown volume unit " + strconv.Quote(unit)}
	}

	if math.IsInf(ml, 0) {
		return 0, &models.ParseError{Text: text, Reason: "volume out of range"}
	}
	if ml <= 0 {
		return 0, &models.ParseError{Text: text, Reason: "volume must be positive"}
	}

	return ml, nil
}

// NormalizeConcentration maps a raw unit token onto its canonical unit. An
// empty token means mM.
func NormalizeConcentration(raw string) (models.Unit, error) {
	switch foldMicro(strings.TrimSpace(raw)) {
	case "", "mm":
		return models.UnitMillimolar, nil
	case "um":
		return models.UnitMicromolar, nil
	case "m":
		return models.UnitMolar, nil
	case "%":
		return models.UnitPercent, nil
	case "x":
		return models.UnitFold, nil
	default:
		return "", &models.UnsupportedUnitError{Unit: raw}
	}
}

// IsConcentrationToken reports whether raw is a non-empty concentration unit token.
func IsConcentrationToken(raw string) bool {
	if raw == "" {
		return false
	}
	_, err := NormalizeConcentration(raw)
	return err == nil
}

// ScanNumber reads an unsigned decimal number at the start of s and returns
// its value and byte length.
func ScanNumber(s string) (float64, int, bool) {
	n := 0
	digits := 0
	for n < len(s) && isDigit(s[n]) {
		n++
		digits++
	}
	if n < len(s) && s[n] == '.' {
		n++
		for n < len(s) && isDigit(s[n]) {
			n++
			digits++
		}
	}
	if digits == 0 {
		return 0, 0, false
	}

	value, err := strconv.ParseFloat(s[:n], 64)
	if err != nil {
		return 0, 0, false
	}
	return value, n, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// foldMicro lower-cases s and rewrites both micro prefixes to "u", so "μL",
// "µL" and "uL" compare equal.
func foldMicro(s string) string {
	return strings.Map(func(r rune) rune {
		r = unicode.ToLower(r)
		if r == microSign || r == greekMu {
			return 'u'
		}
		return r
	}, s)
}
