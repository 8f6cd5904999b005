package models

// Unit is a canonical concentration unit.
type Unit string

const (
	UnitMillimolar Unit = "mM"
	UnitMicromolar Unit = "μM"
	UnitMolar      Unit = "M"
	UnitPercent    Unit = "%"
	UnitFold       Unit = "X"
)

// Category groups units that can be converted into one another.
type Category string

const (
	CategoryMolar   Category = "M"
	CategoryPercent Category = "%"
	CategoryFold    Category = "X"
	CategoryUnknown Category = ""
)

// Category reports the conversion family of the unit.
func (u Unit) Category() Category {
	switch u {
	case UnitMillimolar, UnitMicromolar, UnitMolar:
		return CategoryMolar
	case UnitPercent:
		return CategoryPercent
	case UnitFold:
		return CategoryFold
	default:
		return CategoryUnknown
	}
}

// IsMolar reports whether the unit belongs to the molar family.
func (u Unit) IsMolar() bool {
	return u.Category() == CategoryMolar
}

// ToMolar converts a molar-family value into mol/L. The second return value is
// false for units outside the molar family.
func (u Unit) ToMolar(value float64) (float64, bool) {
	switch u {
	case UnitMillimolar:
		return value / 1000, true
	case UnitMicromolar:
		return value / 1000000, true
	case UnitMolar:
		return value, true
	default:
		return 0, false
	}
}

// Valid reports whether u is one of the canonical units.
func (u Unit) Valid() bool {
	return u.Category() != CategoryUnknown
}

// ValidStockUnit reports whether u may be used as a stock solution unit.
func ValidStockUnit(u Unit) bool {
	return u == UnitMolar || u == UnitPercent || u == UnitFold
}
