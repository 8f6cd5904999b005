package models

// StockSolution is a concentrated liquid stock diluted into the final recipe.
type StockSolution struct {
	Name          string  `bson:"name" json:"name" yaml:"name"`
	Concentration float64 `bson:"concentration" json:"concentration" yaml:"concentration"`
	Unit          Unit    `bson:"unit" json:"unit" yaml:"unit"`
	Density       float64 `bson:"density" json:"density" yaml:"density"` // g/mL
}

// SolidReagent is a powder weighed directly into the recipe.
type SolidReagent struct {
	Name            string  `bson:"name" json:"name" yaml:"name"`
	MolecularWeight float64 `bson:"molecular_weight" json:"molecular_weight" yaml:"molecular_weight"` // g/mol
}

// DefaultDensity is used for stocks that do not declare a density.
const DefaultDensity = 1.0
