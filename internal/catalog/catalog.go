// Package catalog holds the reagent reference data used by calculations: stock
// solutions and solid reagents. A Catalog is immutable once built.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mamadbah2/buffercalc/internal/domain/models"
)

// ErrInvalidCatalog indicates reference data that failed validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Document is the serialized form of a catalog in files, HTTP bodies and
// API responses.
type Document struct {
	Stocks []models.StockSolution `json:"stocks" yaml:"stocks"`
	Solids []models.SolidReagent  `json:"solids" yaml:"solids"`
}

// Catalog is a read-only lookup of reagents keyed by name.
type Catalog struct {
	stocks map[string]models.StockSolution
	solids map[string]models.SolidReagent
}

// New validates the reference data and builds a catalog. A stock without a
// density gets models.DefaultDensity.
func New(stocks []models.StockSolution, solids []models.SolidReagent) (*Catalog, error) {
	c := &Catalog{
		stocks: make(map[string]models.StockSolution, len(stocks)),
		solids: make(map[string]models.SolidReagent, len(solids)),
	}

	for _, s := range stocks {
		s.Name = strings.TrimSpace(s.Name)
		switch {
		case s.Name == "":
			return nil, fmt.Errorf("%w: stock solution without a name", ErrInvalidCatalog)
		case !models.ValidStockUnit(s.Unit):
			return nil, fmt.Errorf("%w: stock %s has unit %q, want M, %% or X", ErrInvalidCatalog, s.Name, s.Unit)
		case s.Concentration <= 0:
			return nil, fmt.Errorf("%w: stock %s concentration must be positive", ErrInvalidCatalog, s.Name)
		case s.Density < 0:
			return nil, fmt.Errorf("%w: stock %s density must not be negative", ErrInvalidCatalog, s.Name)
		}
		if _, dup := c.stocks[s.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate stock %s", ErrInvalidCatalog, s.Name)
		}
		if s.Density == 0 {
			s.Density = models.DefaultDensity
		}
		c.stocks[s.Name] = s
	}

	for _, s := range solids {
		s.Name = strings.TrimSpace(s.Name)
		switch {
		case s.Name == "":
			return nil, fmt.Errorf("%w: solid reagent without a name", ErrInvalidCatalog)
		case s.MolecularWeight <= 0:
			return nil, fmt.Errorf("%w: solid %s molecular weight must be positive", ErrInvalidCatalog, s.Name)
		}
		if _, dup := c.solids[s.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate solid %s", ErrInvalidCatalog, s.Name)
		}
		c.solids[s.Name] = s
	}

	return c, nil
}

// FromDocument builds a catalog from its serialized form.
func FromDocument(doc Document) (*Catalog, error) {
	return New(doc.Stocks, doc.Solids)
}

// Default returns the built-in bench catalog.
func Default() *Catalog {
	c, err := New(
		[]models.StockSolution{
			{Name: "Tris", Concentration: 2.0, Unit: models.UnitMolar, Density: 1.0},
			{Name: "NaCl", Concentration: 5.0, Unit: models.UnitMolar, Density: 1.0},
			{Name: "甘油", Concentration: 100.0, Unit: models.UnitPercent, Density: 1.26},
			{Name: "DTT", Concentration: 1.0, Unit: models.UnitMolar, Density: 1.0},
			{Name: "PBS", Concentration: 10.0, Unit: models.UnitFold, Density: 1.0},
			{Name: "CHAPS", Concentration: 10.0, Unit: models.UnitPercent, Density: 1.0},
		},
		[]models.SolidReagent{
			{Name: "Tris", MolecularWeight: 121.14},
			{Name: "NaCl", MolecularWeight: 58.44},
			{Name: "甘油", MolecularWeight: 92.09},
			{Name: "DTT", MolecularWeight: 154.25},
			{Name: "CHAPS", MolecularWeight: 614.88},
		},
	)
	if err != nil {
		panic(err)
	}
	return c
}

// Stock looks up a stock solution by exact name.
func (c *Catalog) Stock(name string) (models.StockSolution, bool) {
	s, ok := c.stocks[name]
	return s, ok
}

// Solid looks up a solid reagent by exact name.
func (c *Catalog) Solid(name string) (models.SolidReagent, bool) {
	s, ok := c.solids[name]
	return s, ok
}

// Stocks returns the stock solutions sorted by name.
func (c *Catalog) Stocks() []models.StockSolution {
	out := make([]models.StockSolution, 0, len(c.stocks))
	for _, s := range c.stocks {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Solids returns the solid reagents sorted by name.
func (c *Catalog) Solids() []models.SolidReagent {
	out := make([]models.SolidReagent, 0, len(c.solids))
	for _, s := range c.solids {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Document returns the serialized form of the catalog.
func (c *Catalog) Document() Document {
	return Document{Stocks: c.Stocks(), Solids: c.Solids()}
}

// Len returns the number of distinct entries across both tables.
func (c *Catalog) Len() int {
	return len(c.stocks) + len(c.solids)
}
