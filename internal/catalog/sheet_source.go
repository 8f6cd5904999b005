package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/buffercalc/internal/domain/models"
	repo "github.com/mamadbah2/buffercalc/internal/repository/sheets"
	"github.com/mamadbah2/buffercalc/internal/units"
)

// SheetSource reads the reagent tables from two spreadsheet ranges:
//
//	stocks: name | concentration | unit | density
//	solids: name | molecular weight
//
// Rows whose numeric cells do not parse (header rows included) are skipped.
type SheetSource struct {
	repo       repo.Repository
	stockRange string
	solidRange string
	logger     *zap.Logger
}

// NewSheetSource builds a spreadsheet backed source.
func NewSheetSource(repository repo.Repository, stockRange, solidRange string, logger *zap.Logger) *SheetSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SheetSource{repo: repository, stockRange: stockRange, solidRange: solidRange, logger: logger}
}

func (s *SheetSource) Load(ctx context.Context) (*Catalog, error) {
	stockRows, err := s.repo.ReadRange(ctx, s.stockRange)
	if err != nil {
		return nil, fmt.Errorf("load stock range: %w", err)
	}
	solidRows, err := s.repo.ReadRange(ctx, s.solidRange)
	if err != nil {
		return nil, fmt.Errorf("load solid range: %w", err)
	}

	var stocks []models.StockSolution
	for _, row := range stockRows {
		if len(row) < 3 {
			continue
		}

		conc, err := parseFloat(row[1])
		if err != nil {
			s.logger.Debug("skip stock row with invalid concentration", zap.Any("value", row[1]), zap.Error(err))
			continue
		}

		unit, err := stockUnit(fmt.Sprint(row[2]))
		if err != nil {
			s.logger.Debug("skip stock row with invalid unit", zap.Any("value", row[2]), zap.Error(err))
			continue
		}

		density := models.DefaultDensity
		if len(row) > 3 {
			if d, err := parseFloat(row[3]); err == nil {
				density = d
			}
		}

		stocks = append(stocks, models.StockSolution{
			Name:          strings.TrimSpace(fmt.Sprint(row[0])),
			Concentration: conc,
			Unit:          unit,
			Density:       density,
		})
	}

	var solids []models.SolidReagent
	for _, row := range solidRows {
		if len(row) < 2 {
			continue
		}

		mw, err := parseFloat(row[1])
		if err != nil {
			s.logger.Debug("skip solid row with invalid molecular weight", zap.Any("value", row[1]), zap.Error(err))
			continue
		}

		solids = append(solids, models.SolidReagent{
			Name:            strings.TrimSpace(fmt.Sprint(row[0])),
			MolecularWeight: mw,
		})
	}

	return New(stocks, solids)
}

func (s *SheetSource) Name() string { return "sheets" }

// stockUnit accepts the stock spellings M, %, X in any case.
func stockUnit(raw string) (models.Unit, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("empty unit")
	}
	u, err := units.NormalizeConcentration(raw)
	if err != nil {
		return "", err
	}
	if !models.ValidStockUnit(u) {
		return "", fmt.Errorf("stock unit %s not allowed", u)
	}
	return u, nil
}

func parseFloat(value interface{}) (float64, error) {
	str := strings.TrimSpace(fmt.Sprint(value))
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.ParseFloat(str, 64)
}
