package recipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/buffercalc/internal/calculator"
	"github.com/mamadbah2/buffercalc/internal/catalog"
	"github.com/mamadbah2/buffercalc/internal/domain/models"
	"github.com/mamadbah2/buffercalc/internal/export"
	"github.com/mamadbah2/buffercalc/internal/formula"
	"github.com/mamadbah2/buffercalc/internal/i18n"
	"github.com/mamadbah2/buffercalc/internal/render"
	"github.com/mamadbah2/buffercalc/internal/units"
)

// ErrUnknownTarget indicates an export target that is not configured.
var ErrUnknownTarget = errors.New("unknown export target")

// CatalogProvider hands out the catalog snapshot for one calculation.
type CatalogProvider interface {
	Current() *catalog.Catalog
}

// Request is one calculation as typed by a user.
type Request struct {
	Formula string
	Volume  string
	Solids  []string
	Lang    i18n.Lang
}

// Outcome is the result of one calculation together with its rendered rows.
type Outcome struct {
	TotalVolumeML float64
	Components    []models.ParsedComponent
	Result        *models.RecipeResult
	Rows          []models.ResultRow
}

// Service runs calculations and exports for every front-end.
type Service struct {
	catalogs  CatalogProvider
	exporters map[string]export.Exporter
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a recipe service. The first exporter is the default target.
func NewService(catalogs CatalogProvider, logger *zap.Logger, exporters ...export.Exporter) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		catalogs:  catalogs,
		exporters: make(map[string]export.Exporter, len(exporters)),
		logger:    logger,
		now:       time.Now,
	}
	for _, e := range exporters {
		s.exporters[e.Name()] = e
	}
	return s
}

// Catalog returns the catalog snapshot currently in use.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalogs.Current()
}

// Targets lists the configured export targets.
func (s *Service) Targets() []string {
	out := make([]string, 0, len(s.exporters))
	for name := range s.exporters {
		out = append(out, name)
	}
	return out
}

// Calculate parses the request and computes the worksheet. Any error is
// terminal for the request and no partial result is returned.
func (s *Service) Calculate(ctx context.Context, req Request) (*Outcome, error) {
	totalML, err := units.ParseVolume(req.Volume)
	if err != nil {
		s.logger.Debug("volume rejected", zap.String("volume", req.Volume), zap.Error(err))
		return nil, err
	}

	components := formula.Parse(req.Formula)
	if len(components) == 0 {
		s.logger.Debug("recipe rejected", zap.String("formula", req.Formula))
		return nil, fmt.Errorf("parse %q: %w", req.Formula, models.ErrEmptyRecipe)
	}

	result, err := calculator.Calculate(components, totalML, s.catalogs.Current(), calculator.WithSolids(req.Solids...))
	if err != nil {
		s.logger.Info("calculation rejected",
			zap.String("formula", req.Formula),
			zap.Float64("total_ml", totalML),
			zap.Error(err))
		return nil, err
	}

	s.logger.Debug("calculation completed",
		zap.Int("components", len(components)),
		zap.Float64("total_ml", totalML),
		zap.Float64("non_water_ml", result.TotalNonWaterML))

	return &Outcome{
		TotalVolumeML: totalML,
		Components:    components,
		Result:        result,
		Rows:          render.Rows(result, req.Lang),
	}, nil
}

// Export calculates and writes the worksheet to target. When only the export
// fails, the outcome is still returned with an error wrapping models.ErrExport.
func (s *Service) Export(ctx context.Context, req Request, target string) (*export.Artifact, *Outcome, error) {
	exp, ok := s.exporters[target]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownTarget, target)
	}

	outcome, err := s.Calculate(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	art, err := exp.Export(ctx, export.Request{
		Formula:       req.Formula,
		TotalVolumeML: outcome.TotalVolumeML,
		Result:        outcome.Result,
		Lang:          req.Lang,
		Now:           s.now(),
	})
	if err != nil {
		s.logger.Error("export failed", zap.String("target", target), zap.Error(err))
		if !errors.Is(err, models.ErrExport) {
			err = &models.ExportError{Target: target, Err: err}
		}
		return nil, outcome, err
	}

	s.logger.Info("worksheet exported", zap.String("target", target), zap.Int("components", len(outcome.Components)))
	return art, outcome, nil
}
