package export

import (
	"context"

	"go.uber.org/zap"

	"github.com/mamadbah2/buffercalc/internal/domain/models"
	repo "github.com/mamadbah2/buffercalc/internal/repository/sheets"
)

// SheetsExporter writes the worksheet into a tab of a Google Sheet.
type SheetsExporter struct {
	repo   repo.Repository
	tab    string
	layout Layout
	logger *zap.Logger
}

// NewSheetsExporter builds an exporter writing into tab.
func NewSheetsExporter(repository repo.Repository, tab string, layout Layout, logger *zap.Logger) *SheetsExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SheetsExporter{repo: repository, tab: tab, layout: layout, logger: logger}
}

func (e *SheetsExporter) Name() string { return "sheets" }

// Export clears the component block and writes all cells in one batch.
func (e *SheetsExporter) Export(ctx context.Context, req Request) (*Artifact, error) {
	sheet, err := BuildSheet(e.layout, req.Formula, req.total(), req.Result, req.Lang, req.now())
	if err != nil {
		return nil, e.fail(err)
	}

	ranges := make([]string, 0, len(sheet.Clear))
	for _, ref := range sheet.Clear {
		ranges = append(ranges, e.qualify(ref))
	}
	if err := e.repo.ClearRanges(ctx, ranges); err != nil {
		return nil, e.fail(err)
	}

	cells := make([]repo.Cell, 0, len(sheet.Cells))
	for _, c := range sheet.Cells {
		cells = append(cells, repo.Cell{Range: e.qualify(c.Ref), Value: c.Value})
	}
	if err := e.repo.WriteCells(ctx, cells); err != nil {
		return nil, e.fail(err)
	}

	e.logger.Info("worksheet written to google sheets", zap.String("tab", e.tab), zap.Int("cells", len(cells)))
	return &Artifact{URL: e.repo.URL()}, nil
}

func (e *SheetsExporter) qualify(ref string) string {
	if e.tab == "" {
		return ref
	}
	return "'" + e.tab + "'!" + ref
}

func (e *SheetsExporter) fail(err error) error {
	return &models.ExportError{Target: e.Name(), Err: err}
}
