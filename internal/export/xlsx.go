package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/buffercalc/internal/domain/models"
	"github.com/mamadbah2/buffercalc/internal/i18n"
)

// XLSXContentType is the MIME type of generated workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// XLSXExporter fills a copy of an .xlsx template and returns the workbook bytes.
type XLSXExporter struct {
	templatePath string
	layout       Layout
	logger       *zap.Logger
}

// NewXLSXExporter builds an exporter for the template at templatePath. An
// empty path writes into a blank workbook.
func NewXLSXExporter(templatePath string, layout Layout, logger *zap.Logger) *XLSXExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &XLSXExporter{templatePath: templatePath, layout: layout, logger: logger}
}

func (e *XLSXExporter) Name() string { return "xlsx" }

// Export writes the worksheet into the active sheet of the template.
func (e *XLSXExporter) Export(ctx context.Context, req Request) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.fail(err)
	}

	now := req.now()
	sheet, err := BuildSheet(e.layout, req.Formula, req.total(), req.Result, req.Lang, now)
	if err != nil {
		return nil, e.fail(err)
	}

	f, err := e.open()
	if err != nil {
		return nil, e.fail(err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.Debug("close workbook", zap.Error(err))
		}
	}()

	name := f.GetSheetName(f.GetActiveSheetIndex())
	if name == "" {
		return nil, e.fail(errors.New("template has no active sheet"))
	}

	for _, ref := range sheet.Clear {
		if err := f.SetCellValue(name, ref, ""); err != nil {
			return nil, e.fail(fmt.Errorf("clear %s: %w", ref, err))
		}
	}
	for _, c := range sheet.Cells {
		if err := f.SetCellValue(name, c.Ref, c.Value); err != nil {
			return nil, e.fail(fmt.Errorf("write %s: %w", c.Ref, err))
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, e.fail(fmt.Errorf("serialize workbook: %w", err))
	}

	e.logger.Debug("workbook exported", zap.Int("cells", len(sheet.Cells)), zap.Int("bytes", buf.Len()))

	return &Artifact{
		Filename:    Filename(req.Lang, now),
		ContentType: XLSXContentType,
		Data:        buf.Bytes(),
	}, nil
}

func (e *XLSXExporter) open() (*excelize.File, error) {
	if e.templatePath == "" {
		return excelize.NewFile(), nil
	}
	f, err := excelize.OpenFile(e.templatePath)
	if err != nil {
		return nil, fmt.Errorf("open template %s: %w", e.templatePath, err)
	}
	return f, nil
}

func (e *XLSXExporter) fail(err error) error {
	return &models.ExportError{Target: e.Name(), Err: err}
}

// Filename is the download name of an exported workbook.
func Filename(lang i18n.Lang, now time.Time) string {
	prefix := "recipe"
	if lang == i18n.Chinese {
		prefix = "配方计算"
	}
	return prefix + "_" + now.Format("20060102_150405") + ".xlsx"
}
