package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/buffercalc/internal/config"
)

// Cell is a single A1-addressed value write, e.g. {"Worksheet!C5", "2024-01-02"}.
type Cell struct {
	Range string
	Value interface{}
}

// Repository defines the spreadsheet operations used for catalog reads and worksheet exports.
type Repository interface {
	ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error)
	ClearRanges(ctx context.Context, ranges []string) error
	WriteCells(ctx context.Context, cells []Cell) error
	URL() string
}

// GoogleSheetRepository implements the Repository interface using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// ReadRange fetches a rectangular data range from the spreadsheet.
func (r *GoogleSheetRepository) ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error) {
	if sheetRange == "" {
		return nil, fmt.Errorf("sheetRange must not be empty")
	}

	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}

	return resp.Values, nil
}

// ClearRanges empties the given ranges, keeping their formatting.
func (r *GoogleSheetRepository) ClearRanges(ctx context.Context, ranges []string) error {
	if len(ranges) == 0 {
		return nil
	}

	req := &sheetsapi.BatchClearValuesRequest{Ranges: ranges}
	if _, err := r.service.Spreadsheets.Values.BatchClear(r.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %d ranges: %w", len(ranges), err)
	}

	r.logger.Debug("ranges cleared", zap.Int("count", len(ranges)))
	return nil
}

// WriteCells writes every cell in a single batch request. Values are stored
// as given, so text is never evaluated as a formula or coerced to a date.
func (r *GoogleSheetRepository) WriteCells(ctx context.Context, cells []Cell) error {
	if len(cells) == 0 {
		return nil
	}

	data := make([]*sheetsapi.ValueRange, 0, len(cells))
	for _, cell := range cells {
		if cell.Range == "" {
			return fmt.Errorf("cell range must not be empty")
		}
		data = append(data, &sheetsapi.ValueRange{
			Range:  cell.Range,
			Values: [][]interface{}{{cell.Value}},
		})
	}

	req := &sheetsapi.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}
	if _, err := r.service.Spreadsheets.Values.BatchUpdate(r.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("write %d cells: %w", len(cells), err)
	}

	r.logger.Debug("cells written", zap.Int("count", len(cells)))
	return nil
}

// URL returns the browser link of the spreadsheet.
func (r *GoogleSheetRepository) URL() string {
	return "https://docs.google.com/spreadsheets/d/" + r.spreadsheetID + "/edit"
}
