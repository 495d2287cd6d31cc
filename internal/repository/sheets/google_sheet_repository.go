package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/hotelbudget/internal/config"
	"github.com/mamadbah2/hotelbudget/internal/domain/models"
)

const (
	dailySheet     = "Daily"
	dailyRowRange  = dailySheet + "!A:M"
	dailyDateRange = dailySheet + "!A:A"
)

// sheetsEpoch is day zero of the spreadsheet serial date format.
var sheetsEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// GoogleSheetRepository appends daily summaries to a spreadsheet, one row per day.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed exporter.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	return newRepository(ctx, cfg.SpreadsheetID, logger,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope))
}

func newRepository(ctx context.Context, spreadsheetID string, logger *zap.Logger, opts ...option.ClientOption) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}, nil
}

// ExportDailyReport appends the report unless its day is already in the sheet.
// It reports whether a row was written.
func (r *GoogleSheetRepository) ExportDailyReport(ctx context.Context, report models.DailyReport) (bool, error) {
	day := models.DateOf(report.Date).String()

	existing, err := r.readRange(ctx, dailyDateRange)
	if err != nil {
		return false, err
	}
	for _, row := range existing {
		if len(row) > 0 && cellDay(row[0]) == day {
			r.logger.Info("daily report already exported", zap.String("day", day))
			return false, nil
		}
	}

	if err := r.writeRow(ctx, dailyRowRange, reportRow(day, report)); err != nil {
		return false, err
	}
	return true, nil
}

// cellDay renders a date cell as YYYY-MM-DD. Rows typed in by hand come back
// as serial numbers since dates are read unformatted.
func cellDay(cell interface{}) string {
	switch v := cell.(type) {
	case float64:
		return sheetsEpoch.AddDate(0, 0, int(v)).Format(models.DateLayout)
	case string:
		return strings.TrimSpace(v)
	default:
		return fmt.Sprint(v)
	}
}

func reportRow(day string, report models.DailyReport) []interface{} {
	return []interface{}{
		day,
		report.RoomsBooked, report.RoomsIncome,
		report.FoodOrders, report.FoodIncome,
		report.Supplies, report.SuppliesCost,
		report.Salaries, report.SalariesCost,
		report.TotalIncome, report.TotalExpenditure, report.ProfitOrLoss,
		report.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func (r *GoogleSheetRepository) writeRow(ctx context.Context, sheetRange string, values []interface{}) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}

	r.logger.Debug("row appended to sheet", zap.String("range", sheetRange))
	return nil
}

func (r *GoogleSheetRepository) readRange(ctx context.Context, sheetRange string) ([][]interface{}, error) {
	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, sheetRange).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("SERIAL_NUMBER").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}
	return resp.Values, nil
}
