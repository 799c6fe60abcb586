package sheets

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/Veraticus/hireflow/internal/common"
	"github.com/Veraticus/hireflow/internal/export"
	"github.com/Veraticus/hireflow/internal/model"
	"github.com/Veraticus/hireflow/internal/report"
	"github.com/Veraticus/hireflow/internal/service"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var _ service.ReportWriter = (*Writer)(nil)

// Writer implements service.ReportWriter for Google Sheets.
type Writer struct {
	api    spreadsheetAPI
	logger *slog.Logger
	now    func() time.Time
	config Config
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return newWriter(serviceAPI{srv: srv}, config, logger), nil
}

func newWriter(api spreadsheetAPI, config Config, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		api:    api,
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

// Write replaces the contents of the applicant sheet with a summary block
// followed by one row per applicant.
func (w *Writer) Write(ctx context.Context, applicants []model.Applicant) error {
	w.logger.Info("starting report generation", "applicants", len(applicants))

	spreadsheetID, sheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if clearErr := w.api.Clear(ctx, spreadsheetID, w.sheetRange("A:Z")); clearErr != nil {
		return fmt.Errorf("failed to clear sheet: %w", clearErr)
	}

	values := BuildRows(applicants, w.now())
	if err := w.writeData(ctx, spreadsheetID, values); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	if w.config.EnableFormatting {
		err = common.Retry(ctx, "format sheet", w.retryOptions(), func(ctx context.Context) error {
			_, batchErr := w.api.BatchUpdate(ctx, spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
				Requests: formatRequests(sheetID, applicantHeaderRow(applicants)),
			})
			return classify(batchErr)
		})
		if err != nil {
			// Formatting is cosmetic; the data is already written.
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("report generation completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))

	return nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}
		tokenSource = oauthConfig(config.ClientID, config.ClientSecret, "").TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

func (w *Writer) sheetRange(cells string) string {
	return fmt.Sprintf("'%s'!%s", w.config.SheetTitle, cells)
}

// getOrCreateSpreadsheet returns the spreadsheet and the numeric ID of the
// applicant sheet inside it, adding the sheet when it is missing.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, int64, error) {
	if w.config.SpreadsheetID != "" {
		existing, err := w.api.Get(ctx, w.config.SpreadsheetID)
		if err != nil {
			return "", 0, fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		if id, ok := findSheet(existing, w.config.SheetTitle); ok {
			return w.config.SpreadsheetID, id, nil
		}

		resp, err := w.api.BatchUpdate(ctx, w.config.SpreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: w.config.SheetTitle},
				},
			}},
		})
		if err != nil {
			return "", 0, fmt.Errorf("unable to add sheet %q: %w", w.config.SheetTitle, err)
		}
		if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil {
			return "", 0, fmt.Errorf("unable to add sheet %q: empty reply", w.config.SheetTitle)
		}
		return w.config.SpreadsheetID, resp.Replies[0].AddSheet.Properties.SheetId, nil
	}

	created, err := w.api.Create(ctx, &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: w.config.SheetTitle}},
		},
	})
	if err != nil {
		return "", 0, fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	id, _ := findSheet(created, w.config.SheetTitle)
	return created.SpreadsheetId, id, nil
}

func findSheet(s *sheets.Spreadsheet, title string) (int64, bool) {
	for _, sh := range s.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return sh.Properties.SheetId, true
		}
	}
	return 0, false
}

// writeData writes values in batches of config.BatchSize rows.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := min(i+w.config.BatchSize, len(values))
		batch := values[i:end]
		start := fmt.Sprintf("A%d", i+1)

		err := common.Retry(ctx, "write rows from "+start, w.retryOptions(), func(ctx context.Context) error {
			return classify(w.api.Update(ctx, spreadsheetID, w.sheetRange(start), &sheets.ValueRange{Values: batch}))
		})
		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "start_row", i+1, "rows", len(batch))
	}

	return nil
}

func (w *Writer) retryOptions() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// classify tags API failures for Retry: quota errors back off, other client
// errors are permanent.
func classify(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
	case apiErr.Code >= 400 && apiErr.Code < 500:
		return common.Permanent(err)
	default:
		return err
	}
}

// BuildRows lays out the report: a title, per-job and per-status counts, then
// the applicant table in the export column order.
func BuildRows(applicants []model.Applicant, generated time.Time) [][]any {
	summary := report.Summarize(applicants)

	values := make([][]any, 0, summaryRows(summary)+len(applicants)+1)
	values = append(values,
		[]any{"Applicant Report", generated.Format("Jan 2, 2006")},
		[]any{},
		[]any{"Summary"},
		[]any{"Total Applicants", summary.Total},
		[]any{},
		[]any{"Job Position", "Count"},
	)
	values = appendCounts(values, summary.ByJob)
	values = append(values,
		[]any{},
		[]any{"Status", "Count"},
	)
	values = appendCounts(values, summary.ByStatus)
	values = append(values, []any{}, []any{})

	header := make([]any, len(export.Header))
	for i, h := range export.Header {
		header[i] = h
	}
	values = append(values, header)

	for _, r := range export.Records(applicants) {
		cells := r.Cells()
		row := make([]any, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		values = append(values, row)
	}

	return values
}

// appendCounts adds one row per key, largest count first.
func appendCounts(values [][]any, counts map[string]int) [][]any {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	for _, k := range keys {
		values = append(values, []any{k, counts[k]})
	}
	return values
}

func summaryRows(s report.Summary) int {
	return 10 + len(s.ByJob) + len(s.ByStatus)
}

// applicantHeaderRow is the zero-based row index of the applicant table header.
func applicantHeaderRow(applicants []model.Applicant) int64 {
	return int64(summaryRows(report.Summarize(applicants)))
}

// formatRequests styles the title, bolds the table header, freezes everything
// above the applicant rows and resizes the columns.
func formatRequests(sheetID, headerRow int64) []*sheets.Request {
	bold := func(start, end, endCol int64, size int64) *sheets.Request {
		return &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    start,
					EndRowIndex:      end,
					StartColumnIndex: 0,
					EndColumnIndex:   endCol,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{Bold: true, FontSize: size},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		}
	}

	return []*sheets.Request{
		bold(0, 1, 2, 16),
		bold(headerRow, headerRow+1, int64(len(export.Header)), 10),
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   int64(len(export.Header)),
				},
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId:        sheetID,
					GridProperties: &sheets.GridProperties{FrozenRowCount: headerRow + 1},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}
}
