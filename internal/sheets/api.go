package sheets

import (
	"context"

	"google.golang.org/api/sheets/v4"
)

// spreadsheetAPI is the slice of the Sheets API the writer uses.
type spreadsheetAPI interface {
	Get(ctx context.Context, spreadsheetID string) (*sheets.Spreadsheet, error)
	Create(ctx context.Context, spreadsheet *sheets.Spreadsheet) (*sheets.Spreadsheet, error)
	Clear(ctx context.Context, spreadsheetID, rangeStr string) error
	Update(ctx context.Context, spreadsheetID, rangeStr string, values *sheets.ValueRange) error
	BatchUpdate(ctx context.Context, spreadsheetID string, req *sheets.BatchUpdateSpreadsheetRequest) (*sheets.BatchUpdateSpreadsheetResponse, error)
}

type serviceAPI struct {
	srv *sheets.Service
}

func (a serviceAPI) Get(ctx context.Context, spreadsheetID string) (*sheets.Spreadsheet, error) {
	return a.srv.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
}

func (a serviceAPI) Create(ctx context.Context, spreadsheet *sheets.Spreadsheet) (*sheets.Spreadsheet, error) {
	return a.srv.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
}

func (a serviceAPI) Clear(ctx context.Context, spreadsheetID, rangeStr string) error {
	_, err := a.srv.Spreadsheets.Values.Clear(spreadsheetID, rangeStr, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

func (a serviceAPI) Update(ctx context.Context, spreadsheetID, rangeStr string, values *sheets.ValueRange) error {
	_, err := a.srv.Spreadsheets.Values.Update(spreadsheetID, rangeStr, values).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	return err
}

func (a serviceAPI) BatchUpdate(ctx context.Context, spreadsheetID string, req *sheets.BatchUpdateSpreadsheetRequest) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	return a.srv.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
}
