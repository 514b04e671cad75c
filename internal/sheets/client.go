package sheets

import (
	"context"
	"fmt"

	sheets "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"

	"github.com/teemow/workspace-mcp/internal/google"
)

// Client wraps the Google Sheets service
type Client struct {
	svc     *sheets.Service
	account string // The account this client is associated with
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// NewClientForAccount creates a new Google Sheets client with OAuth2 authentication
// for a specific account. Returns an error if no valid token exists - use
// HasTokenForAccount() to check first
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s. Please authorize access first: %w", account, err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	return &Client{
		svc:     svc,
		account: account,
	}, nil
}

// NewClient creates a new Google Sheets client for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// ReadRange reads the values of an A1-notation range
func (c *Client) ReadRange(ctx context.Context, spreadsheetID, readRange string) (*ValueRange, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheetID is required")
	}
	if readRange == "" {
		return nil, fmt.Errorf("range is required")
	}

	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", readRange, err)
	}

	return &ValueRange{
		Range:  resp.Range,
		Values: resp.Values,
	}, nil
}

// AppendRows appends rows after the last row with data in the given range
func (c *Client) AppendRows(ctx context.Context, spreadsheetID, appendRange string, values [][]interface{}) (*WriteResult, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheetID is required")
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("at least one row is required")
	}

	resp, err := c.svc.Spreadsheets.Values.Append(spreadsheetID, appendRange, &sheets.ValueRange{
		Values: values,
	}).
		Context(ctx).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to append rows: %w", err)
	}

	result := &WriteResult{}
	if resp.Updates != nil {
		result.UpdatedRange = resp.Updates.UpdatedRange
		result.UpdatedRows = resp.Updates.UpdatedRows
		result.UpdatedCells = resp.Updates.UpdatedCells
	}
	return result, nil
}

// UpdateRange overwrites the values of an A1-notation range
func (c *Client) UpdateRange(ctx context.Context, spreadsheetID, updateRange string, values [][]interface{}) (*WriteResult, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheetID is required")
	}
	if updateRange == "" {
		return nil, fmt.Errorf("range is required")
	}

	resp, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, updateRange, &sheets.ValueRange{
		Values: values,
	}).
		Context(ctx).
		ValueInputOption("USER_ENTERED").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update range %s: %w", updateRange, err)
	}

	return &WriteResult{
		UpdatedRange: resp.UpdatedRange,
		UpdatedRows:  resp.UpdatedRows,
		UpdatedCells: resp.UpdatedCells,
	}, nil
}

// ClearRange clears the values of an A1-notation range, keeping formatting
func (c *Client) ClearRange(ctx context.Context, spreadsheetID, clearRange string) error {
	if spreadsheetID == "" {
		return fmt.Errorf("spreadsheetID is required")
	}
	if clearRange == "" {
		return fmt.Errorf("range is required")
	}

	_, err := c.svc.Spreadsheets.Values.Clear(spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to clear range %s: %w", clearRange, err)
	}

	return nil
}

// CreateSpreadsheet creates a new spreadsheet with the given title and
// optional sheet names
func (c *Client) CreateSpreadsheet(ctx context.Context, title string, sheetTitles []string) (*SpreadsheetInfo, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: title,
		},
	}
	for _, name := range sheetTitles {
		spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: name},
		})
	}

	created, err := c.svc.Spreadsheets.Create(spreadsheet).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create spreadsheet: %w", err)
	}

	info := &SpreadsheetInfo{
		ID:    created.SpreadsheetId,
		Title: created.Properties.Title,
		URL:   created.SpreadsheetUrl,
	}
	for _, sheet := range created.Sheets {
		if sheet.Properties != nil {
			info.Sheets = append(info.Sheets, sheet.Properties.Title)
		}
	}
	return info, nil
}

// UpsertRows merges incoming rows into a sheet by key column. Existing rows
// whose key matches an incoming row are updated in place; everything else
// is appended after the last row with data. Updates go out as a single
// batch request, appends as a second one.
func (c *Client) UpsertRows(ctx context.Context, spreadsheetID, sheetName string, rows [][]interface{}, opts UpsertOptions) (*UpsertResult, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheetID is required")
	}
	if sheetName == "" {
		return nil, fmt.Errorf("sheetName is required")
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("at least one row is required")
	}
	if opts.KeyColumn < 0 {
		return nil, fmt.Errorf("keyColumn must not be negative")
	}

	existing, err := c.ReadRange(ctx, spreadsheetID, sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read existing rows: %w", err)
	}

	plan := planUpsert(existing.Values, rows, opts)

	if len(plan.updates) > 0 {
		var data []*sheets.ValueRange
		for _, update := range plan.updates {
			data = append(data, &sheets.ValueRange{
				// Row indexes are zero-based internally, A1 rows start at 1.
				Range:  fmt.Sprintf("%s!A%d", sheetName, update.rowIndex+1),
				Values: [][]interface{}{update.row},
			})
		}
		_, err := c.svc.Spreadsheets.Values.BatchUpdate(spreadsheetID, &sheets.BatchUpdateValuesRequest{
			ValueInputOption: "USER_ENTERED",
			Data:             data,
		}).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to update matched rows: %w", err)
		}
	}

	if len(plan.appends) > 0 {
		if _, err := c.AppendRows(ctx, spreadsheetID, sheetName, plan.appends); err != nil {
			return nil, fmt.Errorf("failed to append unmatched rows: %w", err)
		}
	}

	return &UpsertResult{
		Updated:  len(plan.updates),
		Appended: len(plan.appends),
	}, nil
}
