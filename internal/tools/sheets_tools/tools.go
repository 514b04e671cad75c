package sheets_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/workspace-mcp/internal/google"
	"github.com/teemow/workspace-mcp/internal/server"
	"github.com/teemow/workspace-mcp/internal/sheets"
	"github.com/teemow/workspace-mcp/internal/tools/common"
)

// getSheetsClient retrieves or creates a Sheets client for the specified account
func getSheetsClient(ctx context.Context, account string, sc *server.ServerContext) (*sheets.Client, error) {
	client := sc.SheetsClientForAccount(account)
	if client == nil {
		// Check if token exists before trying to create client
		if !sheets.HasTokenForAccount(account) {
			errorMsg := google.GetAuthenticationErrorMessage(account)
			return nil, fmt.Errorf("%s", errorMsg)
		}

		var err error
		client, err = sheets.NewClientForAccount(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create Sheets client for account %s: %w", account, err)
		}
		sc.SetSheetsClientForAccount(account, client)
	}
	return client, nil
}

// RegisterSheetsTools registers all Google Sheets-related tools with the MCP server
func RegisterSheetsTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Read range tool
	readRangeTool := mcp.NewTool("sheets_read_range",
		mcp.WithDescription("Read the values of an A1-notation range from a Google Sheets spreadsheet"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("A1-notation range to read (e.g., 'Sheet1!A1:D10' or 'Sheet1')"),
		),
	)

	s.AddTool(readRangeTool, common.InstrumentedToolHandlerWithService(
		"sheets_read_range", "sheets", "read", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReadRange(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	// Create spreadsheet tool
	createSpreadsheetTool := mcp.NewTool("sheets_create_spreadsheet",
		mcp.WithDescription("Create a new Google Sheets spreadsheet"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the new spreadsheet"),
		),
		mcp.WithString("sheetTitles",
			mcp.Description("Comma-separated sheet names to create (default: a single 'Sheet1')"),
		),
	)

	s.AddTool(createSpreadsheetTool, common.InstrumentedToolHandlerWithService(
		"sheets_create_spreadsheet", "sheets", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateSpreadsheet(ctx, request, sc)
		}))

	// Append rows tool
	appendRowsTool := mcp.NewTool("sheets_append_rows",
		mcp.WithDescription("Append rows after the last row with data in a range"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("A1-notation range identifying the table to append to (e.g., 'Sheet1')"),
		),
		mcp.WithArray("rows",
			mcp.Required(),
			mcp.Description("Rows to append, each an array of cell values"),
		),
	)

	s.AddTool(appendRowsTool, common.InstrumentedToolHandlerWithService(
		"sheets_append_rows", "sheets", "write", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAppendRows(ctx, request, sc)
		}))

	// Update range tool
	updateRangeTool := mcp.NewTool("sheets_update_range",
		mcp.WithDescription("Overwrite the values of an A1-notation range"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("A1-notation range to overwrite (e.g., 'Sheet1!A2:C4')"),
		),
		mcp.WithArray("rows",
			mcp.Required(),
			mcp.Description("Rows to write, each an array of cell values"),
		),
	)

	s.AddTool(updateRangeTool, common.InstrumentedToolHandlerWithService(
		"sheets_update_range", "sheets", "write", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateRange(ctx, request, sc)
		}))

	// Clear range tool
	clearRangeTool := mcp.NewTool("sheets_clear_range",
		mcp.WithDescription("Clear the values of an A1-notation range, keeping formatting"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("A1-notation range to clear (e.g., 'Sheet1!A2:C4')"),
		),
	)

	s.AddTool(clearRangeTool, common.InstrumentedToolHandlerWithService(
		"sheets_clear_range", "sheets", "write", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleClearRange(ctx, request, sc)
		}))

	// Upsert rows tool
	upsertRowsTool := mcp.NewTool("sheets_upsert_rows",
		mcp.WithDescription("Merge rows into a sheet by key column: rows whose key matches an existing row update it in place, all others are appended"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Name of the sheet to merge into (e.g., 'Inventory')"),
		),
		mcp.WithArray("rows",
			mcp.Required(),
			mcp.Description("Rows to merge, each an array of cell values"),
		),
		mcp.WithNumber("keyColumn",
			mcp.Description("Zero-based column whose value identifies a row (default: 0)"),
		),
		mcp.WithNumber("headerRows",
			mcp.Description("Number of leading rows that are never matched or updated (default: 1)"),
		),
	)

	s.AddTool(upsertRowsTool, common.InstrumentedToolHandlerWithService(
		"sheets_upsert_rows", "sheets", "write", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpsertRows(ctx, request, sc)
		}))

	return nil
}

func handleReadRange(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	spreadsheetID, ok := args["spreadsheetId"].(string)
	if !ok || spreadsheetID == "" {
		return mcp.NewToolResultError("spreadsheetId is required"), nil
	}

	readRange, ok := args["range"].(string)
	if !ok || readRange == "" {
		return mcp.NewToolResultError("range is required"), nil
	}

	client, err := getSheetsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	values, err := client.ReadRange(ctx, spreadsheetID, readRange)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read range: %v", err)), nil
	}

	jsonBytes, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format output: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func handleCreateSpreadsheet(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	title, ok := args["title"].(string)
	if !ok || title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	var sheetTitles []string
	if sheetTitlesStr, ok := args["sheetTitles"].(string); ok && sheetTitlesStr != "" {
		sheetTitles = parseCommaList(sheetTitlesStr)
	}

	client, err := getSheetsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, err := client.CreateSpreadsheet(ctx, title, sheetTitles)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create spreadsheet: %v", err)), nil
	}

	jsonBytes, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format output: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Spreadsheet created successfully:\n%s", string(jsonBytes))), nil
}

func handleAppendRows(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	spreadsheetID, ok := args["spreadsheetId"].(string)
	if !ok || spreadsheetID == "" {
		return mcp.NewToolResultError("spreadsheetId is required"), nil
	}

	appendRange, ok := args["range"].(string)
	if !ok || appendRange == "" {
		return mcp.NewToolResultError("range is required"), nil
	}

	rows, err := parseRows(args["rows"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getSheetsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := client.AppendRows(ctx, spreadsheetID, appendRange, rows)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to append rows: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Appended %d row(s) (%d cells) to %s", result.UpdatedRows, result.UpdatedCells, result.UpdatedRange)), nil
}

func handleUpdateRange(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	spreadsheetID, ok := args["spreadsheetId"].(string)
	if !ok || spreadsheetID == "" {
		return mcp.NewToolResultError("spreadsheetId is required"), nil
	}

	updateRange, ok := args["range"].(string)
	if !ok || updateRange == "" {
		return mcp.NewToolResultError("range is required"), nil
	}

	rows, err := parseRows(args["rows"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getSheetsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := client.UpdateRange(ctx, spreadsheetID, updateRange, rows)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update range: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Updated %d row(s) (%d cells) in %s", result.UpdatedRows, result.UpdatedCells, result.UpdatedRange)), nil
}

func handleClearRange(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	spreadsheetID, ok := args["spreadsheetId"].(string)
	if !ok || spreadsheetID == "" {
		return mcp.NewToolResultError("spreadsheetId is required"), nil
	}

	clearRange, ok := args["range"].(string)
	if !ok || clearRange == "" {
		return mcp.NewToolResultError("range is required"), nil
	}

	client, err := getSheetsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.ClearRange(ctx, spreadsheetID, clearRange); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to clear range: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Cleared range %s", clearRange)), nil
}

func handleUpsertRows(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	spreadsheetID, ok := args["spreadsheetId"].(string)
	if !ok || spreadsheetID == "" {
		return mcp.NewToolResultError("spreadsheetId is required"), nil
	}

	sheetName, ok := args["sheetName"].(string)
	if !ok || sheetName == "" {
		return mcp.NewToolResultError("sheetName is required"), nil
	}

	rows, err := parseRows(args["rows"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts := sheets.UpsertOptions{
		KeyColumn:  0,
		HeaderRows: 1,
	}
	if keyColumnVal, ok := args["keyColumn"].(float64); ok {
		opts.KeyColumn = int(keyColumnVal)
	}
	if headerRowsVal, ok := args["headerRows"].(float64); ok {
		opts.HeaderRows = int(headerRowsVal)
	}
	if opts.KeyColumn < 0 {
		return mcp.NewToolResultError("keyColumn must not be negative"), nil
	}
	if opts.HeaderRows < 0 {
		return mcp.NewToolResultError("headerRows must not be negative"), nil
	}

	client, err := getSheetsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := client.UpsertRows(ctx, spreadsheetID, sheetName, rows, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to upsert rows: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Upsert complete: %d row(s) updated, %d row(s) appended", result.Updated, result.Appended)), nil
}

// parseRows converts the raw 'rows' argument into a slice of rows,
// each row a slice of cell values
func parseRows(raw interface{}) ([][]interface{}, error) {
	if raw == nil {
		return nil, fmt.Errorf("rows is required")
	}

	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("rows must be an array of arrays")
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("at least one row is required")
	}

	rows := make([][]interface{}, 0, len(items))
	for i, item := range items {
		row, ok := item.([]interface{})
		if !ok {
			return nil, fmt.Errorf("row %d must be an array of cell values", i)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// parseCommaList parses a comma-separated string into a slice of trimmed strings
func parseCommaList(s string) []string {
	if s == "" {
		return nil
	}

	var result []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
