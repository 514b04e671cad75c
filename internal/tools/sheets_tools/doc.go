// Package sheets_tools provides MCP (Model Context Protocol) tools for Google Sheets operations.
//
// This package exposes Sheets functionality to MCP clients (like AI assistants) through
// a set of tools that handle reading, writing and merging tabular data.
//
// Available tools:
//   - sheets_read_range: Read the values of an A1-notation range
//   - sheets_create_spreadsheet: Create a new spreadsheet with optional named sheets
//   - sheets_append_rows: Append rows after the last row with data
//   - sheets_update_range: Overwrite the values of an A1-notation range
//   - sheets_clear_range: Clear the values of an A1-notation range
//   - sheets_upsert_rows: Merge rows into a sheet by key column (update or append)
//
// All tools support multi-account functionality through an optional 'account' parameter,
// allowing management of multiple Google accounts simultaneously.
//
// Example tool usage:
//
//	sheets_read_range({
//	  account: "work",
//	  spreadsheetId: "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
//	  range: "Sheet1!A1:D10"
//	})
//
//	sheets_upsert_rows({
//	  spreadsheetId: "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
//	  sheetName: "Inventory",
//	  keyColumn: 0,
//	  headerRows: 1,
//	  rows: [["sku-1", "widget", 12]]
//	})
package sheets_tools
