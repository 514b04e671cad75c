// Package sheets provides a Google Sheets client for reading, writing and
// upserting spreadsheet values.
//
// Besides thin wrappers around the Sheets API (read, append, update,
// clear, create), the package implements a key-column upsert: incoming
// rows are matched against an existing sheet by the value in a key column,
// matched rows are updated in place and the rest are appended.
package sheets
