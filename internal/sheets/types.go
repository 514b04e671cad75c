package sheets

// ValueRange holds the values read from an A1-notation range
type ValueRange struct {
	// Range is the range the values cover, as returned by the API
	Range string `json:"range"`

	// Values are the rows within the range; trailing empty cells are
	// omitted by the API
	Values [][]interface{} `json:"values"`
}

// WriteResult summarizes a write operation
type WriteResult struct {
	// UpdatedRange is the range that was written
	UpdatedRange string `json:"updatedRange,omitempty"`

	// UpdatedRows is the number of rows written
	UpdatedRows int64 `json:"updatedRows"`

	// UpdatedCells is the number of cells written
	UpdatedCells int64 `json:"updatedCells"`
}

// SpreadsheetInfo describes a spreadsheet
type SpreadsheetInfo struct {
	// ID is the spreadsheet ID
	ID string `json:"id"`

	// Title is the spreadsheet title
	Title string `json:"title"`

	// URL is the link for opening the spreadsheet in a browser
	URL string `json:"url,omitempty"`

	// Sheets are the titles of the contained sheets
	Sheets []string `json:"sheets,omitempty"`
}

// UpsertOptions controls UpsertRows
type UpsertOptions struct {
	// KeyColumn is the zero-based column whose value identifies a row
	KeyColumn int

	// HeaderRows is the number of leading rows that are never matched or
	// updated (typically 1 for a header line)
	HeaderRows int
}

// UpsertResult summarizes an upsert
type UpsertResult struct {
	// Updated is the number of existing rows that were overwritten
	Updated int `json:"updated"`

	// Appended is the number of rows added after the existing data
	Appended int `json:"appended"`
}
