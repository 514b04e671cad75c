package sheets

import "fmt"

// rowUpdate is one existing row to overwrite.
type rowUpdate struct {
	rowIndex int // zero-based index into the sheet, header rows included
	row      []interface{}
}

// upsertPlan is the outcome of the key-column scan.
type upsertPlan struct {
	updates []rowUpdate
	appends [][]interface{}
}

// planUpsert scans the key column of the existing rows and splits the
// incoming rows into in-place updates and appends.
//
// Keys are compared by their string rendering, so 42 in a cell matches
// "42" in an incoming row. When several existing rows share a key, the
// first one wins. When several incoming rows share a key, later ones
// overwrite earlier ones at the same row index. Incoming rows too short to
// have a key cell are appended as-is.
func planUpsert(existing, incoming [][]interface{}, opts UpsertOptions) upsertPlan {
	keyToRow := make(map[string]int)
	for i := opts.HeaderRows; i < len(existing); i++ {
		row := existing[i]
		if opts.KeyColumn >= len(row) {
			continue
		}
		key := cellKey(row[opts.KeyColumn])
		if key == "" {
			continue
		}
		if _, seen := keyToRow[key]; !seen {
			keyToRow[key] = i
		}
	}

	var plan upsertPlan
	updatedAt := make(map[int]int) // row index -> position in plan.updates
	for _, row := range incoming {
		if opts.KeyColumn >= len(row) {
			plan.appends = append(plan.appends, row)
			continue
		}

		key := cellKey(row[opts.KeyColumn])
		index, found := keyToRow[key]
		if key == "" || !found {
			plan.appends = append(plan.appends, row)
			continue
		}

		if pos, dup := updatedAt[index]; dup {
			plan.updates[pos].row = row
			continue
		}
		updatedAt[index] = len(plan.updates)
		plan.updates = append(plan.updates, rowUpdate{rowIndex: index, row: row})
	}

	return plan
}

// cellKey renders a cell value for key comparison.
func cellKey(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
