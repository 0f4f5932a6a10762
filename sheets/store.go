package sheets

import "context"

// RangeUpdate pairs an A1-style range with the rows to write there.
type RangeUpdate struct {
	Range string     `json:"range"`
	Rows  [][]string `json:"values"`
}

// Store is the row-range key/value surface of the backing spreadsheet.
// Ranges use "SheetName!A1:V9" notation. The store offers no transactions:
// a BatchUpdate of N rows is not atomic across rows, and callers treat the
// whole batch as failed-or-succeeded without per-row reconciliation.
type Store interface {
	Read(ctx context.Context, rng string) ([][]string, error)
	Append(ctx context.Context, rng string, rows [][]string) error
	Update(ctx context.Context, rng string, rows [][]string) error
	BatchUpdate(ctx context.Context, updates []RangeUpdate) error
}
