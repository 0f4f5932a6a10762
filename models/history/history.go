package history

// Entry is one immutable audit row in History!A:D. The application only ever
// appends entries; they are never edited or deleted.
type Entry struct {
	RowIndex int `json:"row_index"`

	Date    string `json:"date"`
	Name    string `json:"name"`
	PNR     string `json:"pnr"`
	Details string `json:"details"`
}

// ToRow serializes the entry into its full A:D column span.
func (e Entry) ToRow() []string {
	return []string{e.Date, e.Name, e.PNR, e.Details}
}
