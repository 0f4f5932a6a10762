package settlement

import "strconv"

// Settlement is a payment from the agency to its financial backer, one row
// in Settlements!A:G. Settlements reduce the running amount due.
type Settlement struct {
	RowIndex int `json:"row_index"`

	SettlementDate string  `json:"settlement_date"`
	AmountPaid     float64 `json:"amount_paid"`
	PaymentMethod  string  `json:"payment_method"`
	TransactionID  string  `json:"transaction_id"`
	Status         string  `json:"status"`
	Notes          string  `json:"notes"`
	RecordedBy     string  `json:"recorded_by"`
}

// ToRow serializes the settlement into its full A:G column span.
func (s Settlement) ToRow() []string {
	return []string{
		s.SettlementDate,
		strconv.FormatFloat(s.AmountPaid, 'f', -1, 64),
		s.PaymentMethod,
		s.TransactionID,
		s.Status,
		s.Notes,
		s.RecordedBy,
	}
}
