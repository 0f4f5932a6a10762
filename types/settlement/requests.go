package settlement

// CreateRequest records one payment to the financial backer.
type CreateRequest struct {
	SettlementDate string  `json:"settlement_date"`
	AmountPaid     float64 `json:"amount_paid"`
	PaymentMethod  string  `json:"payment_method"`
	Notes          string  `json:"notes"`
	RecordedBy     string  `json:"recorded_by"`
}
