package ticket

// CreateRequest records a new ticket sale as one appended row.
type CreateRequest struct {
	IssuedDate       string  `json:"issued_date"`
	Name             string  `json:"name"`
	IDNo             string  `json:"id_no"`
	Phone            string  `json:"phone"`
	AccountName      string  `json:"account_name"`
	AccountType      string  `json:"account_type"`
	AccountLink      string  `json:"account_link"`
	Departure        string  `json:"departure"`
	Destination      string  `json:"destination"`
	DepartingOn      string  `json:"departing_on"`
	Airline          string  `json:"airline"`
	BaseFare         float64 `json:"base_fare"`
	BookingReference string  `json:"booking_reference"`
	NetAmount        float64 `json:"net_amount"`
	Paid             bool    `json:"paid"`
	PaymentMethod    string  `json:"payment_method"`
	PaidDate         string  `json:"paid_date"`
	Commission       float64 `json:"commission"`
	Remarks          string  `json:"remarks"`
	Gender           string  `json:"gender"`
}

// UpdateRequest edits every row sharing a PNR. The paid fields apply to the
// new fee row when a fee is added, never to the original rows.
type UpdateRequest struct {
	PNR           string  `json:"pnr"`
	Departure     string  `json:"departure"`
	Destination   string  `json:"destination"`
	DepartingOn   string  `json:"departing_on"`
	Airline       string  `json:"airline"`
	Remarks       string  `json:"remarks"`
	Paid          bool    `json:"paid"`
	PaymentMethod string  `json:"payment_method"`
	PaidDate      string  `json:"paid_date"`
	DateChangeFee float64 `json:"date_change_fee"`
	ExtraFare     float64 `json:"extra_fare"`
}

// CancelRequest cancels or refunds one ticket row.
type CancelRequest struct {
	RowIndex        int     `json:"row_index"`
	Mode            string  `json:"mode"`
	CancellationFee float64 `json:"cancellation_fee"`
}

// VoidFeeRequest neutralizes one fee row.
type VoidFeeRequest struct {
	RowIndex int `json:"row_index"`
}
