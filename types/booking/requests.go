package booking

// CreateRequest records a new booking request with its hold deadline.
type CreateRequest struct {
	Name        string `json:"name"`
	IDNo        string `json:"id_no"`
	Phone       string `json:"phone"`
	AccountName string `json:"account_name"`
	AccountType string `json:"account_type"`
	AccountLink string `json:"account_link"`
	Departure   string `json:"departure"`
	Destination string `json:"destination"`
	DepartingOn string `json:"departing_on"`
	PNR         string `json:"pnr"`
	EndDate     string `json:"enddate"`
	EndTime     string `json:"endtime"`
}

// StatusRequest moves an active booking into a terminal state.
type StatusRequest struct {
	RowIndex int    `json:"row_index"`
	Status   string `json:"status"`
}
