package booking

import "strings"

// Booking is a pre-sale reservation row in Bookings!A:M. An empty remark
// means the booking is still active; any terminal status overwrites the
// remark in place (rows are never deleted).
type Booking struct {
	RowIndex int `json:"row_index"`

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
	Remark      string `json:"remark"`
	EndDate     string `json:"enddate"`
	EndTime     string `json:"endtime"`
}

// IsActive reports whether the booking still counts toward active queries.
func (b Booking) IsActive() bool {
	return strings.TrimSpace(b.Remark) == ""
}

// GroupKey identifies the logical reservation a row belongs to. There is no
// persistent group id upstream, so rows group by PNR when one exists and by
// phone+account otherwise, scoped to the same leg and date.
func (b Booking) GroupKey() string {
	id := strings.ToUpper(strings.TrimSpace(b.PNR))
	if id == "" {
		id = strings.TrimSpace(b.Phone) + "|" + strings.TrimSpace(b.AccountName)
	}
	return id + "|" + b.DepartingOn + "|" + b.Departure + "|" + b.Destination
}

// ToRow serializes the booking into its full A:M column span.
func (b Booking) ToRow() []string {
	return []string{
		b.Name,
		b.IDNo,
		b.Phone,
		b.AccountName,
		b.AccountType,
		b.AccountLink,
		b.Departure,
		b.Destination,
		b.DepartingOn,
		b.PNR,
		b.Remark,
		b.EndDate,
		b.EndTime,
	}
}
