package ticket

import (
	"strconv"
	"strings"
)

// Ticket is one passenger-leg-fee unit, i.e. one sheet row in Tickets!A:V.
// RowIndex (the sheet row the record came from) is the only stable identity;
// names and PNRs repeat across rows.
type Ticket struct {
	RowIndex int `json:"row_index"`

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
	ExtraFare        float64 `json:"extra_fare"`
	DateChange       float64 `json:"date_change"`
	Gender           string  `json:"gender"`
}

const feeNameSuffix = "(fees)"

// IsActive reports whether the ticket still counts toward balances and
// dashboards. Any mention of a cancellation or refund in the remarks takes
// the row out of play.
func (t Ticket) IsActive() bool {
	remarks := strings.ToLower(t.Remarks)
	return !strings.Contains(remarks, "cancel") && !strings.Contains(remarks, "refund")
}

// IsFullRefund reports whether the ticket was fully refunded. Fully refunded
// rows are excluded even from historical balance recomputation.
func (t Ticket) IsFullRefund() bool {
	return strings.Contains(strings.ToLower(t.Remarks), "full refund")
}

// IsFeeEntry reports whether the row is a synthetic fee row appended against
// an existing PNR rather than a new passenger.
func (t Ticket) IsFeeEntry() bool {
	if strings.HasSuffix(strings.ToLower(strings.TrimSpace(t.Name)), feeNameSuffix) {
		return true
	}
	return strings.Contains(strings.ToLower(t.Remarks), "fee entry")
}

// PassengerName normalizes the row's name for grouping: fee suffix stripped,
// honorific prefix dropped, upper-cased.
func (t Ticket) PassengerName() string {
	name := strings.ToUpper(strings.TrimSpace(t.Name))
	if strings.HasSuffix(strings.ToLower(name), feeNameSuffix) {
		name = strings.TrimSpace(name[:len(name)-len(feeNameSuffix)])
	}
	for _, title := range []string{"MR ", "MRS ", "MS ", "MISS ", "MSTR ", "DR "} {
		if strings.HasPrefix(name, title) {
			name = strings.TrimSpace(name[len(title):])
			break
		}
	}
	return name
}

// PNR returns the booking reference normalized for grouping.
func (t Ticket) PNR() string {
	return strings.ToUpper(strings.TrimSpace(t.BookingReference))
}

// TotalDue is the amount the passenger owes on this row.
func (t Ticket) TotalDue() float64 {
	return t.NetAmount + t.ExtraFare + t.DateChange
}

// ToRow serializes the ticket back into its full A:V column span. Writes
// always rewrite the whole row so column semantics stay atomic.
func (t Ticket) ToRow() []string {
	paid := "FALSE"
	if t.Paid {
		paid = "TRUE"
	}
	return []string{
		t.IssuedDate,
		t.Name,
		t.IDNo,
		t.Phone,
		t.AccountName,
		t.AccountType,
		t.AccountLink,
		t.Departure,
		t.Destination,
		t.DepartingOn,
		t.Airline,
		formatAmount(t.BaseFare),
		t.BookingReference,
		formatAmount(t.NetAmount),
		paid,
		t.PaymentMethod,
		t.PaidDate,
		formatAmount(t.Commission),
		t.Remarks,
		formatAmount(t.ExtraFare),
		formatAmount(t.DateChange),
		t.Gender,
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
