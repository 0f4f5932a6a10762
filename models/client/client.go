package client

import "time"

// Client is a derived record aggregated from ticket rows; it is never stored
// back to the sheet and is rebuilt wholesale on every ticket reload.
type Client struct {
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	AccountName  string    `json:"account_name"`
	TicketCount  int       `json:"ticket_count"`
	TotalSpent   float64   `json:"total_spent"`
	LastTravel   string    `json:"last_travel"`
	LastTravelAt time.Time `json:"last_travel_at"`
}

// Key identifies the client a ticket row belongs to.
func Key(name, phone, accountName string) string {
	return name + "|" + phone + "|" + accountName
}
