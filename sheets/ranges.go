package sheets

import "fmt"

// Sheet names and full column spans. Writes always target the whole span of
// a row so that column semantics stay atomic.
const (
	TicketSheet     = "Tickets"
	BookingSheet    = "Bookings"
	SettlementSheet = "Settlements"
	HistorySheet    = "History"

	TicketReadRange     = "Tickets!A1:V"
	BookingReadRange    = "Bookings!A1:M"
	SettlementReadRange = "Settlements!A1:G"
	HistoryReadRange    = "History!A1:D"

	TicketAppendRange     = "Tickets!A:V"
	BookingAppendRange    = "Bookings!A:M"
	SettlementAppendRange = "Settlements!A:G"
	HistoryAppendRange    = "History!A:D"
)

// Cache keys, one per logical dataset.
const (
	TicketsKey     = "tickets"
	BookingsKey    = "bookings"
	SettlementsKey = "settlements"
	HistoryKey     = "history"
)

// TicketRowRange addresses the full A:V span of one ticket row.
func TicketRowRange(rowIndex int) string {
	return fmt.Sprintf("Tickets!A%d:V%d", rowIndex, rowIndex)
}

// BookingRowRange addresses the full A:M span of one booking row.
func BookingRowRange(rowIndex int) string {
	return fmt.Sprintf("Bookings!A%d:M%d", rowIndex, rowIndex)
}

// SettlementRowRange addresses the full A:G span of one settlement row.
func SettlementRowRange(rowIndex int) string {
	return fmt.Sprintf("Settlements!A%d:G%d", rowIndex, rowIndex)
}
