package sheetdata

import (
	"strconv"
	"strings"

	"travel-backoffice/models/booking"
	"travel-backoffice/models/history"
	"travel-backoffice/models/settlement"
	"travel-backoffice/models/ticket"
)

// headerRenames maps legacy header spellings onto the canonical field names.
var headerRenames = map[string]string{
	"nrc":    "id",
	"nrc_no": "id_no",
}

// NormalizeHeader canonicalizes one header cell: lowercase, spaces to
// underscores, plus the fixed legacy renames.
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	if renamed, ok := headerRenames[h]; ok {
		return renamed
	}
	return h
}

// columnIndex maps each normalized header name to its column position.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[NormalizeHeader(h)] = i
	}
	return idx
}

type rowReader struct {
	idx map[string]int
	row []string
}

func (r rowReader) str(field string) string {
	i, ok := r.idx[field]
	if !ok || i >= len(r.row) {
		return ""
	}
	return strings.TrimSpace(r.row[i])
}

// amount parses a numeric cell leniently: thousand separators stripped,
// anything unparsable coerces to 0. Sheet data is hand-edited and must never
// block a load.
func (r rowReader) amount(field string) float64 {
	raw := strings.ReplaceAll(r.str(field), ",", "")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

// boolean is true iff the cell literal equals "TRUE". Case matters: the
// sheet's checkbox column writes the uppercase literal and nothing else
// counts as paid.
func (r rowReader) boolean(field string) bool {
	return r.str(field) == "TRUE"
}

// DecodeTickets converts the raw Tickets!A:V rows (header first) into typed
// records. rowIndex = data position + 2 (one header row plus 1-based sheet
// indexing) and is the record's only durable identity.
func DecodeTickets(rows [][]string) []ticket.Ticket {
	if len(rows) < 2 {
		return nil
	}
	idx := columnIndex(rows[0])

	tickets := make([]ticket.Ticket, 0, len(rows)-1)
	for i, row := range rows[1:] {
		r := rowReader{idx: idx, row: row}
		tickets = append(tickets, ticket.Ticket{
			RowIndex:         i + 2,
			IssuedDate:       r.str("issued_date"),
			Name:             r.str("name"),
			IDNo:             r.str("id_no"),
			Phone:            r.str("phone"),
			AccountName:      r.str("account_name"),
			AccountType:      r.str("account_type"),
			AccountLink:      r.str("account_link"),
			Departure:        r.str("departure"),
			Destination:      r.str("destination"),
			DepartingOn:      r.str("departing_on"),
			Airline:          r.str("airline"),
			BaseFare:         r.amount("base_fare"),
			BookingReference: r.str("booking_reference"),
			NetAmount:        r.amount("net_amount"),
			Paid:             r.boolean("paid"),
			PaymentMethod:    r.str("payment_method"),
			PaidDate:         r.str("paid_date"),
			Commission:       r.amount("commission"),
			Remarks:          r.str("remarks"),
			ExtraFare:        r.amount("extra_fare"),
			DateChange:       r.amount("date_change"),
			Gender:           r.str("gender"),
		})
	}
	return tickets
}

// DecodeBookings converts the raw Bookings!A:M rows into typed records.
func DecodeBookings(rows [][]string) []booking.Booking {
	if len(rows) < 2 {
		return nil
	}
	idx := columnIndex(rows[0])

	bookings := make([]booking.Booking, 0, len(rows)-1)
	for i, row := range rows[1:] {
		r := rowReader{idx: idx, row: row}
		bookings = append(bookings, booking.Booking{
			RowIndex:    i + 2,
			Name:        r.str("name"),
			IDNo:        r.str("id_no"),
			Phone:       r.str("phone"),
			AccountName: r.str("account_name"),
			AccountType: r.str("account_type"),
			AccountLink: r.str("account_link"),
			Departure:   r.str("departure"),
			Destination: r.str("destination"),
			DepartingOn: r.str("departing_on"),
			PNR:         r.str("pnr"),
			Remark:      r.str("remark"),
			EndDate:     r.str("enddate"),
			EndTime:     r.str("endtime"),
		})
	}
	return bookings
}

// DecodeSettlements converts the raw Settlements!A:G rows into typed records.
func DecodeSettlements(rows [][]string) []settlement.Settlement {
	if len(rows) < 2 {
		return nil
	}
	idx := columnIndex(rows[0])

	settlements := make([]settlement.Settlement, 0, len(rows)-1)
	for i, row := range rows[1:] {
		r := rowReader{idx: idx, row: row}
		settlements = append(settlements, settlement.Settlement{
			RowIndex:       i + 2,
			SettlementDate: r.str("settlement_date"),
			AmountPaid:     r.amount("amount_paid"),
			PaymentMethod:  r.str("payment_method"),
			TransactionID:  r.str("transaction_id"),
			Status:         r.str("status"),
			Notes:          r.str("notes"),
			RecordedBy:     r.str("recorded_by"),
		})
	}
	return settlements
}

// DecodeHistory converts the raw History!A:D rows into typed records.
func DecodeHistory(rows [][]string) []history.Entry {
	if len(rows) < 2 {
		return nil
	}
	idx := columnIndex(rows[0])

	entries := make([]history.Entry, 0, len(rows)-1)
	for i, row := range rows[1:] {
		r := rowReader{idx: idx, row: row}
		entries = append(entries, history.Entry{
			RowIndex: i + 2,
			Date:     r.str("date"),
			Name:     r.str("name"),
			PNR:      r.str("pnr"),
			Details:  r.str("details"),
		})
	}
	return entries
}
