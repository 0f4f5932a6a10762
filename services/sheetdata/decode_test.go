package sheetdata

import (
	"testing"
)

func ticketHeader() []string {
	return []string{
		"Issued Date", "Name", "NRC No", "Phone", "Account Name", "Account Type",
		"Account Link", "Departure", "Destination", "Departing On", "Airline",
		"Base Fare", "Booking Reference", "Net Amount", "Paid", "Payment Method",
		"Paid Date", "Commission", "Remarks", "Extra Fare", "Date Change", "Gender",
	}
}

func TestNormalizeHeader(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"Issued Date", "issued_date"},
		{"NRC", "id"},
		{"NRC No", "id_no"},
		{"nrc_no", "id_no"},
		{"Booking Reference", "booking_reference"},
		{"  Paid ", "paid"},
	}
	for _, tc := range cases {
		if got := NormalizeHeader(tc.in); got != tc.want {
			t.Errorf("NormalizeHeader(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDecodeTicketsLenientNumerics(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		ticketHeader(),
		{
			"12-Nov-2025", "MR JOHN", "123", "0912345", "acct", "viber", "",
			"RGN", "BKK", "20-Nov-2025", "MAI",
			"1,200,000", "AB1", "1,350,000", "TRUE", "KPay",
			"12-Nov-2025", "50,000", "", "not-a-number", "", "M",
		},
		{
			"13-Nov-2025", "MS SU", "", "0998877", "acct", "viber", "",
			"RGN", "SIN", "21-Nov-2025", "MAI",
			"", "CD2", "abc", "true", "", "", "", "", "", "", "F",
		},
	}

	tickets := DecodeTickets(rows)
	if len(tickets) != 2 {
		t.Fatalf("DecodeTickets: got %d tickets, want 2", len(tickets))
	}

	first := tickets[0]
	if first.RowIndex != 2 {
		t.Errorf("RowIndex: got %d, want 2 (header row + 1-based indexing)", first.RowIndex)
	}
	if first.BaseFare != 1200000 {
		t.Errorf("BaseFare: got %v, want 1200000 (thousand separators stripped)", first.BaseFare)
	}
	if first.NetAmount != 1350000 {
		t.Errorf("NetAmount: got %v, want 1350000", first.NetAmount)
	}
	if !first.Paid {
		t.Error("Paid: got false, want true for literal TRUE")
	}
	if first.ExtraFare != 0 {
		t.Errorf("ExtraFare: got %v, want 0 for unparsable cell", first.ExtraFare)
	}
	if first.IDNo != "123" {
		t.Errorf("IDNo: got %q, want %q (NRC No renamed to id_no)", first.IDNo, "123")
	}

	second := tickets[1]
	if second.RowIndex != 3 {
		t.Errorf("RowIndex: got %d, want 3", second.RowIndex)
	}
	if second.Paid {
		t.Error("Paid: got true for lowercase 'true', want false (literal match only)")
	}
	if second.NetAmount != 0 {
		t.Errorf("NetAmount: got %v, want 0 for unparsable cell", second.NetAmount)
	}
}

func TestDecodeTicketsShortRows(t *testing.T) {
	t.Parallel()

	// Trailing empty cells are omitted by the values API; decoding must not
	// panic and missing fields stay zero-valued.
	rows := [][]string{
		ticketHeader(),
		{"12-Nov-2025", "MR JOHN"},
	}
	tickets := DecodeTickets(rows)
	if len(tickets) != 1 {
		t.Fatalf("DecodeTickets: got %d tickets, want 1", len(tickets))
	}
	if tickets[0].NetAmount != 0 || tickets[0].Paid {
		t.Errorf("short row: got net=%v paid=%v, want zero values", tickets[0].NetAmount, tickets[0].Paid)
	}
}

func TestDecodeTicketsHeaderOnly(t *testing.T) {
	t.Parallel()

	if got := DecodeTickets([][]string{ticketHeader()}); got != nil {
		t.Errorf("DecodeTickets(header only): got %d rows, want none", len(got))
	}
	if got := DecodeTickets(nil); got != nil {
		t.Errorf("DecodeTickets(nil): got %d rows, want none", len(got))
	}
}

func TestDecodeBookings(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Name", "NRC No", "Phone", "Account Name", "Account Type", "Account Link",
			"Departure", "Destination", "Departing On", "PNR", "Remark", "EndDate", "EndTime"},
		{"MR JOHN", "123", "0912345", "acct", "viber", "", "RGN", "BKK",
			"20-Nov-2025", "AB1", "", "18-Nov-2025", "5:00 PM"},
		{"MS SU", "", "0998877", "acct", "viber", "", "RGN", "SIN",
			"21-Nov-2025", "", "cancel", "19-Nov-2025", "12 AM"},
	}

	bookings := DecodeBookings(rows)
	if len(bookings) != 2 {
		t.Fatalf("DecodeBookings: got %d, want 2", len(bookings))
	}
	if !bookings[0].IsActive() {
		t.Error("empty remark: booking should be active")
	}
	if bookings[1].IsActive() {
		t.Error("terminal remark: booking should not be active")
	}
	if bookings[0].RowIndex != 2 || bookings[1].RowIndex != 3 {
		t.Errorf("RowIndexes: got %d/%d, want 2/3", bookings[0].RowIndex, bookings[1].RowIndex)
	}
}

func TestDecodeSettlements(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Settlement Date", "Amount Paid", "Payment Method", "Transaction ID",
			"Status", "Notes", "Recorded By"},
		{"05-Nov-2025", "2,000,000", "KPay", "tx-1", "Completed", "", "op"},
	}
	settlements := DecodeSettlements(rows)
	if len(settlements) != 1 {
		t.Fatalf("DecodeSettlements: got %d, want 1", len(settlements))
	}
	if settlements[0].AmountPaid != 2000000 {
		t.Errorf("AmountPaid: got %v, want 2000000", settlements[0].AmountPaid)
	}
}
