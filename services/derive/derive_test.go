package derive

import (
	"testing"
	"time"

	"travel-backoffice/models/booking"
	"travel-backoffice/models/ticket"
	"travel-backoffice/utils"
)

func TestUnpaidGroupsFeeEntryScenario(t *testing.T) {
	t.Parallel()

	tickets := []ticket.Ticket{
		{
			RowIndex:         2,
			BookingReference: "AB1",
			Name:             "JOHN (Fees)",
			Remarks:          "Fee Entry",
			NetAmount:        0,
			ExtraFare:        5000,
		},
		{
			RowIndex:         3,
			BookingReference: "AB1",
			Name:             "MR JOHN",
			NetAmount:        100000,
			Paid:             false,
		},
	}

	groups := UnpaidGroups(tickets)
	if len(groups) != 1 {
		t.Fatalf("UnpaidGroups: got %d groups, want 1", len(groups))
	}
	g := groups[0]
	if g.PNR != "AB1" {
		t.Errorf("PNR: got %q, want %q", g.PNR, "AB1")
	}
	if g.AmountDue != 105000 {
		t.Errorf("AmountDue: got %v, want 105000", g.AmountDue)
	}
	if len(g.Passengers) != 1 || g.Passengers[0] != "JOHN" {
		t.Errorf("Passengers: got %v, want [JOHN] (deduplicated, fee suffix stripped)", g.Passengers)
	}
}

func TestUnpaidGroupsPartition(t *testing.T) {
	t.Parallel()

	tickets := []ticket.Ticket{
		{RowIndex: 2, BookingReference: "ab1", Name: "A", NetAmount: 100, ExtraFare: 10},
		{RowIndex: 3, BookingReference: "AB1", Name: "B", NetAmount: 200, DateChange: 20},
		{RowIndex: 4, BookingReference: "CD2", Name: "C", NetAmount: 300},
		{RowIndex: 5, BookingReference: "EF3", Name: "D", NetAmount: 400, Paid: true},
		{RowIndex: 6, BookingReference: "GH4", Name: "E", NetAmount: 500, Remarks: "Cancelled by client"},
	}

	groups := UnpaidGroups(tickets)

	// The grouping is a partition: the group totals must equal the sum over
	// all unpaid, non-cancelled tickets, with no double counting.
	var groupTotal float64
	rowsSeen := make(map[int]bool)
	for _, g := range groups {
		groupTotal += g.AmountDue
		for _, r := range g.RowIndexes {
			if rowsSeen[r] {
				t.Errorf("row %d appears in more than one group", r)
			}
			rowsSeen[r] = true
		}
	}

	var directTotal float64
	for _, tk := range tickets {
		if !tk.Paid && tk.IsActive() {
			directTotal += tk.TotalDue()
			if !rowsSeen[tk.RowIndex] {
				t.Errorf("unpaid active row %d missing from all groups", tk.RowIndex)
			}
		}
	}
	if groupTotal != directTotal {
		t.Errorf("partition sum: got %v, want %v", groupTotal, directTotal)
	}

	// Case-insensitive PNR grouping: ab1 and AB1 are one group.
	if len(groups) != 2 {
		t.Errorf("groups: got %d, want 2 (AB1 merged, EF3 paid, GH4 cancelled)", len(groups))
	}
}

func TestWidgetExactDates(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.November, 10, 15, 0, 0, 0, time.UTC)
	tickets := []ticket.Ticket{
		{RowIndex: 2, Name: "TMR", DepartingOn: "11-Nov-2025"},
		{RowIndex: 3, Name: "DAY AFTER", DepartingOn: "11/12/2025"},
		{RowIndex: 4, Name: "TODAY", DepartingOn: "10-Nov-2025"},
		{RowIndex: 5, Name: "LATER", DepartingOn: "14-Nov-2025"},
		{RowIndex: 6, Name: "CANCELLED", DepartingOn: "11-Nov-2025", Remarks: "full refund"},
		{RowIndex: 7, Name: "X (Fees)", DepartingOn: "11-Nov-2025", Remarks: "Fee Entry"},
	}

	w := Widget(tickets, now)
	if len(w.Tomorrow) != 1 || w.Tomorrow[0].RowIndex != 2 {
		t.Errorf("Tomorrow: got %v, want only row 2", w.Tomorrow)
	}
	if len(w.DayAfter) != 1 || w.DayAfter[0].RowIndex != 3 {
		t.Errorf("DayAfter: got %v, want only row 3 (slash format counts)", w.DayAfter)
	}
}

func TestUpcomingRollingWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.November, 10, 15, 0, 0, 0, time.UTC)
	tickets := []ticket.Ticket{
		{RowIndex: 2, DepartingOn: "10-Nov-2025"}, // today counts
		{RowIndex: 3, DepartingOn: "23-Nov-2025"}, // day 13 counts
		{RowIndex: 4, DepartingOn: "24-Nov-2025"}, // day 14 does not
		{RowIndex: 5, DepartingOn: "09-Nov-2025"}, // past does not
		{RowIndex: 6, DepartingOn: ""},            // invalid date skipped
	}

	got := Upcoming(tickets, now)
	if len(got) != 2 {
		t.Fatalf("Upcoming: got %d tickets, want 2", len(got))
	}
	if got[0].RowIndex != 2 || got[1].RowIndex != 3 {
		t.Errorf("Upcoming order: got rows %d,%d, want 2,3 (soonest first)", got[0].RowIndex, got[1].RowIndex)
	}
}

func TestClientsAggregation(t *testing.T) {
	t.Parallel()

	tickets := []ticket.Ticket{
		{Name: "MR JOHN", Phone: "09123", AccountName: "acct", NetAmount: 100, DepartingOn: "10-Nov-2025"},
		{Name: "MR JOHN", Phone: "09123", AccountName: "acct", NetAmount: 200, DepartingOn: "20-Nov-2025"},
		{Name: "MR JOHN (Fees)", Phone: "09123", AccountName: "acct", ExtraFare: 50, Remarks: "Fee Entry"},
		{Name: "MS SU", Phone: "09988", AccountName: "acct", NetAmount: 300},
	}

	clients := Clients(tickets)
	if len(clients) != 2 {
		t.Fatalf("Clients: got %d, want 2 (fee row creates no client)", len(clients))
	}

	john := clients[0]
	if john.Name != "MR JOHN" {
		john = clients[1]
	}
	if john.TicketCount != 2 {
		t.Errorf("TicketCount: got %d, want 2", john.TicketCount)
	}
	if john.TotalSpent != 300 {
		t.Errorf("TotalSpent: got %v, want 300", john.TotalSpent)
	}
	if john.LastTravel != "20-Nov-2025" {
		t.Errorf("LastTravel: got %q, want %q", john.LastTravel, "20-Nov-2025")
	}
}

func TestDeadlineTwelveHourClock(t *testing.T) {
	t.Parallel()

	cases := []struct {
		endTime string
		hour    int
		minute  int
	}{
		{"12 AM", 0, 0},
		{"12 PM", 12, 0},
		{"12:30 AM", 0, 30},
		{"5:00 PM", 17, 0},
		{"9:15 AM", 9, 15},
		{"", 0, 0},
	}
	for _, tc := range cases {
		b := booking.Booking{EndDate: "18-Nov-2025", EndTime: tc.endTime}
		d := Deadline(b)
		if d.Hour() != tc.hour || d.Minute() != tc.minute {
			t.Errorf("Deadline(%q): got %02d:%02d, want %02d:%02d",
				tc.endTime, d.Hour(), d.Minute(), tc.hour, tc.minute)
		}
	}
}

func TestDeadlineInvalidDateIsSentinel(t *testing.T) {
	t.Parallel()

	b := booking.Booking{EndDate: "garbage", EndTime: "5:00 PM"}
	if d := Deadline(b); utils.IsValidDate(d) {
		t.Errorf("Deadline with invalid enddate: got %v, want epoch sentinel", d)
	}
	// An invalid deadline never auto-expires.
	if IsExpired(b, time.Now()) {
		t.Error("IsExpired: booking with invalid deadline reported expired")
	}
}

func TestExpiredBookings(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.November, 18, 18, 0, 0, 0, time.UTC)
	bookings := []booking.Booking{
		{RowIndex: 2, EndDate: "18-Nov-2025", EndTime: "5:00 PM"},              // 1h past
		{RowIndex: 3, EndDate: "18-Nov-2025", EndTime: "7:00 PM"},              // still open
		{RowIndex: 4, EndDate: "17-Nov-2025", EndTime: "5:00 PM", Remark: "end"}, // already closed
	}

	expired := ExpiredBookings(bookings, now)
	if len(expired) != 1 || expired[0].RowIndex != 2 {
		t.Errorf("ExpiredBookings: got %v, want only row 2", expired)
	}
}

func TestGroupBookings(t *testing.T) {
	t.Parallel()

	bookings := []booking.Booking{
		{RowIndex: 2, PNR: "ab1", DepartingOn: "20-Nov-2025", Departure: "RGN", Destination: "BKK", EndDate: "18-Nov-2025", EndTime: "5:00 PM"},
		{RowIndex: 3, PNR: "AB1", DepartingOn: "20-Nov-2025", Departure: "RGN", Destination: "BKK", EndDate: "18-Nov-2025", EndTime: "3:00 PM"},
		{RowIndex: 4, Phone: "09123", AccountName: "acct", DepartingOn: "21-Nov-2025", Departure: "RGN", Destination: "SIN"},
	}

	groups := GroupBookings(bookings)
	if len(groups) != 2 {
		t.Fatalf("GroupBookings: got %d, want 2", len(groups))
	}
	if len(groups[0].Bookings) != 2 {
		t.Errorf("first group: got %d members, want 2 (PNR case-insensitive)", len(groups[0].Bookings))
	}
	// Earliest member deadline wins.
	if groups[0].Deadline.Hour() != 15 {
		t.Errorf("group deadline: got hour %d, want 15", groups[0].Deadline.Hour())
	}
}
