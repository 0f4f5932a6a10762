package balance

import (
	"testing"
	"time"

	"travel-backoffice/models/settlement"
	"travel-backoffice/models/ticket"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeInPeriod(t *testing.T) {
	t.Parallel()

	tickets := []ticket.Ticket{
		{IssuedDate: "05-Nov-2025", NetAmount: 1000, DateChange: 50, Commission: 100},
		{IssuedDate: "10-Nov-2025", NetAmount: 2000, ExtraFare: 500, Commission: 200},
		{IssuedDate: "10-Nov-2025", NetAmount: 3000, Remarks: "Cancelled"}, // inactive, skipped
		{IssuedDate: "01-Dec-2025", NetAmount: 9999},                      // out of period
		{IssuedDate: "garbage", NetAmount: 777},                           // invalid date, skipped
	}
	settlements := []settlement.Settlement{
		{SettlementDate: "15-Nov-2025", AmountPaid: 1500},
		{SettlementDate: "01-Dec-2025", AmountPaid: 9999},
	}

	s := Compute(tickets, settlements, day(2025, time.November, 1), day(2025, time.December, 1))

	// Revenue counts net amount and date-change fees only; extra fare is a
	// booking-side charge and stays out of the backer balance.
	if s.Revenue != 3050 {
		t.Errorf("Revenue: got %v, want 3050", s.Revenue)
	}
	if s.Commission != 300 {
		t.Errorf("Commission: got %v, want 300", s.Commission)
	}
	if s.Settlements != 1500 {
		t.Errorf("Settlements: got %v, want 1500", s.Settlements)
	}
	if s.PreviousDue != 0 {
		t.Errorf("PreviousDue: got %v, want 0 at the cutover", s.PreviousDue)
	}
	if s.GrandTotal != 3050 {
		t.Errorf("GrandTotal: got %v, want 3050", s.GrandTotal)
	}
	if s.AmountDue != 1250 {
		t.Errorf("AmountDue: got %v, want 1250", s.AmountDue)
	}
	if s.LegacyLookback {
		t.Error("LegacyLookback: got true for a post-cutover period")
	}
}

func TestLegacyOneMonthLookback(t *testing.T) {
	t.Parallel()

	tickets := []ticket.Ticket{
		{IssuedDate: "10-Aug-2025", NetAmount: 5000, Commission: 500}, // two months back: invisible
		{IssuedDate: "10-Sep-2025", NetAmount: 1000, Commission: 100}, // prior month: carried
		{IssuedDate: "10-Oct-2025", NetAmount: 2000, Commission: 200}, // in period
	}
	settlements := []settlement.Settlement{
		{SettlementDate: "20-Sep-2025", AmountPaid: 300},
	}

	s := Compute(tickets, settlements, day(2025, time.October, 1), day(2025, time.November, 1))

	if !s.LegacyLookback {
		t.Fatal("LegacyLookback: got false for a pre-cutover period")
	}
	// Only September is carried forward: 1000 - 100 - 300. August debt is
	// forgotten, which is the historical behavior.
	if s.PreviousDue != 600 {
		t.Errorf("PreviousDue: got %v, want 600 (prior calendar month only)", s.PreviousDue)
	}
	if s.Revenue != 2000 {
		t.Errorf("Revenue: got %v, want 2000", s.Revenue)
	}
}

func TestLookbackKeepsPartialCancelFees(t *testing.T) {
	t.Parallel()

	// A partial cancellation leaves the fee as net amount; the lookback must
	// keep counting it. A full refund drops out entirely.
	tickets := []ticket.Ticket{
		{IssuedDate: "10-Nov-2025", NetAmount: 200, Remarks: "Partial Cancel - Refunded 800 on 15-Nov-2025"},
		{IssuedDate: "10-Nov-2025", NetAmount: 0, Remarks: "Full Refund on 15-Nov-2025"},
	}

	s := Compute(tickets, nil, day(2025, time.December, 1), day(2026, time.January, 1))
	if s.PreviousDue != 200 {
		t.Errorf("PreviousDue: got %v, want 200 (partial-cancel fee carried)", s.PreviousDue)
	}
	// The in-period revenue predicate is stricter: cancelled rows never count.
	if s.Revenue != 0 {
		t.Errorf("Revenue: got %v, want 0", s.Revenue)
	}
}

func TestResetBalanceIsCumulative(t *testing.T) {
	t.Parallel()

	tickets := []ticket.Ticket{
		{IssuedDate: "10-Nov-2025", NetAmount: 1000, Commission: 100},
		{IssuedDate: "10-Dec-2025", NetAmount: 2000, Commission: 200},
		{IssuedDate: "10-Jan-2026", NetAmount: 3000, Commission: 300},
	}
	settlements := []settlement.Settlement{
		{SettlementDate: "20-Nov-2025", AmountPaid: 500},
		{SettlementDate: "20-Dec-2025", AmountPaid: 600},
	}

	s := Compute(tickets, settlements, day(2026, time.January, 1), day(2026, time.February, 1))
	// Nov carries 1000-100-500, Dec carries 2000-200-600: both months stack.
	if s.PreviousDue != 1600 {
		t.Errorf("PreviousDue: got %v, want 1600 (cumulative since cutover)", s.PreviousDue)
	}
	if s.AmountDue != 1600+3000-300 {
		t.Errorf("AmountDue: got %v, want %v", s.AmountDue, 1600+3000-300)
	}
}

func TestResetBalanceRechunkingInvariance(t *testing.T) {
	t.Parallel()

	tickets := []ticket.Ticket{
		{IssuedDate: "03-Nov-2025", NetAmount: 1200, Commission: 120},
		{IssuedDate: "28-Nov-2025", NetAmount: 800, Commission: 80},
		{IssuedDate: "14-Dec-2025", NetAmount: 2500, Commission: 250},
		{IssuedDate: "02-Jan-2026", NetAmount: 400, Commission: 40},
	}
	settlements := []settlement.Settlement{
		{SettlementDate: "10-Nov-2025", AmountPaid: 700},
		{SettlementDate: "20-Dec-2025", AmountPaid: 900},
		{SettlementDate: "05-Jan-2026", AmountPaid: 100},
	}

	// The closing AmountDue of any period since the cutover must equal the
	// opening PreviousDue of the period that starts where it ends.
	boundaries := []time.Time{
		day(2025, time.December, 1),
		day(2026, time.January, 1),
		day(2026, time.February, 1),
	}
	prev := Compute(tickets, settlements, ResetCutover, boundaries[0])
	for i := 0; i < len(boundaries)-1; i++ {
		next := Compute(tickets, settlements, boundaries[i], boundaries[i+1])
		if next.PreviousDue != prev.AmountDue {
			t.Errorf("period starting %v: PreviousDue %v != prior AmountDue %v",
				boundaries[i], next.PreviousDue, prev.AmountDue)
		}
		prev = next
	}
}

func TestMonthPeriod(t *testing.T) {
	t.Parallel()

	start, end := MonthPeriod(time.Date(2025, time.November, 18, 13, 45, 0, 0, time.UTC))
	if !start.Equal(day(2025, time.November, 1)) {
		t.Errorf("start: got %v, want 2025-11-01", start)
	}
	if !end.Equal(day(2025, time.December, 1)) {
		t.Errorf("end: got %v, want 2025-12-01", end)
	}
}
