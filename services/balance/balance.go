// Package balance computes the agency's running settlement balance against
// its financial backer. The accounting was reset on 1 Nov 2025: periods
// starting before the cutover carry forward only the prior calendar month
// (the historical behavior, reproduced bit-for-bit), periods starting on or
// after it carry a true cumulative balance anchored to zero at the cutover.
// The two branches are a one-time migration artifact and must not be
// unified.
package balance

import (
	"time"

	"github.com/jinzhu/now"

	"travel-backoffice/models/settlement"
	"travel-backoffice/models/ticket"
	"travel-backoffice/utils"
)

// ResetCutover is the instant the accounting reset took effect, compared in
// UTC.
var ResetCutover = time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)

// Summary is the derived balance for one reporting period [Start, End).
type Summary struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	Revenue     float64 `json:"revenue"`
	Commission  float64 `json:"commission"`
	Settlements float64 `json:"settlements"`
	PreviousDue float64 `json:"previous_due"`
	GrandTotal  float64 `json:"grand_total"`
	AmountDue   float64 `json:"amount_due"`

	// LegacyLookback marks summaries whose carried balance used the
	// pre-cutover one-month algorithm.
	LegacyLookback bool `json:"legacy_lookback"`
}

// Compute derives the period summary from the full ticket and settlement
// datasets. Revenue counts net amount plus date-change fees of active
// tickets issued in-period; commission is summed over the same set.
func Compute(tickets []ticket.Ticket, settlements []settlement.Settlement, start, end time.Time) Summary {
	s := Summary{PeriodStart: start, PeriodEnd: end}

	s.Revenue, s.Commission = revenueBetween(tickets, start, end, ticket.Ticket.IsActive)
	s.Settlements = settlementsBetween(settlements, start, end)

	if start.Before(ResetCutover) {
		s.LegacyLookback = true
		s.PreviousDue = legacyPreviousDue(tickets, settlements, start)
	} else {
		s.PreviousDue = resetPreviousDue(tickets, settlements, start)
	}

	s.GrandTotal = s.Revenue + s.PreviousDue
	s.AmountDue = s.GrandTotal - s.Commission - s.Settlements
	return s
}

// legacyPreviousDue looks back exactly one calendar month. This is
// intentionally not a cumulative balance: the limitation is part of the
// historical reports and is preserved as-is.
func legacyPreviousDue(tickets []ticket.Ticket, settlements []settlement.Settlement, start time.Time) float64 {
	monthStart := now.With(start.UTC()).BeginningOfMonth()
	priorStart := monthStart.AddDate(0, -1, 0)

	revenue, commission := revenueBetween(tickets, priorStart, monthStart, countsForLookback)
	settled := settlementsBetween(settlements, priorStart, monthStart)
	return revenue - commission - settled
}

// resetPreviousDue is the true cumulative balance over every day from the
// cutover up to (but excluding) the period start, anchored to zero at the
// cutover instant.
func resetPreviousDue(tickets []ticket.Ticket, settlements []settlement.Settlement, start time.Time) float64 {
	if !start.After(ResetCutover) {
		return 0
	}
	revenue, commission := revenueBetween(tickets, ResetCutover, start, countsForLookback)
	settled := settlementsBetween(settlements, ResetCutover, start)
	return revenue - commission - settled
}

// countsForLookback is the historical-balance predicate: only a full refund
// removes a ticket from prior-period recomputation. Partial cancellations
// keep their cancellation fee as real revenue.
func countsForLookback(t ticket.Ticket) bool {
	return !t.IsFullRefund()
}

func revenueBetween(tickets []ticket.Ticket, start, end time.Time, include func(ticket.Ticket) bool) (revenue, commission float64) {
	for _, t := range tickets {
		if !include(t) {
			continue
		}
		issued := utils.ParseSheetDate(t.IssuedDate)
		if !utils.IsValidDate(issued) || issued.Before(start) || !issued.Before(end) {
			continue
		}
		revenue += t.NetAmount + t.DateChange
		commission += t.Commission
	}
	return revenue, commission
}

func settlementsBetween(settlements []settlement.Settlement, start, end time.Time) float64 {
	var total float64
	for _, s := range settlements {
		d := utils.ParseSheetDate(s.SettlementDate)
		if !utils.IsValidDate(d) || d.Before(start) || !d.Before(end) {
			continue
		}
		total += s.AmountPaid
	}
	return total
}

// MonthPeriod returns the [start, end) bounds of the calendar month
// containing t, in UTC.
func MonthPeriod(t time.Time) (time.Time, time.Time) {
	start := now.With(t.UTC()).BeginningOfMonth()
	return start, start.AddDate(0, 1, 0)
}
