// Package mutation is the single write path to the sheet. Every edit is a
// full-row overwrite keyed by row index (or a batch of them), followed by
// cache invalidation so the next load re-derives from truth. The store has
// no transactions and nothing here retries: a failed attempt is terminal
// and must be re-initiated by the user.
package mutation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"travel-backoffice/logger"
	bookingModel "travel-backoffice/models/booking"
	settlementModel "travel-backoffice/models/settlement"
	ticketModel "travel-backoffice/models/ticket"
	"travel-backoffice/notify"
	"travel-backoffice/services/derive"
	"travel-backoffice/sheets"
	"travel-backoffice/state"
	bookingTypes "travel-backoffice/types/booking"
	settlementTypes "travel-backoffice/types/settlement"
	ticketTypes "travel-backoffice/types/ticket"
	"travel-backoffice/utils"
)

// Cancellation modes.
const (
	CancelFull    = "full"
	CancelPartial = "partial"
)

var (
	// ErrNoMatchingRows is returned before any remote call when a request
	// addresses rows that do not exist in the loaded dataset.
	ErrNoMatchingRows = errors.New("no rows match the request")

	// ErrInvalidStatus rejects booking transitions outside the state machine.
	ErrInvalidStatus = errors.New("invalid booking status transition")
)

// Auditor records one audit row per successful mutation, best-effort.
type Auditor interface {
	Record(name, pnr, details string)
}

// Coordinator serializes all writes behind one coarse in-flight flag:
// while any submit is pending, further submits are dropped outright rather
// than queued. This mirrors how a single operator uses the tool.
type Coordinator struct {
	store    sheets.Store
	cache    *sheets.Cache
	notifier notify.Notifier
	auditor  Auditor

	inFlight atomic.Bool
	now      func() time.Time
}

func NewCoordinator(store sheets.Store, cache *sheets.Cache, notifier notify.Notifier, auditor Auditor) *Coordinator {
	return &Coordinator{
		store:    store,
		cache:    cache,
		notifier: notifier,
		auditor:  auditor,
		now:      time.Now,
	}
}

// begin claims the submit guard. A false return means another submit is in
// flight and the caller must treat its own submit as a silent no-op.
func (c *Coordinator) begin() bool {
	if !c.inFlight.CompareAndSwap(false, true) {
		c.notifier.Notify("Another submission is still in progress", notify.LevelInfo)
		return false
	}
	return true
}

func (c *Coordinator) end() {
	c.inFlight.Store(false)
}

func (c *Coordinator) record(name, pnr, details string) {
	if c.auditor != nil {
		c.auditor.Record(name, pnr, details)
	}
}

// CreateTicket appends one ticket sale row.
func (c *Coordinator) CreateTicket(ctx context.Context, req ticketTypes.CreateRequest) error {
	if !c.begin() {
		return nil
	}
	defer c.end()

	t := ticketModel.Ticket{
		IssuedDate:       req.IssuedDate,
		Name:             req.Name,
		IDNo:             req.IDNo,
		Phone:            req.Phone,
		AccountName:      req.AccountName,
		AccountType:      req.AccountType,
		AccountLink:      req.AccountLink,
		Departure:        req.Departure,
		Destination:      req.Destination,
		DepartingOn:      req.DepartingOn,
		Airline:          req.Airline,
		BaseFare:         req.BaseFare,
		BookingReference: req.BookingReference,
		NetAmount:        req.NetAmount,
		Paid:             req.Paid,
		PaymentMethod:    req.PaymentMethod,
		PaidDate:         req.PaidDate,
		Commission:       req.Commission,
		Remarks:          req.Remarks,
		Gender:           req.Gender,
	}
	if t.IssuedDate == "" {
		t.IssuedDate = utils.SheetDate(c.now())
	}

	if err := c.store.Append(ctx, sheets.TicketAppendRange, [][]string{t.ToRow()}); err != nil {
		c.notifier.Notify("Failed to save ticket", notify.LevelError)
		return err
	}
	c.cache.Invalidate(sheets.TicketsKey)

	c.record(req.Name, req.BookingReference, "Ticket issued: "+req.Departure+" → "+req.Destination)
	logger.Success("Ticket appended for PNR " + req.BookingReference)
	return nil
}

// UpdateTicketsByPNR rewrites every row sharing the request's PNR. When the
// form carries a positive date-change fee or extra fare, one brand-new fee
// row is appended (never merged into an existing row) dated today. The form's
// paid flag applies to that new fee row only; the original rows keep their
// payment status untouched.
func (c *Coordinator) UpdateTicketsByPNR(ctx context.Context, tickets []ticketModel.Ticket, req ticketTypes.UpdateRequest) error {
	if !c.begin() {
		return nil
	}
	defer c.end()

	want := strings.ToUpper(strings.TrimSpace(req.PNR))
	var matched []ticketModel.Ticket
	for _, t := range tickets {
		if t.PNR() == want {
			matched = append(matched, t)
		}
	}
	if len(matched) == 0 {
		return ErrNoMatchingRows
	}

	var updates []sheets.RangeUpdate
	for _, t := range matched {
		if req.Departure != "" {
			t.Departure = req.Departure
		}
		if req.Destination != "" {
			t.Destination = req.Destination
		}
		if req.DepartingOn != "" {
			t.DepartingOn = req.DepartingOn
		}
		if req.Airline != "" {
			t.Airline = req.Airline
		}
		if req.Remarks != "" {
			t.Remarks = req.Remarks
		}
		updates = append(updates, sheets.RangeUpdate{
			Range: sheets.TicketRowRange(t.RowIndex),
			Rows:  [][]string{t.ToRow()},
		})
	}

	if err := c.store.BatchUpdate(ctx, updates); err != nil {
		c.notifier.Notify("Failed to update tickets for PNR "+req.PNR, notify.LevelError)
		return err
	}

	if req.DateChangeFee > 0 || req.ExtraFare > 0 {
		fee := feeRowFor(matched[0], req, c.now())
		if err := c.store.Append(ctx, sheets.TicketAppendRange, [][]string{fee.ToRow()}); err != nil {
			c.cache.Invalidate(sheets.TicketsKey)
			c.notifier.Notify("Tickets updated but the fee row failed to append", notify.LevelError)
			return err
		}
	}
	c.cache.Invalidate(sheets.TicketsKey)

	c.record(matched[0].Name, req.PNR, fmt.Sprintf("Updated %d ticket row(s)", len(matched)))
	return nil
}

// feeRowFor builds the synthetic fee row appended against an existing PNR.
// Fares and commission stay zero; the charge lives in extra_fare and
// date_change.
func feeRowFor(original ticketModel.Ticket, req ticketTypes.UpdateRequest, today time.Time) ticketModel.Ticket {
	fee := ticketModel.Ticket{
		IssuedDate:       utils.SheetDate(today),
		Name:             original.PassengerName() + " (Fees)",
		IDNo:             original.IDNo,
		Phone:            original.Phone,
		AccountName:      original.AccountName,
		AccountType:      original.AccountType,
		AccountLink:      original.AccountLink,
		Departure:        original.Departure,
		Destination:      original.Destination,
		DepartingOn:      original.DepartingOn,
		Airline:          original.Airline,
		BookingReference: original.BookingReference,
		Remarks:          "Fee Entry",
		ExtraFare:        req.ExtraFare,
		DateChange:       req.DateChangeFee,
		Paid:             req.Paid,
		Gender:           original.Gender,
	}
	if req.Paid {
		fee.PaymentMethod = req.PaymentMethod
		fee.PaidDate = req.PaidDate
		if fee.PaidDate == "" {
			fee.PaidDate = utils.SheetDate(today)
		}
	}
	return fee
}

// CancelTicket applies a full refund or a partial cancellation to one row.
// Full refund zeroes base fare, net amount and commission; partial sets the
// net amount to the cancellation fee and leaves base fare and commission
// unchanged. Either way the row is stamped, never deleted.
func (c *Coordinator) CancelTicket(ctx context.Context, t ticketModel.Ticket, mode string, cancellationFee float64) error {
	if mode != CancelFull && mode != CancelPartial {
		return fmt.Errorf("unknown cancellation mode %q", mode)
	}
	if !c.begin() {
		return nil
	}
	defer c.end()

	today := utils.SheetDate(c.now())
	var details string
	if mode == CancelFull {
		t.BaseFare = 0
		t.NetAmount = 0
		t.Commission = 0
		t.Remarks = "Full Refund on " + today
		details = "Full refund"
	} else {
		refunded := t.NetAmount - cancellationFee
		t.NetAmount = cancellationFee
		t.Remarks = fmt.Sprintf("Partial Cancel - Refunded %s on %s", formatAmount(refunded), today)
		details = fmt.Sprintf("Partial cancel, refunded %s", formatAmount(refunded))
	}

	if err := c.store.Update(ctx, sheets.TicketRowRange(t.RowIndex), [][]string{t.ToRow()}); err != nil {
		c.notifier.Notify("Failed to cancel ticket", notify.LevelError)
		return err
	}
	c.cache.Invalidate(sheets.TicketsKey)

	c.record(t.Name, t.BookingReference, details)
	return nil
}

// VoidFeeRow neutralizes a fee row: every amount is zeroed and the remarks
// are stamped VOIDED FEE. The row itself is permanent.
func (c *Coordinator) VoidFeeRow(ctx context.Context, t ticketModel.Ticket) error {
	if !c.begin() {
		return nil
	}
	defer c.end()

	t.BaseFare = 0
	t.NetAmount = 0
	t.Commission = 0
	t.ExtraFare = 0
	t.DateChange = 0
	t.Remarks = "VOIDED FEE"

	if err := c.store.Update(ctx, sheets.TicketRowRange(t.RowIndex), [][]string{t.ToRow()}); err != nil {
		c.notifier.Notify("Failed to void fee row", notify.LevelError)
		return err
	}
	c.cache.Invalidate(sheets.TicketsKey)

	c.record(t.Name, t.BookingReference, "Voided fee row")
	return nil
}

// CreateBooking appends one booking request row.
func (c *Coordinator) CreateBooking(ctx context.Context, req bookingTypes.CreateRequest) error {
	if !c.begin() {
		return nil
	}
	defer c.end()

	b := bookingModel.Booking{
		Name:        req.Name,
		IDNo:        req.IDNo,
		Phone:       req.Phone,
		AccountName: req.AccountName,
		AccountType: req.AccountType,
		AccountLink: req.AccountLink,
		Departure:   req.Departure,
		Destination: req.Destination,
		DepartingOn: req.DepartingOn,
		PNR:         req.PNR,
		EndDate:     req.EndDate,
		EndTime:     req.EndTime,
	}

	if err := c.store.Append(ctx, sheets.BookingAppendRange, [][]string{b.ToRow()}); err != nil {
		c.notifier.Notify("Failed to save booking", notify.LevelError)
		return err
	}
	c.cache.Invalidate(sheets.BookingsKey)

	c.record(req.Name, req.PNR, "Booking requested: "+req.Departure+" → "+req.Destination)
	return nil
}

// UpdateBookingStatus moves an active booking into a terminal state. The
// booking is removed from the in-memory active list before the remote write
// (the one optimistic path in the system); on failure the list is rolled
// back to the exact pre-removal snapshot.
func (c *Coordinator) UpdateBookingStatus(ctx context.Context, appState *state.AppState, b bookingModel.Booking, status bookingModel.BookingStatus) error {
	if !status.IsValid() || !status.IsUserDriven() {
		return ErrInvalidStatus
	}
	if !c.begin() {
		return nil
	}
	defer c.end()

	snapshot := appState.RemoveActiveBooking(b.RowIndex)

	b.Remark = status.String()
	if err := c.store.Update(ctx, sheets.BookingRowRange(b.RowIndex), [][]string{b.ToRow()}); err != nil {
		appState.SetActiveBookings(snapshot)
		c.notifier.Notify("Failed to update booking status", notify.LevelError)
		return err
	}
	c.cache.Invalidate(sheets.BookingsKey)

	c.record(b.Name, b.PNR, "Booking marked "+status.String())
	return nil
}

// ExpireBookings transitions every past-deadline active booking to "end" in
// one batch write. A failed sweep is reported and simply retried on the next
// booking load.
func (c *Coordinator) ExpireBookings(ctx context.Context, bookings []bookingModel.Booking) error {
	expired := derive.ExpiredBookings(bookings, c.now())
	if len(expired) == 0 {
		return nil
	}
	if !c.begin() {
		return nil
	}
	defer c.end()

	var updates []sheets.RangeUpdate
	for _, b := range expired {
		b.Remark = bookingModel.BookingStatusEnd.String()
		updates = append(updates, sheets.RangeUpdate{
			Range: sheets.BookingRowRange(b.RowIndex),
			Rows:  [][]string{b.ToRow()},
		})
	}

	if err := c.store.BatchUpdate(ctx, updates); err != nil {
		c.notifier.Notify("Booking expiry sweep failed; will retry on next load", notify.LevelError)
		return err
	}
	c.cache.Invalidate(sheets.BookingsKey)

	c.record("system", "", fmt.Sprintf("Expired %d booking(s)", len(expired)))
	logger.Info(fmt.Sprintf("Expiry sweep closed %d booking(s)", len(expired)))
	return nil
}

// CreateSettlement appends one settlement row with a generated transaction
// id.
func (c *Coordinator) CreateSettlement(ctx context.Context, req settlementTypes.CreateRequest) error {
	if !c.begin() {
		return nil
	}
	defer c.end()

	s := settlementModel.Settlement{
		SettlementDate: req.SettlementDate,
		AmountPaid:     req.AmountPaid,
		PaymentMethod:  req.PaymentMethod,
		TransactionID:  uuid.NewString(),
		Status:         "Completed",
		Notes:          req.Notes,
		RecordedBy:     req.RecordedBy,
	}
	if s.SettlementDate == "" {
		s.SettlementDate = utils.SheetDate(c.now())
	}

	if err := c.store.Append(ctx, sheets.SettlementAppendRange, [][]string{s.ToRow()}); err != nil {
		c.notifier.Notify("Failed to save settlement", notify.LevelError)
		return err
	}
	c.cache.Invalidate(sheets.SettlementsKey)

	c.record(req.RecordedBy, "", fmt.Sprintf("Settlement of %s recorded", formatAmount(req.AmountPaid)))
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
