package sheetdata

import (
	"context"

	"travel-backoffice/models/booking"
	"travel-backoffice/models/history"
	"travel-backoffice/models/settlement"
	"travel-backoffice/models/ticket"
	"travel-backoffice/sheets"
)

// Loader is the read path: a read-through cached view of each logical
// dataset, decoded into typed records on every call. There is no incremental
// update anywhere — derived data is recomputed from these full loads.
type Loader struct {
	store sheets.Store
	cache *sheets.Cache
}

func NewLoader(store sheets.Store, cache *sheets.Cache) *Loader {
	return &Loader{store: store, cache: cache}
}

func (l *Loader) rows(ctx context.Context, key, rng string) ([][]string, error) {
	if rows, ok := l.cache.Get(key); ok {
		return rows, nil
	}
	rows, err := l.store.Read(ctx, rng)
	if err != nil {
		return nil, err
	}
	l.cache.Set(key, rows)
	return rows, nil
}

// Tickets loads and decodes the ticket dataset.
func (l *Loader) Tickets(ctx context.Context) ([]ticket.Ticket, error) {
	rows, err := l.rows(ctx, sheets.TicketsKey, sheets.TicketReadRange)
	if err != nil {
		return nil, err
	}
	return DecodeTickets(rows), nil
}

// Bookings loads and decodes the booking dataset.
func (l *Loader) Bookings(ctx context.Context) ([]booking.Booking, error) {
	rows, err := l.rows(ctx, sheets.BookingsKey, sheets.BookingReadRange)
	if err != nil {
		return nil, err
	}
	return DecodeBookings(rows), nil
}

// Settlements loads and decodes the settlement dataset.
func (l *Loader) Settlements(ctx context.Context) ([]settlement.Settlement, error) {
	rows, err := l.rows(ctx, sheets.SettlementsKey, sheets.SettlementReadRange)
	if err != nil {
		return nil, err
	}
	return DecodeSettlements(rows), nil
}

// History loads and decodes the audit history dataset.
func (l *Loader) History(ctx context.Context) ([]history.Entry, error) {
	rows, err := l.rows(ctx, sheets.HistoryKey, sheets.HistoryReadRange)
	if err != nil {
		return nil, err
	}
	return DecodeHistory(rows), nil
}
