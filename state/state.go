package state

import (
	"sync"

	"travel-backoffice/models/booking"
)

// AppState is the explicit application-state container passed to the
// components that need shared in-memory data. It replaces any ambient
// singleton: everything here is owned by main and injected.
//
// The only state that matters for correctness is the active booking list,
// because booking-status updates apply an optimistic local removal before
// the remote write lands and must roll back to the exact prior list on
// failure.
type AppState struct {
	mu             sync.Mutex
	activeBookings []booking.Booking
}

func New() *AppState {
	return &AppState{}
}

// ActiveBookings returns the current in-memory active booking list. The
// returned slice is the live snapshot; callers hold it only to display or
// to restore it via SetActiveBookings.
func (s *AppState) ActiveBookings() []booking.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeBookings
}

// SetActiveBookings replaces the in-memory active booking list wholesale.
func (s *AppState) SetActiveBookings(bookings []booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeBookings = bookings
}

// RemoveActiveBooking optimistically drops one booking by its row index and
// returns the pre-removal list for rollback.
func (s *AppState) RemoveActiveBooking(rowIndex int) []booking.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.activeBookings
	next := make([]booking.Booking, 0, len(snapshot))
	for _, b := range snapshot {
		if b.RowIndex != rowIndex {
			next = append(next, b)
		}
	}
	s.activeBookings = next
	return snapshot
}
