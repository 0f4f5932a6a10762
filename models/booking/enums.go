package booking

// BookingStatus is the remark value that moves a booking out of the active
// set. Active bookings carry an empty remark.
type BookingStatus string

const (
	BookingStatusComplete BookingStatus = "complete"
	BookingStatusCancel   BookingStatus = "cancel"
	BookingStatusEnd      BookingStatus = "end"
)

func (bs BookingStatus) String() string {
	return string(bs)
}

// IsValid reports whether the status is one of the terminal remark values.
func (bs BookingStatus) IsValid() bool {
	switch bs {
	case BookingStatusComplete, BookingStatusCancel, BookingStatusEnd:
		return true
	default:
		return false
	}
}

// IsUserDriven reports whether an operator may request this transition.
// The "end" transition is reserved for the automatic expiry sweep.
func (bs BookingStatus) IsUserDriven() bool {
	return bs == BookingStatusComplete || bs == BookingStatusCancel
}

// GetAllBookingStatuses returns all terminal booking statuses.
func GetAllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusComplete,
		BookingStatusCancel,
		BookingStatusEnd,
	}
}
