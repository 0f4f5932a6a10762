// Package derive computes every dashboard-facing aggregate as a pure
// function of the currently loaded rows. Nothing here is memoized: each
// mutation invalidates the cache and the whole derivation re-runs on the
// next load.
package derive

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"travel-backoffice/models/booking"
	"travel-backoffice/models/client"
	"travel-backoffice/models/ticket"
	"travel-backoffice/utils"
)

// UnpaidGroup is one PNR's worth of outstanding tickets.
type UnpaidGroup struct {
	PNR        string   `json:"pnr"`
	Passengers []string `json:"passengers"`
	AmountDue  float64  `json:"amount_due"`
	RowIndexes []int    `json:"row_indexes"`
}

// UnpaidGroups partitions the unpaid, non-cancelled tickets by uppercased
// PNR. Within a group the distinct normalized passenger names are collected
// (fee-entry suffixes stripped) and the amounts due summed. Every unpaid
// active ticket lands in exactly one group.
func UnpaidGroups(tickets []ticket.Ticket) []UnpaidGroup {
	byPNR := make(map[string]*UnpaidGroup)
	seenNames := make(map[string]map[string]bool)

	for _, t := range tickets {
		if t.Paid || !t.IsActive() {
			continue
		}
		pnr := t.PNR()
		group, ok := byPNR[pnr]
		if !ok {
			group = &UnpaidGroup{PNR: pnr}
			byPNR[pnr] = group
			seenNames[pnr] = make(map[string]bool)
		}

		group.AmountDue += t.TotalDue()
		group.RowIndexes = append(group.RowIndexes, t.RowIndex)

		name := t.PassengerName()
		if name != "" && !seenNames[pnr][name] {
			seenNames[pnr][name] = true
			group.Passengers = append(group.Passengers, name)
		}
	}

	groups := make([]UnpaidGroup, 0, len(byPNR))
	for _, g := range byPNR {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].PNR < groups[j].PNR })
	return groups
}

// TravelWidget holds the dashboard's near-term departures. The widget
// matches exact calendar dates, not a rolling window; the 14-day modal is a
// deliberately different policy (see Upcoming).
type TravelWidget struct {
	Tomorrow     []ticket.Ticket `json:"tomorrow"`
	DayAfter     []ticket.Ticket `json:"day_after"`
	TomorrowDate string          `json:"tomorrow_date"`
	DayAfterDate string          `json:"day_after_date"`
}

// Widget classifies active, non-fee tickets departing exactly tomorrow or
// the day after, relative to now.
func Widget(tickets []ticket.Ticket, now time.Time) TravelWidget {
	today := utils.Today(now)
	tomorrow := today.AddDate(0, 0, 1)
	dayAfter := today.AddDate(0, 0, 2)

	w := TravelWidget{
		TomorrowDate: utils.SheetDate(tomorrow),
		DayAfterDate: utils.SheetDate(dayAfter),
	}
	for _, t := range tickets {
		if !t.IsActive() || t.IsFeeEntry() {
			continue
		}
		d := utils.ParseSheetDate(t.DepartingOn)
		if !utils.IsValidDate(d) {
			continue
		}
		switch {
		case utils.SameDay(d, tomorrow):
			w.Tomorrow = append(w.Tomorrow, t)
		case utils.SameDay(d, dayAfter):
			w.DayAfter = append(w.DayAfter, t)
		}
	}
	return w
}

// Upcoming returns active, non-fee tickets departing within the next 14
// days, today included, soonest first. This rolling window backs the
// upcoming-travel modal and must stay distinct from the widget's
// exact-date policy.
func Upcoming(tickets []ticket.Ticket, now time.Time) []ticket.Ticket {
	today := utils.Today(now)
	limit := today.AddDate(0, 0, 14)

	var upcoming []ticket.Ticket
	for _, t := range tickets {
		if !t.IsActive() || t.IsFeeEntry() {
			continue
		}
		d := utils.ParseSheetDate(t.DepartingOn)
		if !utils.IsValidDate(d) {
			continue
		}
		if !d.Before(today) && d.Before(limit) {
			upcoming = append(upcoming, t)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return utils.ParseSheetDate(upcoming[i].DepartingOn).Before(utils.ParseSheetDate(upcoming[j].DepartingOn))
	})
	return upcoming
}

// Clients rebuilds the derived client records from scratch. Fee rows never
// create or count toward a client; a client is keyed by the raw
// (name, phone, account_name) triple.
func Clients(tickets []ticket.Ticket) []client.Client {
	byKey := make(map[string]*client.Client)

	for _, t := range tickets {
		if t.IsFeeEntry() {
			continue
		}
		key := client.Key(t.Name, t.Phone, t.AccountName)
		c, ok := byKey[key]
		if !ok {
			c = &client.Client{
				Name:        t.Name,
				Phone:       t.Phone,
				AccountName: t.AccountName,
			}
			byKey[key] = c
		}

		c.TicketCount++
		c.TotalSpent += t.TotalDue()

		if d := utils.ParseSheetDate(t.DepartingOn); utils.IsValidDate(d) && d.After(c.LastTravelAt) {
			c.LastTravelAt = d
			c.LastTravel = t.DepartingOn
		}
	}

	clients := make([]client.Client, 0, len(byKey))
	for _, c := range byKey {
		clients = append(clients, *c)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].Name < clients[j].Name })
	return clients
}

// BookingGroup is the identity-of-convenience grouping of booking rows.
type BookingGroup struct {
	Key      string            `json:"key"`
	PNR      string            `json:"pnr"`
	Bookings []booking.Booking `json:"bookings"`
	Deadline time.Time         `json:"deadline"`
}

// GroupBookings clusters rows that belong to one logical reservation. The
// group deadline is the earliest member deadline.
func GroupBookings(bookings []booking.Booking) []BookingGroup {
	byKey := make(map[string]*BookingGroup)
	var order []string

	for _, b := range bookings {
		key := b.GroupKey()
		g, ok := byKey[key]
		if !ok {
			g = &BookingGroup{Key: key, PNR: strings.ToUpper(strings.TrimSpace(b.PNR))}
			byKey[key] = g
			order = append(order, key)
		}
		g.Bookings = append(g.Bookings, b)

		if d := Deadline(b); utils.IsValidDate(d) {
			if !utils.IsValidDate(g.Deadline) || d.Before(g.Deadline) {
				g.Deadline = d
			}
		}
	}

	groups := make([]BookingGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, *byKey[key])
	}
	return groups
}

// Deadline combines a booking's enddate and endtime into one instant. The
// time cell uses a 12-hour clock: "12 AM" is hour 0, "12 PM" stays 12. An
// unparsable date yields the epoch sentinel; an unparsable time falls back
// to midnight.
func Deadline(b booking.Booking) time.Time {
	d := utils.ParseSheetDate(b.EndDate)
	if !utils.IsValidDate(d) {
		return utils.Epoch
	}
	hour, minute := parseClock(b.EndTime)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
}

func parseClock(value string) (hour, minute int) {
	value = strings.ToUpper(strings.TrimSpace(value))
	if value == "" {
		return 0, 0
	}

	pm := strings.HasSuffix(value, "PM")
	am := strings.HasSuffix(value, "AM")
	if pm || am {
		value = strings.TrimSpace(value[:len(value)-2])
	}

	hh, mm, _ := strings.Cut(value, ":")
	h, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil {
		return 0, 0
	}
	if mm != "" {
		if m, err := strconv.Atoi(strings.TrimSpace(mm)); err == nil {
			minute = m
		}
	}

	if pm && h != 12 {
		h += 12
	}
	if am && h == 12 {
		h = 0
	}
	if h < 0 || h > 23 || minute < 0 || minute > 59 {
		return 0, 0
	}
	return h, minute
}

// IsExpired reports whether an active booking's deadline has passed. A
// booking with an invalid deadline never auto-expires; it stays visible
// until an operator closes it.
func IsExpired(b booking.Booking, now time.Time) bool {
	if !b.IsActive() {
		return false
	}
	deadline := Deadline(b)
	if !utils.IsValidDate(deadline) {
		return false
	}
	return deadline.Before(now)
}

// ExpiredBookings filters the active bookings whose deadline has passed.
func ExpiredBookings(bookings []booking.Booking, now time.Time) []booking.Booking {
	var expired []booking.Booking
	for _, b := range bookings {
		if IsExpired(b, now) {
			expired = append(expired, b)
		}
	}
	return expired
}

// ActiveBookings filters rows with an empty remark.
func ActiveBookings(bookings []booking.Booking) []booking.Booking {
	var active []booking.Booking
	for _, b := range bookings {
		if b.IsActive() {
			active = append(active, b)
		}
	}
	return active
}
