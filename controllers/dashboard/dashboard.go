package dashboard

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"travel-backoffice/logger"
	"travel-backoffice/services/balance"
	"travel-backoffice/services/derive"
	"travel-backoffice/services/sheetdata"
	"travel-backoffice/types"
	"travel-backoffice/utils"
)

// DashboardController serves the derived aggregates the frontend renders:
// the current-month balance, unpaid PNR groups, near-term departures, client
// records and the audit history.
type DashboardController struct {
	Loader *sheetdata.Loader
}

// NewDashboardController creates a new dashboard controller.
func NewDashboardController(loader *sheetdata.Loader) *DashboardController {
	return &DashboardController{Loader: loader}
}

// Summary returns the dashboard aggregates for the current month.
func (dc *DashboardController) Summary(c *fiber.Ctx) error {
	tickets, err := dc.Loader.Tickets(c.Context())
	if err != nil {
		return loadFailure(c, "tickets", err)
	}
	settlements, err := dc.Loader.Settlements(c.Context())
	if err != nil {
		return loadFailure(c, "settlements", err)
	}
	bookings, err := dc.Loader.Bookings(c.Context())
	if err != nil {
		return loadFailure(c, "bookings", err)
	}

	nowT := time.Now()
	start, end := balance.MonthPeriod(nowT)
	unpaid := derive.UnpaidGroups(tickets)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Dashboard loaded",
		Data: fiber.Map{
			"balance":         balance.Compute(tickets, settlements, start, end),
			"unpaid_groups":   unpaid,
			"travel_widget":   derive.Widget(tickets, nowT),
			"active_bookings": len(derive.ActiveBookings(bookings)),
			"ticket_count":    len(tickets),
		},
	})
}

// Balance computes the settlement balance for an arbitrary period. The
// start/end query parameters accept the same formats as sheet date cells;
// they default to the current month.
func (dc *DashboardController) Balance(c *fiber.Ctx) error {
	tickets, err := dc.Loader.Tickets(c.Context())
	if err != nil {
		return loadFailure(c, "tickets", err)
	}
	settlements, err := dc.Loader.Settlements(c.Context())
	if err != nil {
		return loadFailure(c, "settlements", err)
	}

	start, end := balance.MonthPeriod(time.Now())
	if raw := c.Query("start"); raw != "" {
		parsed := utils.ParseSheetDate(raw)
		if !utils.IsValidDate(parsed) {
			return badDate(c, "start")
		}
		start = parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed := utils.ParseSheetDate(raw)
		if !utils.IsValidDate(parsed) {
			return badDate(c, "end")
		}
		end = parsed
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Balance computed",
		Data:    balance.Compute(tickets, settlements, start, end),
	})
}

// Clients returns the derived client records.
func (dc *DashboardController) Clients(c *fiber.Ctx) error {
	tickets, err := dc.Loader.Tickets(c.Context())
	if err != nil {
		return loadFailure(c, "tickets", err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Clients loaded",
		Data:    derive.Clients(tickets),
	})
}

// History lists the audit trail, newest first.
func (dc *DashboardController) History(c *fiber.Ctx) error {
	entries, err := dc.Loader.History(c.Context())
	if err != nil {
		return loadFailure(c, "history", err)
	}

	// Newest entries sit at the bottom of the sheet.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "History loaded",
		Data:    entries,
	})
}

func loadFailure(c *fiber.Ctx, dataset string, err error) error {
	logger.Error("Failed to load "+dataset, err)
	return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
		Status:  fiber.StatusBadGateway,
		Message: "Failed to load " + dataset,
		Data:    nil,
	})
}

func badDate(c *fiber.Ctx, field string) error {
	return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
		Status:  fiber.StatusBadRequest,
		Message: "Invalid " + field + " date",
		Data:    nil,
	})
}
