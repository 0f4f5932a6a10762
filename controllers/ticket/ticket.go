package ticket

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"travel-backoffice/logger"
	ticketModel "travel-backoffice/models/ticket"
	"travel-backoffice/services/derive"
	"travel-backoffice/services/mutation"
	"travel-backoffice/services/sheetdata"
	"travel-backoffice/types"
	ticketTypes "travel-backoffice/types/ticket"
)

// TicketController handles ticket-related HTTP requests.
type TicketController struct {
	Loader    *sheetdata.Loader
	Mutations *mutation.Coordinator
}

// NewTicketController creates a new ticket controller.
func NewTicketController(loader *sheetdata.Loader, mutations *mutation.Coordinator) *TicketController {
	return &TicketController{
		Loader:    loader,
		Mutations: mutations,
	}
}

// Index lists every ticket row.
func (tc *TicketController) Index(c *fiber.Ctx) error {
	tickets, err := tc.Loader.Tickets(c.Context())
	if err != nil {
		logger.Error("Failed to load tickets", err)
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Status:  fiber.StatusBadGateway,
			Message: "Failed to load tickets",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Tickets loaded",
		Data:    tickets,
	})
}

// Upcoming lists active tickets departing within the next 14 days.
func (tc *TicketController) Upcoming(c *fiber.Ctx) error {
	tickets, err := tc.Loader.Tickets(c.Context())
	if err != nil {
		logger.Error("Failed to load tickets", err)
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Status:  fiber.StatusBadGateway,
			Message: "Failed to load tickets",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Upcoming travel loaded",
		Data:    derive.Upcoming(tickets, time.Now()),
	})
}

// Store records a new ticket sale.
func (tc *TicketController) Store(c *fiber.Ctx) error {
	var req ticketTypes.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if req.Name == "" || req.BookingReference == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Name and booking reference are required",
			Data:    nil,
		})
	}

	if err := tc.Mutations.CreateTicket(c.Context(), req); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Status:  fiber.StatusBadGateway,
			Message: "Failed to save ticket",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Ticket recorded",
		Data:    nil,
	})
}

// UpdateByPNR rewrites all rows sharing a PNR, appending a fee row when the
// form carries a positive fee.
func (tc *TicketController) UpdateByPNR(c *fiber.Ctx) error {
	var req ticketTypes.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	req.PNR = c.Params("pnr")
	if req.PNR == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "PNR is required",
			Data:    nil,
		})
	}

	tickets, err := tc.Loader.Tickets(c.Context())
	if err != nil {
		logger.Error("Failed to load tickets", err)
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Status:  fiber.StatusBadGateway,
			Message: "Failed to load tickets",
			Data:    nil,
		})
	}

	if err := tc.Mutations.UpdateTicketsByPNR(c.Context(), tickets, req); err != nil {
		if err == mutation.ErrNoMatchingRows {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "No tickets found for PNR " + req.PNR,
				Data:    nil,
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Status:  fiber.StatusBadGateway,
			Message: "Failed to update tickets",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: fmt.Sprintf("Tickets for PNR %s updated", req.PNR),
		Data:    nil,
	})
}

// Cancel applies a full refund or partial cancellation to one row.
func (tc *TicketController) Cancel(c *fiber.Ctx) error {
	var req ticketTypes.CancelRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	if req.Mode != mutation.CancelFull && req.Mode != mutation.CancelPartial {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Mode must be 'full' or 'partial'",
			Data:    nil,
		})
	}

	target, resp := tc.findRow(c, req.RowIndex)
	if resp != nil {
		return resp(c)
	}

	if err := tc.Mutations.CancelTicket(c.Context(), target, req.Mode, req.CancellationFee); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Status:  fiber.StatusBadGateway,
			Message: "Failed to cancel ticket",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Ticket cancelled",
		Data:    nil,
	})
}

// VoidFee neutralizes a fee row.
func (tc *TicketController) VoidFee(c *fiber.Ctx) error {
	var req ticketTypes.VoidFeeRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	target, resp := tc.findRow(c, req.RowIndex)
	if resp != nil {
		return resp(c)
	}
	if !target.IsFeeEntry() {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Row is not a fee entry",
			Data:    nil,
		})
	}

	if err := tc.Mutations.VoidFeeRow(c.Context(), target); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Status:  fiber.StatusBadGateway,
			Message: "Failed to void fee row",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Fee row voided",
		Data:    nil,
	})
}

// findRow locates one ticket by its sheet row index.
func (tc *TicketController) findRow(c *fiber.Ctx, rowIndex int) (ticketModel.Ticket, func(*fiber.Ctx) error) {
	tickets, err := tc.Loader.Tickets(c.Context())
	if err != nil {
		logger.Error("Failed to load tickets", err)
		return ticketModel.Ticket{}, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
				Status:  fiber.StatusBadGateway,
				Message: "Failed to load tickets",
				Data:    nil,
			})
		}
	}

	for _, t := range tickets {
		if t.RowIndex == rowIndex {
			return t, nil
		}
	}
	return ticketModel.Ticket{}, func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Ticket row not found",
			Data:    nil,
		})
	}
}
