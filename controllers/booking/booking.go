package booking

import (
	"github.com/gofiber/fiber/v2"

	"travel-backoffice/logger"
	bookingModel "travel-backoffice/models/booking"
	"travel-backoffice/services/derive"
	"travel-backoffice/services/mutation"
	"travel-backoffice/services/sheetdata"
	"travel-backoffice/state"
	"travel-backoffice/types"
	bookingTypes "travel-backoffice/types/booking"
)

// BookingController handles booking-related HTTP requests.
type BookingController struct {
	Loader    *sheetdata.Loader
	Mutations *mutation.Coordinator
	State     *state.AppState
}

// NewBookingController creates a new booking controller.
func NewBookingController(loader *sheetdata.Loader, mutations *mutation.Coordinator, appState *state.AppState) *BookingController {
	return &BookingController{
		Loader:    loader,
		Mutations: mutations,
		State:     appState,
	}
}

// Index lists active bookings and their groups. Every load first runs the
// expiry sweep; a failed sweep is logged and retried on the next load.
func (bc *BookingController) Index(c *fiber.Ctx) error {
	bookings, err := bc.Loader.Bookings(c.Context())
	if err != nil {
		logger.Error("Failed to load bookings", err)
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Status:  fiber.StatusBadGateway,
			Message: "Failed to load bookings",
			Data:    nil,
		})
	}

	if err := bc.Mutations.ExpireBookings(c.Context(), bookings); err != nil {
		logger.Error("Booking expiry sweep failed", err)
	} else {
		// The sweep may have closed rows; reload so the response reflects it.
		if refreshed, err := bc.Loader.Bookings(c.Context()); err == nil {
			bookings = refreshed
		}
	}

	active := derive.ActiveBookings(bookings)
	bc.State.SetActiveBookings(active)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bookings loaded",
		Data: fiber.Map{
			"active": active,
			"groups": derive.GroupBookings(active),
		},
	})
}

// Store records a new booking request.
func (bc *BookingController) Store(c *fiber.Ctx) error {
	var req bookingTypes.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if req.Name == "" || req.Departure == "" || req.Destination == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Name, departure and destination are required",
			Data:    nil,
		})
	}

	if err := bc.Mutations.CreateBooking(c.Context(), req); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Status:  fiber.StatusBadGateway,
			Message: "Failed to save booking",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Booking recorded",
		Data:    nil,
	})
}

// UpdateStatus moves an active booking to complete or cancel. The in-memory
// active list is updated optimistically and rolled back if the write fails.
func (bc *BookingController) UpdateStatus(c *fiber.Ctx) error {
	var req bookingTypes.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	status := bookingModel.BookingStatus(req.Status)
	if !status.IsValid() || !status.IsUserDriven() {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Status must be 'complete' or 'cancel'",
			Data:    nil,
		})
	}

	var target *bookingModel.Booking
	for _, b := range bc.State.ActiveBookings() {
		if b.RowIndex == req.RowIndex {
			target = &b
			break
		}
	}
	if target == nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Active booking not found",
			Data:    nil,
		})
	}

	if err := bc.Mutations.UpdateBookingStatus(c.Context(), bc.State, *target, status); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Status:  fiber.StatusBadGateway,
			Message: "Failed to update booking status",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking marked " + status.String(),
		Data:    bc.State.ActiveBookings(),
	})
}
