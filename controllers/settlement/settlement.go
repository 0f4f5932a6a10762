package settlement

import (
	"github.com/gofiber/fiber/v2"

	"travel-backoffice/logger"
	"travel-backoffice/services/mutation"
	"travel-backoffice/services/sheetdata"
	"travel-backoffice/types"
	settlementTypes "travel-backoffice/types/settlement"
)

// SettlementController handles settlement-related HTTP requests.
type SettlementController struct {
	Loader    *sheetdata.Loader
	Mutations *mutation.Coordinator
}

// NewSettlementController creates a new settlement controller.
func NewSettlementController(loader *sheetdata.Loader, mutations *mutation.Coordinator) *SettlementController {
	return &SettlementController{
		Loader:    loader,
		Mutations: mutations,
	}
}

// Index lists every settlement row.
func (sc *SettlementController) Index(c *fiber.Ctx) error {
	settlements, err := sc.Loader.Settlements(c.Context())
	if err != nil {
		logger.Error("Failed to load settlements", err)
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Status:  fiber.StatusBadGateway,
			Message: "Failed to load settlements",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Settlements loaded",
		Data:    settlements,
	})
}

// Store records one payment to the financial backer.
func (sc *SettlementController) Store(c *fiber.Ctx) error {
	var req settlementTypes.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if req.AmountPaid <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Amount paid must be positive",
			Data:    nil,
		})
	}

	if err := sc.Mutations.CreateSettlement(c.Context(), req); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Status:  fiber.StatusBadGateway,
			Message: "Failed to save settlement",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Settlement recorded",
		Data:    nil,
	})
}
