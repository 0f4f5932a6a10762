package auth

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"travel-backoffice/logger"
	"travel-backoffice/types"
	authTypes "travel-backoffice/types/auth"
)

// AuthController issues operator tokens. The back office has a single
// operator account configured through the environment.
type AuthController struct{}

func NewAuthController() *AuthController {
	return &AuthController{}
}

// Login exchanges the operator credentials for a signed bearer token.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Username and password are required",
			Data:    nil,
		})
	}

	if req.Username != os.Getenv("OPERATOR_USERNAME") || req.Password != os.Getenv("OPERATOR_PASSWORD") {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid credentials",
			Data:    nil,
		})
	}

	claims := jwt.MapClaims{
		"username": req.Username,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		logger.Error("Failed to sign token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to issue token",
			Data:    nil,
		})
	}

	logger.Success("Operator logged in: " + req.Username)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Login successful",
		Token:   signed,
	})
}
