package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"travel-backoffice/logger"
	"travel-backoffice/routes"
	"travel-backoffice/sheets"
	"travel-backoffice/state"
)

func main() {
	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
	})
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
		fmt.Println("Error loading .env file", err)
	}

	store, err := buildStore()
	if err != nil {
		logger.Error("Failed to initialize the sheet store", err)
		return
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("FRONTEND_URL"),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	routes.SetupRoutes(app, store, state.New())

	appHost := os.Getenv("APP_HOST")
	appPort := os.Getenv("APP_PORT")
	logger.Success("Server is running on ip: " + appHost + " port: " + appPort)
	if err := app.Listen(appHost + ":" + appPort); err != nil {
		logger.Error("Server stopped", err)
	}
}

// buildStore selects the sheet backend: the hosted values API by default, a
// local workbook when SHEETS_BACKEND=xlsx.
func buildStore() (sheets.Store, error) {
	if os.Getenv("SHEETS_BACKEND") == "xlsx" {
		path := os.Getenv("SHEETS_XLSX_PATH")
		if path == "" {
			return nil, fmt.Errorf("SHEETS_XLSX_PATH is not set")
		}
		return sheets.NewXLSXStore(path)
	}

	baseURL := os.Getenv("SHEETS_BASE_URL")
	spreadsheetID := os.Getenv("SPREADSHEET_ID")
	if baseURL == "" || spreadsheetID == "" {
		return nil, fmt.Errorf("SHEETS_BASE_URL and SPREADSHEET_ID must be set")
	}
	return sheets.NewHTTPStore(baseURL, spreadsheetID, os.Getenv("SHEETS_API_KEY")), nil
}
