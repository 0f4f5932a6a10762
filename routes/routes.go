package routes

import (
	"github.com/gofiber/fiber/v2"

	"travel-backoffice/controllers/auth"
	"travel-backoffice/controllers/booking"
	"travel-backoffice/controllers/dashboard"
	"travel-backoffice/controllers/settlement"
	"travel-backoffice/controllers/ticket"
	"travel-backoffice/middleware"
	"travel-backoffice/notify"
	"travel-backoffice/services/audit"
	"travel-backoffice/services/mutation"
	"travel-backoffice/services/sheetdata"
	"travel-backoffice/sheets"
	"travel-backoffice/state"
)

func SetupRoutes(app *fiber.App, store sheets.Store, appState *state.AppState) {
	cache := sheets.NewCache(sheets.DefaultTTL)
	loader := sheetdata.NewLoader(store, cache)
	notifier := notify.LogNotifier{}
	auditor := audit.NewAppender(store, notifier)
	coordinator := mutation.NewCoordinator(store, cache, notifier, auditor)

	authController := auth.NewAuthController()
	dashboardController := dashboard.NewDashboardController(loader)
	ticketController := ticket.NewTicketController(loader, coordinator)
	bookingController := booking.NewBookingController(loader, coordinator, appState)
	settlementController := settlement.NewSettlementController(loader, coordinator)

	// Start the async audit appender goroutine
	go auditor.ProcessEntries()

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/login", authController.Login)

	protected := api.Use(middleware.IsAuthenticated())

	/*=============================================================================
	| Dashboard Routes
	===============================================================================*/
	protected.Get("/dashboard", dashboardController.Summary)
	protected.Get("/balance", dashboardController.Balance)
	protected.Get("/clients", dashboardController.Clients)
	protected.Get("/history", dashboardController.History)

	/*=============================================================================
	| Ticket Routes
	===============================================================================*/
	ticketGroup := protected.Group("/tickets")
	ticketGroup.Get("/", ticketController.Index)
	ticketGroup.Get("/upcoming", ticketController.Upcoming)
	ticketGroup.Post("/", ticketController.Store)
	ticketGroup.Put("/pnr/:pnr", ticketController.UpdateByPNR)
	ticketGroup.Post("/cancel", ticketController.Cancel)
	ticketGroup.Post("/void-fee", ticketController.VoidFee)

	/*=============================================================================
	| Booking Routes
	===============================================================================*/
	bookingGroup := protected.Group("/bookings")
	bookingGroup.Get("/", bookingController.Index)
	bookingGroup.Post("/", bookingController.Store)
	bookingGroup.Post("/status", bookingController.UpdateStatus)

	/*=============================================================================
	| Settlement Routes
	===============================================================================*/
	settlementGroup := protected.Group("/settlements")
	settlementGroup.Get("/", settlementController.Index)
	settlementGroup.Post("/", settlementController.Store)
}
