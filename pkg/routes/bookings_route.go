package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sajankarki/sewabazar-backend/app/controllers"
	"github.com/sajankarki/sewabazar-backend/pkg/middleware"
)

func RegisterBookingRoutes(app *fiber.App) {
	bookings := app.Group("/bookings", middleware.JWTProtected())
	bookings.Post("/", controllers.CreateBooking)
	bookings.Get("/", controllers.ListUserBookings)
	bookings.Get("/provider", controllers.ListProviderBookings)
	bookings.Get("/:id", controllers.GetBookingByID)
	bookings.Put("/:id/accept", controllers.AcceptBooking)
	bookings.Put("/:id/reject", controllers.RejectBooking)
	bookings.Put("/:id/complete", controllers.CompleteBooking)
	bookings.Put("/:id/cancel", controllers.CancelBooking)
}
