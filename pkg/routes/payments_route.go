package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sajankarki/sewabazar-backend/app/controllers"
	"github.com/sajankarki/sewabazar-backend/pkg/middleware"
)

func RegisterPaymentRoutes(app *fiber.App) {
	app.Post("/payments/checkout", middleware.JWTProtected(), controllers.StartCheckout)

	// Hit by the gateway's browser redirect, so no JWT here.
	app.Get("/payments/verify", controllers.VerifyPayment)
	app.Get("/payments/status/:transaction_uuid", controllers.PaymentStatus)
}
