package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sajankarki/sewabazar-backend/app/controllers"
	"github.com/sajankarki/sewabazar-backend/pkg/middleware"
)

func RegisterServiceRoutes(app *fiber.App) {
	app.Get("/services", controllers.ListServices)
	app.Get("/services/:id", controllers.GetServiceByID)
	app.Post("/services", middleware.JWTProtected(), controllers.CreateService)
}
