package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sajankarki/sewabazar-backend/app/controllers"
	"github.com/sajankarki/sewabazar-backend/pkg/middleware"
)

func RegisterUserRoutes(app *fiber.App) {
	// Public routes
	app.Post("/signup", controllers.UserSignUp)
	app.Post("/signin", controllers.UserSignIn)

	// Protected routes
	user := app.Group("/users", middleware.JWTProtected())
	user.Get("/profile", controllers.UserProfile)
	user.Put("/profile", controllers.UpdateUser)
	user.Post("/promote", controllers.PromoteProvider)
}
