package routes

import (
	"github.com/etuition/tutoria/handlers"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)
	auth.Post("/refresh", handlers.RefreshToken)
	auth.Post("/google", handlers.GoogleLogin)
}
