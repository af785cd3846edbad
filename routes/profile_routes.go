package routes

import (
	"github.com/etuition/tutoria/handlers"
	"github.com/etuition/tutoria/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile/me", middleware.Protected(), middleware.NotBanned())
	profile.Get("", handlers.GetProfile)
	profile.Put("", handlers.UpdateProfile)
	profile.Get("/location", handlers.GetLocation)
	profile.Put("/location", handlers.SetLocation)
	profile.Get("/dashboard", handlers.GetDashboard)
}
