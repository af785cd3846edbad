package routes

import (
	"github.com/etuition/tutoria/handlers"
	"github.com/etuition/tutoria/middleware"
	"github.com/gofiber/fiber/v2"
)

func ContactRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected(), middleware.NotBanned())

	requests := api.Group("/contact-requests")
	requests.Post("", handlers.CreateContactRequest)
	requests.Get("/sent", handlers.ListSentRequests)
	requests.Get("/received", handlers.ListReceivedRequests)
	requests.Post("/:id/accept", handlers.AcceptContactRequest)
	requests.Post("/:id/reject", handlers.RejectContactRequest)
	requests.Post("/:id/contacted", handlers.MarkRequestContacted)

	reviews := api.Group("/reviews")
	reviews.Post("", handlers.CreateReview)
	reviews.Get("/mine", handlers.ListMyReviews)
}
