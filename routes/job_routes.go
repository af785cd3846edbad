package routes

import (
	"github.com/etuition/tutoria/handlers"
	"github.com/etuition/tutoria/middleware"
	"github.com/gofiber/fiber/v2"
)

func JobRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected(), middleware.NotBanned())

	jobs := api.Group("/jobs")
	jobs.Get("", handlers.ListMyJobPosts)
	jobs.Post("", handlers.CreateJobPost)
	jobs.Get("/open", handlers.ListOpenJobPosts)
	jobs.Get("/:jobId", handlers.GetJobPost)
	jobs.Put("/:jobId", handlers.UpdateJobPost)
	jobs.Post("/:jobId/close", handlers.CloseJobPost)
	jobs.Delete("/:jobId", handlers.DeleteJobPost)

	windows := jobs.Group("/:jobId/availability")
	windows.Get("", handlers.ListJobPostAvailability)
	windows.Post("", handlers.CreateJobPostAvailability)
	windows.Put("/:slotId", handlers.UpdateJobPostAvailability)
	windows.Delete("/:slotId", handlers.DeleteJobPostAvailability)

	jobs.Get("/:jobId/bids", handlers.ListJobBids)
	jobs.Post("/:jobId/bids", handlers.CreateBid)
	jobs.Post("/:jobId/bids/:bidId/accept", handlers.AcceptBid)
	jobs.Post("/:jobId/bids/:bidId/reject", handlers.RejectBid)

	bids := api.Group("/bids")
	bids.Get("", handlers.ListMyBids)
	bids.Post("/:bidId/close", handlers.CloseBid)
}
