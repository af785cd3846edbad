package routes

import (
	"github.com/etuition/tutoria/handlers"
	"github.com/gofiber/fiber/v2"
)

// PublicRoutes covers the browse surface no login is needed for:
// reference lookups, tutor search, and public tutor pages.
func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/mediums", handlers.ListMediums)
	api.Get("/grades", handlers.ListGrades)
	api.Get("/subjects", handlers.ListSubjects)

	teachers := api.Group("/teachers")
	teachers.Get("", handlers.FilterTeachers)
	teachers.Get("/:teacherId/profile", handlers.GetTeacherPublicProfile)
	teachers.Get("/:teacherId/availability", handlers.GetTeacherAvailability)

	api.Get("/teachers/:id/reviews", handlers.ListTeacherReviews)
}
