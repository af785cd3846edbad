package routes

import (
	"github.com/etuition/tutoria/handlers"
	"github.com/etuition/tutoria/middleware"
	"github.com/gofiber/fiber/v2"
)

func TeacherRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	teachers := api.Group("/teachers", middleware.Protected(), middleware.NotBanned())
	teachers.Post("/profile", handlers.CreateTeacherProfile)
	teachers.Put("/profile", handlers.UpdateTeacherProfile)
	teachers.Get("/me", handlers.GetMyFullProfile)

	availability := teachers.Group("/availability")
	availability.Get("", handlers.GetMyAvailability)
	availability.Post("", handlers.CreateAvailabilitySlots)
	availability.Put("", handlers.EditAvailabilitySlots)
	availability.Delete("/:slotId", handlers.DeleteAvailabilitySlot)

	academics := teachers.Group("/academic-profiles")
	academics.Get("", handlers.ListAcademicProfiles)
	academics.Post("", handlers.CreateAcademicProfile)
	academics.Put("/:profileId", handlers.UpdateAcademicProfile)
	academics.Delete("/:profileId", handlers.DeleteAcademicProfile)

	qualifications := teachers.Group("/qualifications")
	qualifications.Get("", handlers.ListQualifications)
	qualifications.Post("", handlers.CreateQualification)
	qualifications.Put("/:qualificationId", handlers.UpdateQualification)
	qualifications.Delete("/:qualificationId", handlers.DeleteQualification)
}
