package routes

import (
	"github.com/etuition/tutoria/handlers"
	"github.com/etuition/tutoria/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.NotBanned(), middleware.AdminRequired())

	teachers := admin.Group("/teachers")
	teachers.Get("/unverified", handlers.ListUnverifiedTeachers)
	teachers.Post("/:id/verify", handlers.VerifyTeacher)
	teachers.Post("/:id/unverify", handlers.UnverifyTeacher)

	users := admin.Group("/users")
	users.Get("", handlers.ListUsers)
	users.Post("/:id/ban", handlers.BanUser)
	users.Post("/:id/unban", handlers.UnbanUser)

	admin.Post("/academic-profiles/:id/validate", handlers.ValidateAcademicProfile)
	admin.Post("/qualifications/:id/validate", handlers.ValidateQualification)

	admin.Post("/mediums", handlers.CreateMedium)
	admin.Put("/mediums/:id", handlers.UpdateMedium)
	admin.Delete("/mediums/:id", handlers.DeleteMedium)
	admin.Post("/grades", handlers.CreateGrade)
	admin.Put("/grades/:id", handlers.UpdateGrade)
	admin.Delete("/grades/:id", handlers.DeleteGrade)
	admin.Post("/subjects", handlers.CreateSubject)
	admin.Put("/subjects/:id", handlers.UpdateSubject)
	admin.Delete("/subjects/:id", handlers.DeleteSubject)
}
