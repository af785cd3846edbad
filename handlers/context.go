package handlers

import (
	"github.com/etuition/tutoria/database"
	"github.com/etuition/tutoria/models"
	"github.com/gofiber/fiber/v2"
)

// currentUser returns the user loaded by the NotBanned middleware.
func currentUser(c *fiber.Ctx) models.User {
	return c.Locals("currentUser").(models.User)
}

// teacherProfileFor looks up the caller's teacher profile; nil when the
// user has not created one.
func teacherProfileFor(userID uint) *models.TeacherProfile {
	var teacher models.TeacherProfile
	if err := database.DB.Where("user_id = ?", userID).First(&teacher).Error; err != nil {
		return nil
	}
	return &teacher
}
