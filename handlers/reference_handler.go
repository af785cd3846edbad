package handlers

import (
	"github.com/etuition/tutoria/database"
	"github.com/etuition/tutoria/models"
	"github.com/gofiber/fiber/v2"
)

// Public lookup endpoints driving the signup and search forms.

func ListMediums(c *fiber.Ctx) error {
	var mediums []models.Medium
	database.DB.Order("name asc").Find(&mediums)
	return c.JSON(mediums)
}

// ListGrades returns grades in curriculum order, optionally narrowed to
// the grades taught in a medium.
func ListGrades(c *fiber.Ctx) error {
	query := database.DB.Order("sequence asc")
	if mediumID := c.Query("medium_id"); mediumID != "" {
		query = query.
			Joins("JOIN grade_mediums ON grade_mediums.grade_id = grades.id").
			Where("grade_mediums.medium_id = ?", mediumID)
	}

	var grades []models.Grade
	query.Find(&grades)
	return c.JSON(grades)
}

func ListSubjects(c *fiber.Ctx) error {
	query := database.DB.Order("name asc")
	if gradeID := c.Query("grade_id"); gradeID != "" {
		query = query.Where("grade_id = ?", gradeID)
	}

	var subjects []models.Subject
	query.Find(&subjects)
	return c.JSON(subjects)
}
