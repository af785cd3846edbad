package handlers

import (
	"errors"

	"github.com/etuition/tutoria/database"
	"github.com/etuition/tutoria/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReviewRequest struct {
	ContactRequestID uint   `json:"contact_request" validate:"required"`
	Rating           int    `json:"rating" validate:"required,min=1,max=5"`
	Comment          string `json:"comment"`
}

// CreateReview records a student's rating of a teacher they reached
// through a contact request. One review per request; the teacher's
// average rating is recomputed in the same transaction.
func CreateReview(c *fiber.Ctx) error {
	user := currentUser(c)

	var body ReviewRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var request models.ContactRequest
	if err := database.DB.First(&request, "id = ? AND student_id = ?", body.ContactRequestID, user.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Contact request not found."})
	}
	if request.Status != models.ContactStatusAccepted && request.Status != models.ContactStatusContacted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "You can only review a teacher after they accepted your request."})
	}

	var existing int64
	database.DB.Model(&models.TeacherReview{}).
		Where("contact_request_id = ?", request.ID).
		Count(&existing)
	if existing > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "You have already reviewed this contact request."})
	}

	review := models.TeacherReview{
		ContactRequestID: request.ID,
		StudentID:        user.ID,
		TeacherID:        request.TeacherID,
		Rating:           body.Rating,
		Comment:          body.Comment,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return recomputeAvgRating(tx, request.TeacherID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "You have already reviewed this contact request."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create review"})
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

func recomputeAvgRating(tx *gorm.DB, teacherID uint) error {
	var avg float32
	err := tx.Model(&models.TeacherReview{}).
		Where("teacher_id = ?", teacherID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	if err != nil {
		return err
	}
	return tx.Model(&models.TeacherProfile{}).
		Where("id = ?", teacherID).
		Update("avg_rating", avg).Error
}

// ListTeacherReviews is public, keyed by teacher profile id.
func ListTeacherReviews(c *fiber.Ctx) error {
	var teacher models.TeacherProfile
	if err := database.DB.First(&teacher, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Teacher not found."})
	}

	var reviews []models.TeacherReview
	database.DB.Where("teacher_id = ?", teacher.ID).
		Order("created_at desc").
		Find(&reviews)

	return c.JSON(fiber.Map{
		"avg_rating": teacher.AvgRating,
		"reviews":    reviews,
	})
}

func ListMyReviews(c *fiber.Ctx) error {
	user := currentUser(c)

	var reviews []models.TeacherReview
	database.DB.Where("student_id = ?", user.ID).
		Order("created_at desc").
		Find(&reviews)

	return c.JSON(reviews)
}
