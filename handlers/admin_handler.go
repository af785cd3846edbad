package handlers

import (
	"errors"

	"github.com/etuition/tutoria/database"
	"github.com/etuition/tutoria/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Moderation and reference-data management. All of these sit behind
// middleware.AdminRequired.

func setTeacherVerified(c *fiber.Ctx, verified bool) error {
	var teacher models.TeacherProfile
	if err := database.DB.First(&teacher, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Teacher not found."})
	}

	teacher.Verified = verified
	if err := database.DB.Save(&teacher).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update teacher"})
	}
	return c.JSON(fiber.Map{"id": teacher.ID, "verified": teacher.Verified})
}

func VerifyTeacher(c *fiber.Ctx) error {
	return setTeacherVerified(c, true)
}

func UnverifyTeacher(c *fiber.Ctx) error {
	return setTeacherVerified(c, false)
}

func setUserBanned(c *fiber.Ctx, banned bool) error {
	var user models.User
	if err := database.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "User not found."})
	}
	if user.IsAdmin {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Admin accounts cannot be banned."})
	}

	user.Banned = banned
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user"})
	}
	return c.JSON(fiber.Map{"id": user.ID, "banned": user.Banned})
}

func BanUser(c *fiber.Ctx) error {
	return setUserBanned(c, true)
}

func UnbanUser(c *fiber.Ctx) error {
	return setUserBanned(c, false)
}

// ValidateAcademicProfile marks a degree record as checked against its
// uploaded certificate.
func ValidateAcademicProfile(c *fiber.Ctx) error {
	var profile models.AcademicProfile
	if err := database.DB.First(&profile, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Academic profile not found."})
	}

	profile.Validated = true
	if err := database.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update academic profile"})
	}
	return c.JSON(profile)
}

func ValidateQualification(c *fiber.Ctx) error {
	var qualification models.Qualification
	if err := database.DB.First(&qualification, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Qualification not found."})
	}

	qualification.Validated = true
	if err := database.DB.Save(&qualification).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update qualification"})
	}
	return c.JSON(qualification)
}

type MediumRequest struct {
	Name string `json:"name" validate:"required"`
}

func CreateMedium(c *fiber.Ctx) error {
	var body MediumRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	medium := models.Medium{Name: body.Name}
	if err := database.DB.Create(&medium).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"detail": "A medium with this name already exists."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create medium"})
	}
	return c.Status(fiber.StatusCreated).JSON(medium)
}

func UpdateMedium(c *fiber.Ctx) error {
	var medium models.Medium
	if err := database.DB.First(&medium, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Medium not found."})
	}

	var body MediumRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	medium.Name = body.Name
	if err := database.DB.Save(&medium).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"detail": "A medium with this name already exists."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update medium"})
	}
	return c.JSON(medium)
}

func DeleteMedium(c *fiber.Ctx) error {
	result := database.DB.Delete(&models.Medium{}, "id = ?", c.Params("id"))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"detail": "Medium is still in use."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete medium"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Medium not found."})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type GradeRequest struct {
	Name      string `json:"name" validate:"required"`
	Sequence  uint   `json:"sequence" validate:"required"`
	MediumIDs []uint `json:"medium_list"`
}

func CreateGrade(c *fiber.Ctx) error {
	var body GradeRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	grade := models.Grade{Name: body.Name, Sequence: body.Sequence}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&grade).Error; err != nil {
			return err
		}
		if len(body.MediumIDs) == 0 {
			return nil
		}
		var mediums []*models.Medium
		if err := tx.Find(&mediums, body.MediumIDs).Error; err != nil {
			return err
		}
		return tx.Model(&grade).Association("Mediums").Replace(mediums)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"detail": "A grade with this name or sequence already exists."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create grade"})
	}
	return c.Status(fiber.StatusCreated).JSON(grade)
}

func UpdateGrade(c *fiber.Ctx) error {
	var grade models.Grade
	if err := database.DB.First(&grade, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Grade not found."})
	}

	var body GradeRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	grade.Name = body.Name
	grade.Sequence = body.Sequence
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&grade).Error; err != nil {
			return err
		}
		if body.MediumIDs == nil {
			return nil
		}
		var mediums []*models.Medium
		if err := tx.Find(&mediums, body.MediumIDs).Error; err != nil {
			return err
		}
		return tx.Model(&grade).Association("Mediums").Replace(mediums)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"detail": "A grade with this name or sequence already exists."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update grade"})
	}
	return c.JSON(grade)
}

func DeleteGrade(c *fiber.Ctx) error {
	var grade models.Grade
	if err := database.DB.First(&grade, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Grade not found."})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&grade).Association("Mediums").Clear(); err != nil {
			return err
		}
		return tx.Delete(&grade).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"detail": "Grade is still in use."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete grade"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type SubjectRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	SubjectCode *string `json:"subject_code"`
	GradeID     *uint   `json:"grade"`
}

func CreateSubject(c *fiber.Ctx) error {
	var body SubjectRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if body.GradeID != nil {
		var count int64
		database.DB.Model(&models.Grade{}).Where("id = ?", *body.GradeID).Count(&count)
		if count == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Grade not found."})
		}
	}

	subject := models.Subject{
		Name:        body.Name,
		Description: body.Description,
		SubjectCode: body.SubjectCode,
		GradeID:     body.GradeID,
	}
	if err := database.DB.Create(&subject).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"detail": "A subject with this name or code already exists."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create subject"})
	}
	return c.Status(fiber.StatusCreated).JSON(subject)
}

func UpdateSubject(c *fiber.Ctx) error {
	var subject models.Subject
	if err := database.DB.First(&subject, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Subject not found."})
	}

	var body SubjectRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if body.GradeID != nil {
		var count int64
		database.DB.Model(&models.Grade{}).Where("id = ?", *body.GradeID).Count(&count)
		if count == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Grade not found."})
		}
	}

	subject.Name = body.Name
	subject.Description = body.Description
	subject.SubjectCode = body.SubjectCode
	subject.GradeID = body.GradeID
	if err := database.DB.Save(&subject).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"detail": "A subject with this name or code already exists."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update subject"})
	}
	return c.JSON(subject)
}

func DeleteSubject(c *fiber.Ctx) error {
	result := database.DB.Delete(&models.Subject{}, "id = ?", c.Params("id"))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"detail": "Subject is still in use."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete subject"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Subject not found."})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListUsers supports the moderation dashboard. banned=true narrows to
// banned accounts.
func ListUsers(c *fiber.Ctx) error {
	query := database.DB.Order("id asc")
	if c.Query("banned") == "true" {
		query = query.Where("banned = ?", true)
	}

	var users []models.User
	query.Find(&users)
	return c.JSON(users)
}

func ListUnverifiedTeachers(c *fiber.Ctx) error {
	var teachers []models.TeacherProfile
	database.DB.Preload("User").
		Where("verified = ?", false).
		Order("created_at asc").
		Find(&teachers)
	return c.JSON(teachers)
}
