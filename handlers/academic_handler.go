package handlers

import (
	"log"

	"github.com/etuition/tutoria/database"
	"github.com/etuition/tutoria/models"
	"github.com/etuition/tutoria/services"
	"github.com/etuition/tutoria/utils"
	"github.com/gofiber/fiber/v2"
)

type AcademicProfileRequest struct {
	Institution    *string `json:"institution" form:"institution"`
	Degree         *string `json:"degree" form:"degree"`
	GraduationYear *uint   `json:"graduation_year" form:"graduation_year"`
	Results        *string `json:"results" form:"results"`
}

type QualificationRequest struct {
	Organization *string `json:"organization" form:"organization"`
	Skill        *string `json:"skill" form:"skill"`
	Year         *uint   `json:"year" form:"year"`
	Results      *string `json:"results" form:"results"`
}

// attachCertificate validates and stores an optional multipart file under
// certificates/{username}/{label}. Returns nil, nil when no file was sent.
func attachCertificate(c *fiber.Ctx, username, label string) (*services.UploadedCertificate, error) {
	file, err := c.FormFile("certificates")
	if err != nil || file == nil {
		return nil, nil
	}
	if err := utils.ValidateCertificateFile(file); err != nil {
		return nil, err
	}
	return services.UploadCertificate(file, username, label)
}

func destroyCertificate(publicID *string) {
	if publicID == nil {
		return
	}
	if err := services.DeleteCertificate(*publicID); err != nil {
		log.Printf("🔥 Failed to delete certificate blob %s: %v", *publicID, err)
	}
}

func ListAcademicProfiles(c *fiber.Ctx) error {
	user := currentUser(c)
	teacher := teacherProfileFor(user.ID)
	if teacher == nil {
		return c.JSON([]models.AcademicProfile{})
	}

	var profiles []models.AcademicProfile
	database.DB.Where("teacher_id = ?", teacher.ID).Find(&profiles)
	return c.JSON(profiles)
}

func CreateAcademicProfile(c *fiber.Ctx) error {
	user := currentUser(c)
	teacher := teacherProfileFor(user.ID)
	if teacher == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Teacher profile does not exist. Please create a teacher profile first."})
	}

	var req AcademicProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if req.Institution == nil || req.Degree == nil || req.GraduationYear == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "institution, degree and graduation_year are required."})
	}

	profile := models.AcademicProfile{
		TeacherID:      teacher.ID,
		Institution:    *req.Institution,
		Degree:         *req.Degree,
		GraduationYear: *req.GraduationYear,
	}
	if req.Results != nil {
		profile.Results = *req.Results
	}

	uploaded, err := attachCertificate(c, user.Username, profile.Degree)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}
	if uploaded != nil {
		profile.CertificateURL = &uploaded.URL
		profile.CertificatePublicID = &uploaded.PublicID
	}

	if err := database.DB.Create(&profile).Error; err != nil {
		destroyCertificate(profile.CertificatePublicID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create academic profile"})
	}

	return c.Status(fiber.StatusCreated).JSON(profile)
}

func UpdateAcademicProfile(c *fiber.Ctx) error {
	user := currentUser(c)
	teacher := teacherProfileFor(user.ID)
	if teacher == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Teacher profile does not exist. Please create a teacher profile first."})
	}

	var profile models.AcademicProfile
	if err := database.DB.First(&profile, "id = ? AND teacher_id = ?", c.Params("profileId"), teacher.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Academic profile does not exist."})
	}

	var req AcademicProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}

	if req.Institution != nil {
		profile.Institution = *req.Institution
	}
	if req.Degree != nil {
		profile.Degree = *req.Degree
	}
	if req.GraduationYear != nil {
		profile.GraduationYear = *req.GraduationYear
	}
	if req.Results != nil {
		profile.Results = *req.Results
	}

	uploaded, err := attachCertificate(c, user.Username, profile.Degree)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}
	if uploaded != nil {
		destroyCertificate(profile.CertificatePublicID)
		profile.CertificateURL = &uploaded.URL
		profile.CertificatePublicID = &uploaded.PublicID
	}

	if err := database.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update academic profile"})
	}

	return c.JSON(profile)
}

// DeleteAcademicProfile removes the record and its stored certificate so
// no orphaned blob is left behind.
func DeleteAcademicProfile(c *fiber.Ctx) error {
	user := currentUser(c)
	teacher := teacherProfileFor(user.ID)
	if teacher == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Teacher profile does not exist. Please create a teacher profile first."})
	}

	var profile models.AcademicProfile
	if err := database.DB.First(&profile, "id = ? AND teacher_id = ?", c.Params("profileId"), teacher.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Academic profile does not exist."})
	}

	destroyCertificate(profile.CertificatePublicID)
	if err := database.DB.Delete(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete academic profile"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func ListQualifications(c *fiber.Ctx) error {
	user := currentUser(c)
	teacher := teacherProfileFor(user.ID)
	if teacher == nil {
		return c.JSON([]models.Qualification{})
	}

	var qualifications []models.Qualification
	database.DB.Where("teacher_id = ?", teacher.ID).Find(&qualifications)
	return c.JSON(qualifications)
}

func CreateQualification(c *fiber.Ctx) error {
	user := currentUser(c)
	teacher := teacherProfileFor(user.ID)
	if teacher == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Teacher profile does not exist. Please create a teacher profile first."})
	}

	var req QualificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if req.Skill == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "skill is required."})
	}

	qualification := models.Qualification{
		TeacherID: teacher.ID,
		Skill:     *req.Skill,
		Year:      req.Year,
		Results:   req.Results,
	}
	if req.Organization != nil {
		qualification.Organization = *req.Organization
	}

	uploaded, err := attachCertificate(c, user.Username, qualification.Skill)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}
	if uploaded != nil {
		qualification.CertificateURL = &uploaded.URL
		qualification.CertificatePublicID = &uploaded.PublicID
	}

	if err := database.DB.Create(&qualification).Error; err != nil {
		destroyCertificate(qualification.CertificatePublicID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create qualification"})
	}

	return c.Status(fiber.StatusCreated).JSON(qualification)
}

func UpdateQualification(c *fiber.Ctx) error {
	user := currentUser(c)
	teacher := teacherProfileFor(user.ID)
	if teacher == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Teacher profile does not exist. Please create a teacher profile first."})
	}

	var qualification models.Qualification
	if err := database.DB.First(&qualification, "id = ? AND teacher_id = ?", c.Params("qualificationId"), teacher.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Qualification does not exist."})
	}

	var req QualificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}

	if req.Organization != nil {
		qualification.Organization = *req.Organization
	}
	if req.Skill != nil {
		qualification.Skill = *req.Skill
	}
	if req.Year != nil {
		qualification.Year = req.Year
	}
	if req.Results != nil {
		qualification.Results = req.Results
	}

	uploaded, err := attachCertificate(c, user.Username, qualification.Skill)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}
	if uploaded != nil {
		destroyCertificate(qualification.CertificatePublicID)
		qualification.CertificateURL = &uploaded.URL
		qualification.CertificatePublicID = &uploaded.PublicID
	}

	if err := database.DB.Save(&qualification).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update qualification"})
	}

	return c.JSON(qualification)
}

func DeleteQualification(c *fiber.Ctx) error {
	user := currentUser(c)
	teacher := teacherProfileFor(user.ID)
	if teacher == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Teacher profile does not exist. Please create a teacher profile first."})
	}

	var qualification models.Qualification
	if err := database.DB.First(&qualification, "id = ? AND teacher_id = ?", c.Params("qualificationId"), teacher.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Qualification does not exist."})
	}

	destroyCertificate(qualification.CertificatePublicID)
	if err := database.DB.Delete(&qualification).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete qualification"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
