package handlers

import (
	"sort"
	"strconv"

	"github.com/etuition/tutoria/database"
	"github.com/etuition/tutoria/models"
	"github.com/etuition/tutoria/services"
	"github.com/etuition/tutoria/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TeacherProfileRequest struct {
	Bio               *string `json:"bio"`
	Phone             *string `json:"phone"`
	MinSalary         *uint   `json:"min_salary"`
	ExperienceYears   *uint   `json:"experience_years"`
	Gender            *string `json:"gender" validate:"omitempty,oneof=male female any"`
	TeachingMode      *string `json:"teaching_mode" validate:"omitempty,oneof=online in_person batch_online batch_in_person both"`
	PreferredDistance *uint   `json:"preferred_distance"`
	SubjectIDs        []uint  `json:"subject_list"`
	GradeIDs          []uint  `json:"grade_list"`
	MediumIDs         []uint  `json:"medium_list"`
}

func teacherProfileResponse(teacher models.TeacherProfile) fiber.Map {
	subjects := make([]fiber.Map, 0, len(teacher.Subjects))
	for _, s := range teacher.Subjects {
		subjects = append(subjects, fiber.Map{"id": s.ID, "name": s.Name})
	}
	grades := make([]fiber.Map, 0, len(teacher.Grades))
	for _, g := range teacher.Grades {
		grades = append(grades, fiber.Map{"id": g.ID, "name": g.Name})
	}
	mediums := make([]fiber.Map, 0, len(teacher.Mediums))
	for _, m := range teacher.Mediums {
		mediums = append(mediums, fiber.Map{"id": m.ID, "name": m.Name})
	}

	return fiber.Map{
		"id":                 teacher.ID,
		"user":               teacher.UserID,
		"name":               teacher.User.FullName(),
		"verified":           teacher.Verified,
		"bio":                teacher.Bio,
		"min_salary":         teacher.MinSalary,
		"experience_years":   teacher.ExperienceYears,
		"gender":             teacher.Gender,
		"teaching_mode":      teacher.TeachingMode,
		"preferred_distance": teacher.PreferredDistance,
		"avg_rating":         teacher.AvgRating,
		"subject_list":       subjects,
		"grade_list":         grades,
		"medium_list":        mediums,
		"availability":       teacher.Availabilities,
	}
}

func applyTeacherAssociations(tx *gorm.DB, teacher *models.TeacherProfile, req TeacherProfileRequest) error {
	if req.SubjectIDs != nil {
		var subjects []*models.Subject
		if err := tx.Find(&subjects, req.SubjectIDs).Error; err != nil {
			return err
		}
		if err := tx.Model(teacher).Association("Subjects").Replace(subjects); err != nil {
			return err
		}
	}
	if req.GradeIDs != nil {
		var grades []*models.Grade
		if err := tx.Find(&grades, req.GradeIDs).Error; err != nil {
			return err
		}
		if err := tx.Model(teacher).Association("Grades").Replace(grades); err != nil {
			return err
		}
	}
	if req.MediumIDs != nil {
		var mediums []*models.Medium
		if err := tx.Find(&mediums, req.MediumIDs).Error; err != nil {
			return err
		}
		if err := tx.Model(teacher).Association("Mediums").Replace(mediums); err != nil {
			return err
		}
	}
	return nil
}

func applyTeacherFields(teacher *models.TeacherProfile, req TeacherProfileRequest) {
	if req.Bio != nil {
		teacher.Bio = req.Bio
	}
	if req.Phone != nil {
		teacher.Phone = req.Phone
	}
	if req.MinSalary != nil {
		teacher.MinSalary = *req.MinSalary
	}
	if req.ExperienceYears != nil {
		teacher.ExperienceYears = *req.ExperienceYears
	}
	if req.Gender != nil {
		teacher.Gender = *req.Gender
	}
	if req.TeachingMode != nil {
		teacher.TeachingMode = *req.TeachingMode
	}
	if req.PreferredDistance != nil {
		teacher.PreferredDistance = *req.PreferredDistance
	}
}

func CreateTeacherProfile(c *fiber.Ctx) error {
	user := currentUser(c)

	if teacherProfileFor(user.ID) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Teacher profile already exists."})
	}
	if !user.HasLocation() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "User must update their location before creating a teacher profile."})
	}

	var req TeacherProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	teacher := models.TeacherProfile{UserID: user.ID}
	applyTeacherFields(&teacher, req)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&teacher).Error; err != nil {
			return err
		}
		if err := applyTeacherAssociations(tx, &teacher, req); err != nil {
			return err
		}
		user.IsTeacher = true
		return tx.Save(&user).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create teacher profile"})
	}

	database.DB.Preload("User").Preload("Subjects").Preload("Grades").Preload("Mediums").First(&teacher, teacher.ID)
	return c.Status(fiber.StatusCreated).JSON(teacherProfileResponse(teacher))
}

func UpdateTeacherProfile(c *fiber.Ctx) error {
	user := currentUser(c)

	teacher := teacherProfileFor(user.ID)
	if teacher == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Teacher profile does not exist."})
	}

	var req TeacherProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	applyTeacherFields(teacher, req)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(teacher).Error; err != nil {
			return err
		}
		return applyTeacherAssociations(tx, teacher, req)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update teacher profile"})
	}

	database.DB.Preload("User").Preload("Subjects").Preload("Grades").Preload("Mediums").First(teacher, teacher.ID)
	return c.JSON(teacherProfileResponse(*teacher))
}

// GetMyFullProfile bundles the teacher profile with its credentials and
// the availability grouped by shared time frames.
func GetMyFullProfile(c *fiber.Ctx) error {
	user := currentUser(c)

	var teacher models.TeacherProfile
	err := database.DB.Preload("User").Preload("Subjects").Preload("Grades").Preload("Mediums").
		Where("user_id = ?", user.ID).First(&teacher).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Teacher profile does not exist."})
	}

	var academicProfiles []models.AcademicProfile
	database.DB.Where("teacher_id = ?", teacher.ID).Find(&academicProfiles)

	var qualifications []models.Qualification
	database.DB.Where("teacher_id = ?", teacher.ID).Find(&qualifications)

	var slots []models.Availability
	database.DB.Where("tutor_id = ?", teacher.ID).Order("start_time asc").Find(&slots)

	return c.JSON(fiber.Map{
		"teacher_profile":        teacherProfileResponse(teacher),
		"academic_profiles":      academicProfiles,
		"qualifications":         qualifications,
		"scheduled_availability": services.GroupAvailability(slots),
	})
}

func GetTeacherPublicProfile(c *fiber.Ctx) error {
	teacherID := c.Params("teacherId")

	var teacher models.TeacherProfile
	err := database.DB.Preload("User").Preload("Subjects").Preload("Grades").Preload("Mediums").
		First(&teacher, "id = ?", teacherID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Teacher profile does not exist."})
	}

	return c.JSON(teacherProfileResponse(teacher))
}

func GetTeacherAvailability(c *fiber.Ctx) error {
	teacherID := c.Params("teacherId")

	var slots []models.Availability
	database.DB.Where("tutor_id = ?", teacherID).
		Order("days_of_week asc, start_time asc").
		Find(&slots)

	return c.JSON(slots)
}

// FilterTeachers is the tutor search: reference-data filters, an optional
// availability window (the slot must fully contain it), and optional
// proximity ranking against a "lat,lon" location parameter.
func FilterTeachers(c *fiber.Ctx) error {
	query := database.DB.Model(&models.TeacherProfile{}).
		Preload("User").Preload("Subjects").Preload("Grades").Preload("Mediums")

	if mediumID := c.Query("medium_id"); mediumID != "" {
		query = query.Joins("JOIN teacher_mediums ON teacher_mediums.teacher_profile_id = teacher_profiles.id").
			Where("teacher_mediums.medium_id = ?", mediumID)
	}
	if gradeID := c.Query("grade_id"); gradeID != "" {
		query = query.Joins("JOIN teacher_grades ON teacher_grades.teacher_profile_id = teacher_profiles.id").
			Where("teacher_grades.grade_id = ?", gradeID)
	}
	if subjectID := c.Query("subject_id"); subjectID != "" {
		query = query.Joins("JOIN teacher_subjects ON teacher_subjects.teacher_profile_id = teacher_profiles.id").
			Where("teacher_subjects.subject_id = ?", subjectID)
	}
	if gender := c.Query("gender"); gender != "" {
		query = query.Where("gender = ?", gender)
	}
	if mode := c.Query("teaching_mode"); mode != "" {
		query = query.Where("teaching_mode = ?", mode)
	}
	if maxSalary := c.Query("max_salary"); maxSalary != "" {
		query = query.Where("min_salary <= ?", maxSalary)
	}
	if c.Query("verified") == "true" {
		query = query.Where("verified = ?", true)
	}

	day := c.Query("day")
	start := c.Query("start_time")
	end := c.Query("end_time")
	if day != "" && start != "" && end != "" {
		if !models.ValidDay(day) || !models.ValidClock(start) || !models.ValidClock(end) || start >= end {
			return c.JSON([]fiber.Map{})
		}
		query = query.Where("teacher_profiles.id IN (?)", services.AvailableTutorIDs(database.DB, day, start, end))
	}

	var teachers []models.TeacherProfile
	if err := query.Distinct("teacher_profiles.*").Find(&teachers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve teachers"})
	}

	results := make([]fiber.Map, 0, len(teachers))

	location := c.Query("location")
	if location == "" {
		for _, teacher := range teachers {
			results = append(results, teacherProfileResponse(teacher))
		}
		return c.JSON(results)
	}

	searcher, err := utils.ParsePoint(location)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var maxDistance float64
	if raw := c.Query("max_distance"); raw != "" {
		maxDistance, err = strconv.ParseFloat(raw, 64)
		if err != nil || maxDistance < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "max_distance must be a non-negative number"})
		}
	}

	type rankedTeacher struct {
		teacher  models.TeacherProfile
		distance float64
	}
	ranked := make([]rankedTeacher, 0, len(teachers))
	for _, teacher := range teachers {
		if !teacher.User.HasLocation() {
			continue
		}
		distance := utils.CalculateDistance(searcher, utils.Point{
			Latitude:  *teacher.User.Latitude,
			Longitude: *teacher.User.Longitude,
		})
		if maxDistance > 0 && distance > maxDistance {
			continue
		}
		if teacher.PreferredDistance > 0 && distance > float64(teacher.PreferredDistance) {
			continue
		}
		ranked = append(ranked, rankedTeacher{teacher: teacher, distance: distance})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].distance < ranked[j].distance })

	for _, r := range ranked {
		entry := teacherProfileResponse(r.teacher)
		entry["distance_km"] = r.distance
		results = append(results, entry)
	}
	return c.JSON(results)
}
