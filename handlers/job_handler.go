package handlers

import (
	"fmt"

	config "github.com/etuition/tutoria/configs"
	"github.com/etuition/tutoria/database"
	"github.com/etuition/tutoria/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type JobPostRequest struct {
	Title      *string `json:"title"`
	Details    *string `json:"details"`
	Salary     *uint   `json:"salary"`
	GradeID    *uint   `json:"grade"`
	MediumID   *uint   `json:"medium"`
	SubjectIDs []uint  `json:"subject_list"`
}

type JobWindowRequest struct {
	DaysOfWeek *string `json:"days_of_week"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
}

func ownedJobPost(c *fiber.Ctx, param string) (*models.JobPost, error) {
	user := currentUser(c)
	var post models.JobPost
	err := database.DB.Preload("Subjects").Preload("Availabilities").
		First(&post, "id = ? AND posted_by_id = ?", c.Params(param), user.ID).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func ListMyJobPosts(c *fiber.Ctx) error {
	user := currentUser(c)

	var posts []models.JobPost
	database.DB.Preload("Subjects").Preload("Availabilities").
		Where("posted_by_id = ?", user.ID).
		Order("created_at desc").
		Find(&posts)

	return c.JSON(posts)
}

func GetJobPost(c *fiber.Ctx) error {
	post, err := ownedJobPost(c, "jobId")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Job post not found."})
	}
	return c.JSON(post)
}

// CreateJobPost enforces the ceiling on simultaneously open posts before
// writing anything.
func CreateJobPost(c *fiber.Ctx) error {
	user := currentUser(c)

	var req JobPostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if req.Title == nil || req.GradeID == nil || req.MediumID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "title, grade and medium are required."})
	}

	maxOpen := config.MaxOpenJobPosts()
	var openCount int64
	database.DB.Model(&models.JobPost{}).
		Where("posted_by_id = ? AND status = ?", user.ID, models.JobStatusOpen).
		Count(&openCount)
	if openCount >= int64(maxOpen) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": fmt.Sprintf("You cannot have more than %d open job posts.", maxOpen),
		})
	}

	var grade models.Grade
	if err := database.DB.First(&grade, "id = ?", *req.GradeID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Grade not found."})
	}
	var medium models.Medium
	if err := database.DB.First(&medium, "id = ?", *req.MediumID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Medium not found."})
	}

	post := models.JobPost{
		PostedByID: user.ID,
		Title:      *req.Title,
		GradeID:    *req.GradeID,
		MediumID:   *req.MediumID,
		Status:     models.JobStatusOpen,
	}
	if req.Details != nil {
		post.Details = *req.Details
	}
	if req.Salary != nil {
		post.Salary = *req.Salary
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		if len(req.SubjectIDs) > 0 {
			var subjects []*models.Subject
			if err := tx.Find(&subjects, req.SubjectIDs).Error; err != nil {
				return err
			}
			if err := tx.Model(&post).Association("Subjects").Replace(subjects); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create job post"})
	}

	database.DB.Preload("Subjects").Preload("Availabilities").First(&post, post.ID)
	return c.Status(fiber.StatusCreated).JSON(post)
}

func UpdateJobPost(c *fiber.Ctx) error {
	post, err := ownedJobPost(c, "jobId")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Job post not found."})
	}

	var req JobPostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Details != nil {
		post.Details = *req.Details
	}
	if req.Salary != nil {
		post.Salary = *req.Salary
	}
	if req.GradeID != nil {
		post.GradeID = *req.GradeID
	}
	if req.MediumID != nil {
		post.MediumID = *req.MediumID
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(post).Error; err != nil {
			return err
		}
		if req.SubjectIDs != nil {
			var subjects []*models.Subject
			if err := tx.Find(&subjects, req.SubjectIDs).Error; err != nil {
				return err
			}
			if err := tx.Model(post).Association("Subjects").Replace(subjects); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update job post"})
	}

	database.DB.Preload("Subjects").Preload("Availabilities").First(post, post.ID)
	return c.JSON(post)
}

func CloseJobPost(c *fiber.Ctx) error {
	post, err := ownedJobPost(c, "jobId")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Job post not found."})
	}
	if post.Status == models.JobStatusClosed {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Job post is already closed."})
	}

	post.Status = models.JobStatusClosed
	if err := database.DB.Save(post).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to close job post"})
	}

	return c.JSON(post)
}

func DeleteJobPost(c *fiber.Ctx) error {
	post, err := ownedJobPost(c, "jobId")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Job post not found."})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_post_id = ?", post.ID).Delete(&models.JobPostAvailability{}).Error; err != nil {
			return err
		}
		if err := tx.Model(post).Association("Subjects").Clear(); err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete job post"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func ListJobPostAvailability(c *fiber.Ctx) error {
	post, err := ownedJobPost(c, "jobId")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Job post not found."})
	}

	var windows []models.JobPostAvailability
	database.DB.Where("job_post_id = ?", post.ID).Find(&windows)
	return c.JSON(windows)
}

func CreateJobPostAvailability(c *fiber.Ctx) error {
	post, err := ownedJobPost(c, "jobId")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Job post not found."})
	}

	var req JobWindowRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if req.DaysOfWeek == nil || req.StartTime == nil || req.EndTime == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "days_of_week, start_time and end_time are required."})
	}
	if err := validateSlotWindow(*req.DaysOfWeek, *req.StartTime, *req.EndTime); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}

	window := models.JobPostAvailability{
		JobPostID:  post.ID,
		DaysOfWeek: *req.DaysOfWeek,
		StartTime:  *req.StartTime,
		EndTime:    *req.EndTime,
	}
	if err := database.DB.Create(&window).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create job post availability"})
	}

	return c.Status(fiber.StatusCreated).JSON(window)
}

func UpdateJobPostAvailability(c *fiber.Ctx) error {
	post, err := ownedJobPost(c, "jobId")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Job post not found."})
	}

	var window models.JobPostAvailability
	if err := database.DB.First(&window, "id = ? AND job_post_id = ?", c.Params("slotId"), post.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Job post availability not found."})
	}

	var req JobWindowRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.DaysOfWeek != nil {
		window.DaysOfWeek = *req.DaysOfWeek
	}
	if req.StartTime != nil {
		window.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		window.EndTime = *req.EndTime
	}
	if err := validateSlotWindow(window.DaysOfWeek, window.StartTime, window.EndTime); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}

	if err := database.DB.Save(&window).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update job post availability"})
	}
	return c.JSON(window)
}

func DeleteJobPostAvailability(c *fiber.Ctx) error {
	post, err := ownedJobPost(c, "jobId")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Job post not found."})
	}

	var window models.JobPostAvailability
	if err := database.DB.First(&window, "id = ? AND job_post_id = ?", c.Params("slotId"), post.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Job post availability not found."})
	}

	database.DB.Delete(&window)
	return c.SendStatus(fiber.StatusNoContent)
}

// ListOpenJobPosts is the tutor-facing feed of open posts.
func ListOpenJobPosts(c *fiber.Ctx) error {
	query := database.DB.Preload("Subjects").Preload("Availabilities").
		Where("status = ?", models.JobStatusOpen)

	if gradeID := c.Query("grade_id"); gradeID != "" {
		query = query.Where("grade_id = ?", gradeID)
	}
	if mediumID := c.Query("medium_id"); mediumID != "" {
		query = query.Where("medium_id = ?", mediumID)
	}

	var posts []models.JobPost
	if err := query.Order("created_at desc").Find(&posts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve job posts"})
	}
	return c.JSON(posts)
}
