package handlers

import (
	"fmt"

	config "github.com/etuition/tutoria/configs"
	"github.com/etuition/tutoria/database"
	"github.com/etuition/tutoria/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ContactRequestBody struct {
	TeacherID uint   `json:"teacher" validate:"required"`
	Message   string `json:"message"`
}

func dashboardFor(tx *gorm.DB, userID uint) (*models.UserDashboard, error) {
	var board models.UserDashboard
	err := tx.Where(models.UserDashboard{UserID: userID}).FirstOrCreate(&board).Error
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// contactResponse serializes a request for either party. The teacher's
// phone number appears only while the request is accepted.
func contactResponse(req *models.ContactRequest) fiber.Map {
	out := fiber.Map{
		"id":         req.ID,
		"student":    req.StudentID,
		"teacher":    req.TeacherID,
		"message":    req.Message,
		"status":     req.Status,
		"created_at": req.CreatedAt,
		"updated_at": req.UpdatedAt,
	}
	if req.Status == models.ContactStatusAccepted {
		out["teacher_phone"] = req.Teacher.Phone
	}
	return out
}

func contactResponses(reqs []models.ContactRequest) []fiber.Map {
	out := make([]fiber.Map, 0, len(reqs))
	for i := range reqs {
		out = append(out, contactResponse(&reqs[i]))
	}
	return out
}

// CreateContactRequest opens a pending request from the caller to a
// teacher. Each user may hold a limited number of pending requests at
// a time, and both parties' dashboard counters move with the request.
func CreateContactRequest(c *fiber.Ctx) error {
	user := currentUser(c)

	var body ContactRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var teacher models.TeacherProfile
	if err := database.DB.First(&teacher, "id = ?", body.TeacherID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Teacher not found."})
	}
	if teacher.UserID == user.ID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "You cannot send a contact request to yourself."})
	}

	var duplicate int64
	database.DB.Model(&models.ContactRequest{}).
		Where("student_id = ? AND teacher_id = ? AND status = ?", user.ID, teacher.ID, models.ContactStatusPending).
		Count(&duplicate)
	if duplicate > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "You already have a pending request to this teacher."})
	}

	limit := config.MaxPendingRequests()
	var pending int64
	database.DB.Model(&models.ContactRequest{}).
		Where("student_id = ? AND status = ?", user.ID, models.ContactStatusPending).
		Count(&pending)
	if pending >= int64(limit) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": fmt.Sprintf("You cannot have more than %d pending contact requests.", limit),
		})
	}

	request := models.ContactRequest{
		StudentID: user.ID,
		TeacherID: teacher.ID,
		Message:   body.Message,
		Status:    models.ContactStatusPending,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&request).Error; err != nil {
			return err
		}
		sender, err := dashboardFor(tx, user.ID)
		if err != nil {
			return err
		}
		sender.RequestsSent++
		sender.PendingRequests++
		if err := tx.Save(sender).Error; err != nil {
			return err
		}
		receiver, err := dashboardFor(tx, teacher.UserID)
		if err != nil {
			return err
		}
		receiver.RequestsReceived++
		receiver.PendingRequests++
		return tx.Save(receiver).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create contact request"})
	}

	return c.Status(fiber.StatusCreated).JSON(contactResponse(&request))
}

func ListSentRequests(c *fiber.Ctx) error {
	user := currentUser(c)

	var requests []models.ContactRequest
	database.DB.Preload("Teacher").
		Where("student_id = ?", user.ID).
		Order("created_at desc").
		Find(&requests)

	return c.JSON(contactResponses(requests))
}

func ListReceivedRequests(c *fiber.Ctx) error {
	user := currentUser(c)
	tutor := teacherProfileFor(user.ID)
	if tutor == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Teacher profile does not exist. Please create a teacher profile first."})
	}

	var requests []models.ContactRequest
	database.DB.Preload("Teacher").
		Where("teacher_id = ?", tutor.ID).
		Order("created_at desc").
		Find(&requests)

	return c.JSON(contactResponses(requests))
}

// decideContactRequest moves a pending request to accepted or rejected
// and releases both parties' pending counters.
func decideContactRequest(c *fiber.Ctx, decision string) error {
	user := currentUser(c)
	tutor := teacherProfileFor(user.ID)
	if tutor == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Teacher profile does not exist. Please create a teacher profile first."})
	}

	var request models.ContactRequest
	if err := database.DB.Preload("Teacher").First(&request, "id = ? AND teacher_id = ?", c.Params("id"), tutor.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Contact request not found."})
	}
	if request.Status != models.ContactStatusPending {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Only pending requests can be accepted or rejected."})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		request.Status = decision
		if err := tx.Save(&request).Error; err != nil {
			return err
		}
		for _, userID := range []uint{request.StudentID, user.ID} {
			board, err := dashboardFor(tx, userID)
			if err != nil {
				return err
			}
			if board.PendingRequests > 0 {
				board.PendingRequests--
			}
			if err := tx.Save(board).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update contact request"})
	}

	return c.JSON(contactResponse(&request))
}

func AcceptContactRequest(c *fiber.Ctx) error {
	return decideContactRequest(c, models.ContactStatusAccepted)
}

func RejectContactRequest(c *fiber.Ctx) error {
	return decideContactRequest(c, models.ContactStatusRejected)
}

// MarkRequestContacted lets the student close the loop on an accepted
// request. The teacher's phone is no longer revealed afterwards.
func MarkRequestContacted(c *fiber.Ctx) error {
	user := currentUser(c)

	var request models.ContactRequest
	if err := database.DB.First(&request, "id = ? AND student_id = ?", c.Params("id"), user.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Contact request not found."})
	}
	if request.Status != models.ContactStatusAccepted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Only accepted requests can be marked as contacted."})
	}

	request.Status = models.ContactStatusContacted
	if err := database.DB.Save(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update contact request"})
	}
	return c.JSON(contactResponse(&request))
}
