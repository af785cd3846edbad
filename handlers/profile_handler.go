package handlers

import (
	"errors"

	"github.com/etuition/tutoria/database"
	"github.com/etuition/tutoria/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

func GetProfile(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

func UpdateProfile(c *fiber.Ctx) error {
	user := currentUser(c)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}

	if err := database.DB.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Username or email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(user)
}

// GetDashboard returns the caller's contact-request counters, creating the
// record lazily for accounts that have never sent or received one.
func GetDashboard(c *fiber.Ctx) error {
	user := currentUser(c)

	var dashboard models.UserDashboard
	if err := database.DB.Where("user_id = ?", user.ID).First(&dashboard).Error; err != nil {
		dashboard = models.UserDashboard{UserID: user.ID}
	}

	return c.JSON(dashboard)
}
