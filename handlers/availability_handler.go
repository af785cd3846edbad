package handlers

import (
	"errors"
	"fmt"

	"github.com/etuition/tutoria/database"
	"github.com/etuition/tutoria/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AvailabilitySlotRequest struct {
	ID         uint    `json:"id,omitempty"`
	DaysOfWeek *string `json:"days_of_week"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
}

type AvailabilityBulkRequest struct {
	Slots []AvailabilitySlotRequest `json:"slots"`
}

func parseSlotList(c *fiber.Ctx) []AvailabilitySlotRequest {
	var slots []AvailabilitySlotRequest
	if err := c.BodyParser(&slots); err == nil && len(slots) > 0 {
		return slots
	}
	var wrapped AvailabilityBulkRequest
	if err := c.BodyParser(&wrapped); err == nil {
		return wrapped.Slots
	}
	return nil
}

func validateSlotWindow(day, start, end string) error {
	if !models.ValidDay(day) {
		return fmt.Errorf("%q is not a valid day code", day)
	}
	if !models.ValidClock(start) || !models.ValidClock(end) {
		return errors.New("times must be in HH:MM format")
	}
	if start >= end {
		return errors.New("End time must be after the start time.")
	}
	return nil
}

// CreateAvailabilitySlots accepts a list of weekly slots for the caller's
// teacher profile. The whole batch is validated before anything is written.
func CreateAvailabilitySlots(c *fiber.Ctx) error {
	user := currentUser(c)
	teacher := teacherProfileFor(user.ID)
	if teacher == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Teacher profile does not exist. Please create a teacher profile first."})
	}

	slotsData := parseSlotList(c)
	if len(slotsData) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "A list of availability slots is required."})
	}

	newSlots := make([]models.Availability, 0, len(slotsData))
	for _, slot := range slotsData {
		if slot.DaysOfWeek == nil || slot.StartTime == nil || slot.EndTime == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "days_of_week, start_time and end_time are required for each slot."})
		}
		if err := validateSlotWindow(*slot.DaysOfWeek, *slot.StartTime, *slot.EndTime); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
		}

		var count int64
		database.DB.Model(&models.Availability{}).
			Where("tutor_id = ? AND days_of_week = ? AND start_time = ? AND end_time = ?",
				teacher.ID, *slot.DaysOfWeek, *slot.StartTime, *slot.EndTime).
			Count(&count)
		if count > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "This availability slot already exists for this tutor."})
		}

		newSlots = append(newSlots, models.Availability{
			TutorID:    teacher.ID,
			DaysOfWeek: *slot.DaysOfWeek,
			StartTime:  *slot.StartTime,
			EndTime:    *slot.EndTime,
		})
	}

	if err := database.DB.Create(&newSlots).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "This availability slot already exists for this tutor."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create availability slots"})
	}

	return c.Status(fiber.StatusCreated).JSON(newSlots)
}

// EditAvailabilitySlots applies partial updates per slot id, reporting
// successes and failures side by side.
func EditAvailabilitySlots(c *fiber.Ctx) error {
	user := currentUser(c)
	teacher := teacherProfileFor(user.ID)
	if teacher == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Teacher profile does not exist. Please create a teacher profile first."})
	}

	slotsData := parseSlotList(c)
	if len(slotsData) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "A list of availability slots is required."})
	}

	updatedSlots := make([]models.Availability, 0, len(slotsData))
	slotErrors := make([]fiber.Map, 0)

	for _, slotData := range slotsData {
		if slotData.ID == 0 {
			slotErrors = append(slotErrors, fiber.Map{"detail": "Slot 'id' is required.", "slot": slotData})
			continue
		}

		var slot models.Availability
		if err := database.DB.First(&slot, "id = ? AND tutor_id = ?", slotData.ID, teacher.ID).Error; err != nil {
			slotErrors = append(slotErrors, fiber.Map{
				"detail": fmt.Sprintf("Availability slot with id %d does not exist.", slotData.ID),
				"slot":   slotData,
			})
			continue
		}

		if slotData.DaysOfWeek != nil {
			slot.DaysOfWeek = *slotData.DaysOfWeek
		}
		if slotData.StartTime != nil {
			slot.StartTime = *slotData.StartTime
		}
		if slotData.EndTime != nil {
			slot.EndTime = *slotData.EndTime
		}
		if err := validateSlotWindow(slot.DaysOfWeek, slot.StartTime, slot.EndTime); err != nil {
			slotErrors = append(slotErrors, fiber.Map{"slot": slotData, "errors": err.Error()})
			continue
		}

		if err := database.DB.Save(&slot).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				slotErrors = append(slotErrors, fiber.Map{"slot": slotData, "errors": "This availability slot already exists for this tutor."})
			} else {
				slotErrors = append(slotErrors, fiber.Map{"slot": slotData, "errors": "Failed to update slot"})
			}
			continue
		}
		updatedSlots = append(updatedSlots, slot)
	}

	response := fiber.Map{"updated_slots": updatedSlots}
	if len(slotErrors) > 0 {
		response["errors"] = slotErrors
	}
	status := fiber.StatusOK
	if len(updatedSlots) == 0 {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(response)
}

func GetMyAvailability(c *fiber.Ctx) error {
	user := currentUser(c)
	teacher := teacherProfileFor(user.ID)
	if teacher == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Teacher profile does not exist. Please create a teacher profile first."})
	}

	var slots []models.Availability
	database.DB.Where("tutor_id = ?", teacher.ID).
		Order("days_of_week asc, start_time asc").
		Find(&slots)

	return c.JSON(slots)
}

func DeleteAvailabilitySlot(c *fiber.Ctx) error {
	user := currentUser(c)
	teacher := teacherProfileFor(user.ID)
	if teacher == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Teacher profile does not exist. Please create a teacher profile first."})
	}

	slotID := c.Params("slotId")
	var slot models.Availability
	if err := database.DB.First(&slot, "id = ? AND tutor_id = ?", slotID, teacher.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Availability slot not found or you do not have permission to delete it."})
	}

	database.DB.Delete(&slot)
	return c.SendStatus(fiber.StatusNoContent)
}
