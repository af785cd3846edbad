package handlers

import (
	"github.com/etuition/tutoria/database"
	"github.com/etuition/tutoria/utils"
	"github.com/gofiber/fiber/v2"
)

type SetLocationRequest struct {
	Location string `json:"location" validate:"required"`
	Update   bool   `json:"update,omitempty"`
}

const silentUpdateThresholdKm = 0.2

func GetLocation(c *fiber.Ctx) error {
	user := currentUser(c)
	if !user.HasLocation() {
		return c.JSON(fiber.Map{"location": nil})
	}
	return c.JSON(fiber.Map{
		"location": fiber.Map{
			"latitude":  *user.Latitude,
			"longitude": *user.Longitude,
		},
	})
}

// SetLocation stores the caller's coordinates. A move of 200 m or more from
// the stored point needs an explicit update=true confirmation; smaller
// moves are ignored.
func SetLocation(c *fiber.Ctx) error {
	user := currentUser(c)

	var req SetLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Location is required."})
	}

	point, err := utils.ParsePoint(req.Location)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if user.HasLocation() && !req.Update {
		previous := utils.Point{Latitude: *user.Latitude, Longitude: *user.Longitude}
		distance := utils.CalculateDistance(previous, point)
		if distance >= silentUpdateThresholdKm {
			return c.JSON(fiber.Map{
				"detail":          "Location update available. The new location is more than 200 meters away from the previous location.",
				"distance_km":     distance,
				"update_required": true,
			})
		}
		return c.JSON(fiber.Map{
			"detail": "Location don't need to be updated. The new location is within 200 meters of the previous location.",
		})
	}

	user.Latitude = &point.Latitude
	user.Longitude = &point.Longitude
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update location"})
	}

	return c.JSON(fiber.Map{"detail": "Location updated successfully."})
}
