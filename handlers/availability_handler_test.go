package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/etuition/tutoria/database"
	"github.com/etuition/tutoria/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAvailabilitySlots(t *testing.T) {
	app := setupApp(t)
	user, tutor := mustCreateTutor(t, "scheduler")
	token := tokenFor(t, user)

	resp, slots := doJSONList(t, app, "POST", "/api/v1/teachers/availability", token, []map[string]interface{}{
		{"days_of_week": "MON", "start_time": "09:00", "end_time": "12:00"},
		{"days_of_week": "WED", "start_time": "09:00", "end_time": "12:00"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Len(t, slots, 2)

	var count int64
	database.DB.Model(&models.Availability{}).Where("tutor_id = ?", tutor.ID).Count(&count)
	assert.Equal(t, int64(2), count)

	// The wrapped form works too.
	resp = doRaw(t, app, "POST", "/api/v1/teachers/availability", token, map[string]interface{}{
		"slots": []map[string]interface{}{
			{"days_of_week": "FRI", "start_time": "14:00", "end_time": "16:00"},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCreateAvailabilitySlotRejectsDuplicates(t *testing.T) {
	app := setupApp(t)
	user, _ := mustCreateTutor(t, "scheduler")
	token := tokenFor(t, user)

	slot := []map[string]interface{}{
		{"days_of_week": "MON", "start_time": "09:00", "end_time": "12:00"},
	}
	resp := doRaw(t, app, "POST", "/api/v1/teachers/availability", token, slot)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/api/v1/teachers/availability", token, slot)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "This availability slot already exists for this tutor.", body["detail"])

	// Another tutor can hold the identical slot.
	otherUser, _ := mustCreateTutor(t, "colleague")
	resp = doRaw(t, app, "POST", "/api/v1/teachers/availability", tokenFor(t, otherUser), slot)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCreateAvailabilitySlotValidation(t *testing.T) {
	app := setupApp(t)
	user, _ := mustCreateTutor(t, "scheduler")
	token := tokenFor(t, user)

	resp, body := doJSON(t, app, "POST", "/api/v1/teachers/availability", token, []map[string]interface{}{
		{"days_of_week": "MON", "start_time": "12:00", "end_time": "09:00"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "End time must be after the start time.", body["detail"])

	resp, _ = doJSON(t, app, "POST", "/api/v1/teachers/availability", token, []map[string]interface{}{
		{"days_of_week": "MONDAY", "start_time": "09:00", "end_time": "12:00"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/v1/teachers/availability", token, []map[string]interface{}{
		{"days_of_week": "MON", "start_time": "9am", "end_time": "12:00"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/v1/teachers/availability", token, []map[string]interface{}{
		{"days_of_week": "MON"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Nothing is written when one slot of the batch is invalid.
	resp, _ = doJSON(t, app, "POST", "/api/v1/teachers/availability", token, []map[string]interface{}{
		{"days_of_week": "MON", "start_time": "09:00", "end_time": "12:00"},
		{"days_of_week": "XXX", "start_time": "09:00", "end_time": "12:00"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var count int64
	database.DB.Model(&models.Availability{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateAvailabilityRequiresTeacherProfile(t *testing.T) {
	app := setupApp(t)
	user := mustCreateUser(t, "student")
	token := tokenFor(t, user)

	resp, body := doJSON(t, app, "POST", "/api/v1/teachers/availability", token, []map[string]interface{}{
		{"days_of_week": "MON", "start_time": "09:00", "end_time": "12:00"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["detail"], "Teacher profile does not exist")
}

func TestEditAvailabilitySlots(t *testing.T) {
	app := setupApp(t)
	user, tutor := mustCreateTutor(t, "scheduler")
	token := tokenFor(t, user)

	slot := models.Availability{TutorID: tutor.ID, DaysOfWeek: "MON", StartTime: "09:00", EndTime: "12:00"}
	require.NoError(t, database.DB.Create(&slot).Error)

	resp, body := doJSON(t, app, "PUT", "/api/v1/teachers/availability", token, []map[string]interface{}{
		{"id": slot.ID, "end_time": "13:00"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := body["updated_slots"].([]interface{})
	require.Len(t, updated, 1)
	assert.Equal(t, "13:00", updated[0].(map[string]interface{})["end_time"])

	// Mixed batch: one good update, one unknown id.
	resp, body = doJSON(t, app, "PUT", "/api/v1/teachers/availability", token, []map[string]interface{}{
		{"id": slot.ID, "start_time": "10:00"},
		{"id": 9999, "start_time": "10:00"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["updated_slots"], 1)
	assert.Len(t, body["errors"], 1)

	// Nothing updatable is a 400.
	resp, _ = doJSON(t, app, "PUT", "/api/v1/teachers/availability", token, []map[string]interface{}{
		{"id": 9999, "start_time": "10:00"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteAvailabilitySlot(t *testing.T) {
	app := setupApp(t)
	user, tutor := mustCreateTutor(t, "scheduler")
	token := tokenFor(t, user)

	slot := models.Availability{TutorID: tutor.ID, DaysOfWeek: "MON", StartTime: "09:00", EndTime: "12:00"}
	require.NoError(t, database.DB.Create(&slot).Error)

	// Another tutor cannot delete it.
	intruder, _ := mustCreateTutor(t, "intruder")
	resp := doRaw(t, app, "DELETE", fmt.Sprintf("/api/v1/teachers/availability/%d", slot.ID), tokenFor(t, intruder), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRaw(t, app, "DELETE", fmt.Sprintf("/api/v1/teachers/availability/%d", slot.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var count int64
	database.DB.Model(&models.Availability{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
