package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etuition/tutoria/database"
	"github.com/etuition/tutoria/middleware"
	"github.com/etuition/tutoria/models"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "password123"

// setupApp wires a fresh in-memory database and the full route surface
// for one test. Routes are registered here directly; the routes package
// mounts the same handlers in production.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Medium{},
		&models.Grade{},
		&models.Subject{},
		&models.TeacherProfile{},
		&models.Availability{},
		&models.AcademicProfile{},
		&models.Qualification{},
		&models.JobPost{},
		&models.JobPostAvailability{},
		&models.Bid{},
		&models.ContactRequest{},
		&models.TeacherReview{},
		&models.UserDashboard{},
	))
	database.DB = db

	app := fiber.New()
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", RegisterUser)
	auth.Post("/login", LoginUser)
	auth.Post("/refresh", RefreshToken)
	auth.Post("/google", GoogleLogin)

	api.Get("/mediums", ListMediums)
	api.Get("/grades", ListGrades)
	api.Get("/subjects", ListSubjects)
	api.Get("/teachers", FilterTeachers)
	api.Get("/teachers/:teacherId/profile", GetTeacherPublicProfile)
	api.Get("/teachers/:teacherId/availability", GetTeacherAvailability)
	api.Get("/teachers/:id/reviews", ListTeacherReviews)

	private := app.Group("/api/v1", middleware.Protected(), middleware.NotBanned())

	profile := private.Group("/profile/me")
	profile.Get("", GetProfile)
	profile.Put("", UpdateProfile)
	profile.Get("/location", GetLocation)
	profile.Put("/location", SetLocation)
	profile.Get("/dashboard", GetDashboard)

	teachers := private.Group("/teachers")
	teachers.Post("/profile", CreateTeacherProfile)
	teachers.Put("/profile", UpdateTeacherProfile)
	teachers.Get("/me", GetMyFullProfile)
	teachers.Get("/availability", GetMyAvailability)
	teachers.Post("/availability", CreateAvailabilitySlots)
	teachers.Put("/availability", EditAvailabilitySlots)
	teachers.Delete("/availability/:slotId", DeleteAvailabilitySlot)
	teachers.Get("/academic-profiles", ListAcademicProfiles)
	teachers.Post("/academic-profiles", CreateAcademicProfile)
	teachers.Put("/academic-profiles/:profileId", UpdateAcademicProfile)
	teachers.Delete("/academic-profiles/:profileId", DeleteAcademicProfile)
	teachers.Get("/qualifications", ListQualifications)
	teachers.Post("/qualifications", CreateQualification)
	teachers.Put("/qualifications/:qualificationId", UpdateQualification)
	teachers.Delete("/qualifications/:qualificationId", DeleteQualification)

	jobs := private.Group("/jobs")
	jobs.Get("", ListMyJobPosts)
	jobs.Post("", CreateJobPost)
	jobs.Get("/open", ListOpenJobPosts)
	jobs.Get("/:jobId", GetJobPost)
	jobs.Put("/:jobId", UpdateJobPost)
	jobs.Post("/:jobId/close", CloseJobPost)
	jobs.Delete("/:jobId", DeleteJobPost)
	jobs.Get("/:jobId/availability", ListJobPostAvailability)
	jobs.Post("/:jobId/availability", CreateJobPostAvailability)
	jobs.Put("/:jobId/availability/:slotId", UpdateJobPostAvailability)
	jobs.Delete("/:jobId/availability/:slotId", DeleteJobPostAvailability)
	jobs.Get("/:jobId/bids", ListJobBids)
	jobs.Post("/:jobId/bids", CreateBid)
	jobs.Post("/:jobId/bids/:bidId/accept", AcceptBid)
	jobs.Post("/:jobId/bids/:bidId/reject", RejectBid)

	bids := private.Group("/bids")
	bids.Get("", ListMyBids)
	bids.Post("/:bidId/close", CloseBid)

	requests := private.Group("/contact-requests")
	requests.Post("", CreateContactRequest)
	requests.Get("/sent", ListSentRequests)
	requests.Get("/received", ListReceivedRequests)
	requests.Post("/:id/accept", AcceptContactRequest)
	requests.Post("/:id/reject", RejectContactRequest)
	requests.Post("/:id/contacted", MarkRequestContacted)

	reviews := private.Group("/reviews")
	reviews.Post("", CreateReview)
	reviews.Get("/mine", ListMyReviews)

	admin := private.Group("/admin", middleware.AdminRequired())
	admin.Post("/teachers/:id/verify", VerifyTeacher)
	admin.Post("/users/:id/ban", BanUser)
	admin.Post("/users/:id/unban", UnbanUser)
	admin.Post("/academic-profiles/:id/validate", ValidateAcademicProfile)
	admin.Post("/qualifications/:id/validate", ValidateQualification)
	admin.Post("/mediums", CreateMedium)
	admin.Put("/mediums/:id", UpdateMedium)
	admin.Delete("/mediums/:id", DeleteMedium)
	admin.Post("/grades", CreateGrade)
	admin.Put("/grades/:id", UpdateGrade)
	admin.Delete("/grades/:id", DeleteGrade)
	admin.Post("/subjects", CreateSubject)
	admin.Put("/subjects/:id", UpdateSubject)
	admin.Delete("/subjects/:id", DeleteSubject)

	return app
}

func mustCreateUser(t *testing.T, username string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username:  username,
		FirstName: "Test",
		LastName:  username,
		Email:     username + "@example.com",
		Password:  string(hash),
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func mustCreateTutor(t *testing.T, username string) (models.User, models.TeacherProfile) {
	t.Helper()
	user := mustCreateUser(t, username)

	lat, lon := 23.8103, 90.4125
	user.Latitude = &lat
	user.Longitude = &lon
	user.IsTeacher = true
	require.NoError(t, database.DB.Save(&user).Error)

	tutor := models.TeacherProfile{UserID: user.ID}
	require.NoError(t, database.DB.Create(&tutor).Error)
	return user, tutor
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := issueAccessToken(user)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp := doRaw(t, app, method, path, token, body)
	var decoded map[string]interface{}
	decodeBody(t, resp, &decoded)
	return resp, decoded
}

func doJSONList(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, []interface{}) {
	t.Helper()
	resp := doRaw(t, app, method, path, token, body)
	var decoded []interface{}
	decodeBody(t, resp, &decoded)
	return resp, decoded
}

func doRaw(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) == 0 {
		return
	}
	require.NoError(t, json.Unmarshal(raw, out), string(raw))
}
