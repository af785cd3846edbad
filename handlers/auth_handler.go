package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	config "github.com/etuition/tutoria/configs"
	"github.com/etuition/tutoria/database"
	"github.com/etuition/tutoria/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

var validate = validator.New()

// verifyGoogleIDToken is swappable in tests; production verification goes
// through Google's certificate endpoints.
var verifyGoogleIDToken = func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
	return idtoken.Validate(ctx, token, audience)
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

func issueAccessToken(user models.User) (string, error) {
	minutes := config.ConfigInt("ACCESS_TOKEN_MINUTES", 60)
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"email":      user.Email,
		"is_teacher": user.IsTeacher,
		"is_admin":   user.IsAdmin,
		"banned":     user.Banned,
		"exp":        time.Now().Add(time.Duration(minutes) * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Config("JWT_SECRET")))
}

func issueRefreshToken(user models.User) (string, error) {
	hours := config.ConfigInt("REFRESH_TOKEN_HOURS", 168)
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"token_type": "refresh",
		"exp":        time.Now().Add(time.Duration(hours) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Config("JWT_SECRET")))
}

func RegisterUser(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	newUser := models.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     strings.ToLower(req.Email),
		Password:  string(hashedPassword),
	}
	if err := database.DB.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Username or email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":         newUser.ID,
		"username":   newUser.Username,
		"email":      newUser.Email,
		"is_teacher": newUser.IsTeacher,
		"created_at": newUser.CreatedAt,
	})
}

func LoginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	result := database.DB.Where("username = ?", req.Username).First(&user)
	if result.Error != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid username or password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid username or password"})
	}

	if user.Banned {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "This account is banned."})
	}

	access, err := issueAccessToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}
	refresh, err := issueRefreshToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{
		"access":     access,
		"refresh":    refresh,
		"user_id":    user.ID,
		"email":      user.Email,
		"is_teacher": user.IsTeacher,
		"banned":     user.Banned,
	})
}

func RefreshToken(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	token, err := jwt.Parse(req.Refresh, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired refresh token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["token_type"] != "refresh" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired refresh token"})
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user associated with this token."})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", uint(userID)).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user associated with this token."})
	}
	if user.Banned {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "This account is banned."})
	}

	access, err := issueAccessToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{
		"access":     access,
		"is_teacher": user.IsTeacher,
		"banned":     user.Banned,
	})
}

// GoogleLogin exchanges a Google ID token carried in the Authorization
// header for a local token pair, creating the account on first sight.
func GoogleLogin(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing Google ID token"})
	}
	rawToken := strings.TrimPrefix(authHeader, "Bearer ")

	payload, err := verifyGoogleIDToken(c.Context(), rawToken, config.Config("GOOGLE_CLIENT_ID"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired Google token"})
	}

	verified, _ := payload.Claims["email_verified"].(bool)
	if !verified {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Email not verified"})
	}
	email, _ := payload.Claims["email"].(string)
	email = strings.ToLower(email)
	if email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Email not verified"})
	}

	var user models.User
	err = database.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		givenName, _ := payload.Claims["given_name"].(string)
		familyName, _ := payload.Claims["family_name"].(string)

		username := strings.Split(email, "@")[0]
		var clashes int64
		database.DB.Model(&models.User{}).Where("username = ?", username).Count(&clashes)
		if clashes > 0 {
			username = fmt.Sprintf("%s-%d", username, time.Now().Unix())
		}

		user = models.User{
			Username:  username,
			FirstName: givenName,
			LastName:  familyName,
			Email:     email,
			Password:  "!", // federated accounts have no usable password
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
		}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	if user.Banned {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "This account is banned."})
	}

	access, err := issueAccessToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}
	refresh, err := issueRefreshToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{
		"access":  access,
		"refresh": refresh,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.FullName(),
		},
	})
}
