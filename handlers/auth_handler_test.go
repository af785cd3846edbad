package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/etuition/tutoria/database"
	"github.com/etuition/tutoria/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func TestRegisterUser(t *testing.T) {
	app := setupApp(t)

	resp, body := doJSON(t, app, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"username":   "rahim",
		"first_name": "Rahim",
		"email":      "Rahim@Example.com",
		"password":   "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "rahim", body["username"])
	assert.Equal(t, "rahim@example.com", body["email"])
	assert.Equal(t, false, body["is_teacher"])

	// Same username again is a conflict.
	resp, _ = doJSON(t, app, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"username":   "rahim",
		"first_name": "Other",
		"email":      "other@example.com",
		"password":   "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Short password fails validation.
	resp, _ = doJSON(t, app, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"username":   "karim",
		"first_name": "Karim",
		"email":      "karim@example.com",
		"password":   "123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginUser(t *testing.T) {
	app := setupApp(t)
	user := mustCreateUser(t, "salma")

	resp, body := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"username": "salma",
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["access"])
	assert.NotEmpty(t, body["refresh"])
	assert.Equal(t, float64(user.ID), body["user_id"])
	assert.Equal(t, false, body["banned"])

	resp, _ = doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"username": "salma",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"username": "nobody",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginBannedUser(t *testing.T) {
	app := setupApp(t)
	user := mustCreateUser(t, "troll")
	user.Banned = true
	require.NoError(t, database.DB.Save(&user).Error)

	resp, body := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"username": "troll",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "This account is banned.", body["error"])
}

func TestRefreshToken(t *testing.T) {
	app := setupApp(t)
	mustCreateUser(t, "salma")

	_, login := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"username": "salma",
		"password": testPassword,
	})

	resp, body := doJSON(t, app, "POST", "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh": login["refresh"],
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["access"])

	// An access token is not accepted as a refresh token.
	resp, _ = doJSON(t, app, "POST", "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh": login["access"],
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh": "garbage",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRefreshTokenBannedInBetween(t *testing.T) {
	app := setupApp(t)
	user := mustCreateUser(t, "salma")

	_, login := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"username": "salma",
		"password": testPassword,
	})

	user.Banned = true
	require.NoError(t, database.DB.Save(&user).Error)

	resp, body := doJSON(t, app, "POST", "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh": login["refresh"],
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "This account is banned.", body["error"])
}

func googleStub(claims map[string]interface{}, err error) func(context.Context, string, string) (*idtoken.Payload, error) {
	return func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		if err != nil {
			return nil, err
		}
		return &idtoken.Payload{Claims: claims}, nil
	}
}

func TestGoogleLogin(t *testing.T) {
	app := setupApp(t)

	original := verifyGoogleIDToken
	defer func() { verifyGoogleIDToken = original }()

	verifyGoogleIDToken = googleStub(map[string]interface{}{
		"email":          "Nabila@Example.com",
		"email_verified": true,
		"given_name":     "Nabila",
		"family_name":    "Khan",
	}, nil)

	resp, body := doJSON(t, app, "POST", "/api/v1/auth/google", "sometoken", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["access"])
	userInfo := body["user"].(map[string]interface{})
	assert.Equal(t, "nabila@example.com", userInfo["email"])
	assert.Equal(t, "Nabila Khan", userInfo["name"])

	var count int64
	database.DB.Model(&models.User{}).Where("email = ?", "nabila@example.com").Count(&count)
	assert.Equal(t, int64(1), count)

	// A second login reuses the account instead of creating another.
	resp, _ = doJSON(t, app, "POST", "/api/v1/auth/google", "sometoken", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	database.DB.Model(&models.User{}).Where("email = ?", "nabila@example.com").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGoogleLoginRejectsUnverifiedEmail(t *testing.T) {
	app := setupApp(t)

	original := verifyGoogleIDToken
	defer func() { verifyGoogleIDToken = original }()

	verifyGoogleIDToken = googleStub(map[string]interface{}{
		"email":          "shady@example.com",
		"email_verified": false,
	}, nil)

	resp, _ := doJSON(t, app, "POST", "/api/v1/auth/google", "sometoken", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGoogleLoginRejectsBadToken(t *testing.T) {
	app := setupApp(t)

	original := verifyGoogleIDToken
	defer func() { verifyGoogleIDToken = original }()

	verifyGoogleIDToken = googleStub(nil, errors.New("invalid token"))

	resp, _ := doJSON(t, app, "POST", "/api/v1/auth/google", "sometoken", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Missing Authorization header never reaches the verifier.
	resp, _ = doJSON(t, app, "POST", "/api/v1/auth/google", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
