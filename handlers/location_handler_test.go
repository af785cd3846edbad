package handlers

import (
	"net/http"
	"testing"

	"github.com/etuition/tutoria/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLocationFirstTime(t *testing.T) {
	app := setupApp(t)
	user := mustCreateUser(t, "walker")
	token := tokenFor(t, user)

	resp, body := doJSON(t, app, "GET", "/api/v1/profile/me/location", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, body["location"])

	resp, body = doJSON(t, app, "PUT", "/api/v1/profile/me/location", token, map[string]interface{}{
		"location": "23.8103,90.4125,15.0",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Location updated successfully.", body["detail"])

	resp, body = doJSON(t, app, "GET", "/api/v1/profile/me/location", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	location := body["location"].(map[string]interface{})
	assert.Equal(t, 23.8103, location["latitude"])
	assert.Equal(t, 90.4125, location["longitude"])
}

func TestSetLocationSmallMoveIgnored(t *testing.T) {
	app := setupApp(t)
	user := mustCreateUser(t, "walker")
	token := tokenFor(t, user)

	doJSON(t, app, "PUT", "/api/v1/profile/me/location", token, map[string]interface{}{
		"location": "23.8103,90.4125",
	})

	// About 110 m north, inside the 200 m threshold.
	resp, body := doJSON(t, app, "PUT", "/api/v1/profile/me/location", token, map[string]interface{}{
		"location": "23.8113,90.4125",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body["detail"], "don't need to be updated")

	_, body = doJSON(t, app, "GET", "/api/v1/profile/me/location", token, nil)
	location := body["location"].(map[string]interface{})
	assert.Equal(t, 23.8103, location["latitude"])
}

func TestSetLocationBigMoveNeedsConfirmation(t *testing.T) {
	app := setupApp(t)
	user := mustCreateUser(t, "walker")
	token := tokenFor(t, user)

	doJSON(t, app, "PUT", "/api/v1/profile/me/location", token, map[string]interface{}{
		"location": "23.8103,90.4125",
	})

	// About 220 m north. Without confirmation the move is reported back.
	resp, body := doJSON(t, app, "PUT", "/api/v1/profile/me/location", token, map[string]interface{}{
		"location": "23.8123,90.4125",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["update_required"])
	assert.Equal(t, 0.22, body["distance_km"])

	// With update=true it goes through.
	resp, body = doJSON(t, app, "PUT", "/api/v1/profile/me/location", token, map[string]interface{}{
		"location": "23.8123,90.4125",
		"update":   true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Location updated successfully.", body["detail"])

	_, body = doJSON(t, app, "GET", "/api/v1/profile/me/location", token, nil)
	location := body["location"].(map[string]interface{})
	assert.Equal(t, 23.8123, location["latitude"])
}

func TestSetLocationRejectsMalformedInput(t *testing.T) {
	app := setupApp(t)
	user := mustCreateUser(t, "walker")
	token := tokenFor(t, user)

	resp, _ := doJSON(t, app, "PUT", "/api/v1/profile/me/location", token, map[string]interface{}{
		"location": "not-coordinates",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, "PUT", "/api/v1/profile/me/location", token, map[string]interface{}{
		"location": "95.0,90.4125",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, "PUT", "/api/v1/profile/me/location", token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProtectedRoutesRejectBannedUser(t *testing.T) {
	app := setupApp(t)
	user := mustCreateUser(t, "troll")
	token := tokenFor(t, user)

	user.Banned = true
	require.NoError(t, database.DB.Save(&user).Error)

	resp, body := doJSON(t, app, "GET", "/api/v1/profile/me", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "This account is banned.", body["error"])
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, "GET", "/api/v1/profile/me", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
