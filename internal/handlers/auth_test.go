package handlers

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevM0rales/NerdHub-Project/internal/models"
)

var testSecrets = struct {
	access  []byte
	refresh []byte
}{
	access:  []byte("access-secret"),
	refresh: []byte("refresh-secret"),
}

func newAuthHandler(env *testEnv) *AuthHandler {
	return &AuthHandler{DB: env.DB, JWTSecret: testSecrets.access, RefreshSecret: testSecrets.refresh}
}

func TestRegisterHandler(t *testing.T) {
	env := newTestEnv(t)
	h := newAuthHandler(env)

	c, rec := env.newContext(http.MethodPost, "/api/v1/register",
		`{"username":"ana","password":"s3cret"}`, nil)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ana", body["username"])
	assert.Equal(t, "user", body["role"])

	var user models.User
	require.NoError(t, env.DB.Where("username = ?", "ana").First(&user).Error)
	assert.NotEqual(t, "s3cret", user.PasswordHash, "password is stored hashed")
}

func TestRegisterHandler_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	h := newAuthHandler(env)

	c, _ := env.newContext(http.MethodPost, "/api/v1/register",
		`{"username":"ana","password":"s3cret"}`, nil)
	require.NoError(t, h.Register(c))

	c, _ = env.newContext(http.MethodPost, "/api/v1/register",
		`{"username":"ana","password":"other"}`, nil)
	err := h.Register(c)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestRegisterHandler_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	h := newAuthHandler(env)

	c, _ := env.newContext(http.MethodPost, "/api/v1/register", `{"username":"ana"}`, nil)
	err := h.Register(c)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestLoginHandler(t *testing.T) {
	env := newTestEnv(t)
	h := newAuthHandler(env)

	c, _ := env.newContext(http.MethodPost, "/api/v1/register",
		`{"username":"ana","password":"s3cret"}`, nil)
	require.NoError(t, h.Register(c))

	c, rec := env.newContext(http.MethodPost, "/api/v1/login",
		`{"username":"ana","password":"s3cret"}`, nil)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["access_token"])
	assert.NotEmpty(t, body["refresh_token"])
	assert.Equal(t, false, body["is_admin"])

	cookies := rec.Result().Cookies()
	names := make(map[string]bool, len(cookies))
	for _, ck := range cookies {
		names[ck.Name] = true
	}
	assert.True(t, names["accessToken"])
	assert.True(t, names["refreshToken"])

	var count int64
	require.NoError(t, env.DB.Model(&models.RefreshToken{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	h := newAuthHandler(env)

	c, _ := env.newContext(http.MethodPost, "/api/v1/register",
		`{"username":"ana","password":"s3cret"}`, nil)
	require.NoError(t, h.Register(c))

	c, _ = env.newContext(http.MethodPost, "/api/v1/login",
		`{"username":"ana","password":"wrong"}`, nil)
	err := h.Login(c)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestLoginHandler_UnknownUser(t *testing.T) {
	env := newTestEnv(t)
	h := newAuthHandler(env)

	c, _ := env.newContext(http.MethodPost, "/api/v1/login",
		`{"username":"nobody","password":"x"}`, nil)
	err := h.Login(c)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
