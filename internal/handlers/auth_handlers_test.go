package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"restaurant-reservation/internal/config"
	"restaurant-reservation/internal/models"
	"restaurant-reservation/internal/service/token"
	"restaurant-reservation/internal/validate"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validate.NewRequestValidator()
	return e
}

func jsonContext(t *testing.T, e *echo.Echo, method, target string, payload any) (echo.Context, *httptest.ResponseRecorder) {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{
		DB: db,
		Tokens: &token.Service{
			DB:            db,
			JWTSecret:     []byte("test-access-secret"),
			RefreshSecret: []byte("test-refresh-secret"),
		},
	}
}

func TestRegister(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	h := newAuthHandler(db)

	payload := map[string]string{
		"first_name": "Anna",
		"last_name":  "Rossi",
		"username":   "anna.rossi",
		"password":   "password123",
	}

	c, rec := jsonContext(t, e, http.MethodPost, "/register", payload)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	require.Equal(t, "anna.rossi", user.Username)
	require.NotEmpty(t, user.ID)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.NotEqual(t, "password123", stored.PasswordHash)

	c2, _ := jsonContext(t, e, http.MethodPost, "/register", payload)
	err := h.Register(c2)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusConflict, he.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	h := newAuthHandler(db)

	c, _ := jsonContext(t, e, http.MethodPost, "/register", map[string]string{
		"username": "anna.rossi",
		"password": "short",
	})
	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, he.Code)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestLoginAndRefresh(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	h := newAuthHandler(db)

	c, rec := jsonContext(t, e, http.MethodPost, "/register", map[string]string{
		"username": "anna.rossi",
		"password": "password123",
	})
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = jsonContext(t, e, http.MethodPost, "/login", map[string]string{
		"username": "anna.rossi",
		"password": "password123",
	})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var loginResp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp["access_token"])
	refreshToken, _ := loginResp["refresh_token"].(string)
	require.NotEmpty(t, refreshToken)

	c, rec = jsonContext(t, e, http.MethodPost, "/refresh", map[string]string{
		"refresh_token": refreshToken,
	})
	require.NoError(t, h.Refresh(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var refreshResp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refreshResp))
	require.NotEmpty(t, refreshResp["access_token"])
	require.NotEqual(t, refreshToken, refreshResp["refresh_token"])

	// the rotated-out token is revoked
	c, _ = jsonContext(t, e, http.MethodPost, "/refresh", map[string]string{
		"refresh_token": refreshToken,
	})
	err := h.Refresh(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	h := newAuthHandler(db)

	c, _ := jsonContext(t, e, http.MethodPost, "/register", map[string]string{
		"username": "anna.rossi",
		"password": "password123",
	})
	require.NoError(t, h.Register(c))

	c, _ = jsonContext(t, e, http.MethodPost, "/login", map[string]string{
		"username": "anna.rossi",
		"password": "wrong-password",
	})
	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}
