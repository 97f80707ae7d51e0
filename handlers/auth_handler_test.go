package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shuja06/School-ERP/models"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupDB(t)
	h := NewAuthHandler("test-secret")

	c, rec := newRequest(t, http.MethodPost, "/api/v1/auth/register",
		`{"email":"Accounts@School.Local","password":"secret99","full_name":"Priya Nair","role":"accountant"}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "accounts@school.local", body["email"])
	assert.Equal(t, "accountant", body["role"])
	assert.NotEmpty(t, body["token"])
	assert.NotEmpty(t, body["id"])

	// password is stored as a hash, never returned
	var u models.User
	require.NoError(t, db.First(&u, "email = ?", "accounts@school.local").Error)
	assert.NotEqual(t, "secret99", u.Password)
	assert.NotContains(t, rec.Body.String(), "secret99")

	c, rec = newRequest(t, http.MethodPost, "/api/v1/auth/login",
		`{"email":"accounts@school.local","password":"secret99"}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["token"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupDB(t)
	h := NewAuthHandler("test-secret")

	body := `{"email":"a@b.co","password":"secret99"}`
	c, rec := newRequest(t, http.MethodPost, "/api/v1/auth/register", body)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = newRequest(t, http.MethodPost, "/api/v1/auth/register", body)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "EMAIL_EXISTS", decodeBody(t, rec)["error"])
}

func TestLoginWrongPassword(t *testing.T) {
	setupDB(t)
	h := NewAuthHandler("test-secret")

	c, rec := newRequest(t, http.MethodPost, "/api/v1/auth/register", `{"email":"a@b.co","password":"secret99"}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = newRequest(t, http.MethodPost, "/api/v1/auth/login", `{"email":"a@b.co","password":"wrong"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeBody(t, rec)["error"])
}

func TestLoginUnknownEmail(t *testing.T) {
	setupDB(t)
	h := NewAuthHandler("test-secret")

	c, rec := newRequest(t, http.MethodPost, "/api/v1/auth/login", `{"email":"nobody@b.co","password":"whatever"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeBody(t, rec)["error"])
}

func TestRegisterValidation(t *testing.T) {
	setupDB(t)
	h := NewAuthHandler("test-secret")

	c, rec := newRequest(t, http.MethodPost, "/api/v1/auth/register", `{"email":"not-an-email","password":"123"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
	fields := body["fields"].(map[string]any)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}
