package handlers_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"project-tracker/app"
	"project-tracker/database"
	"project-tracker/handlers"
	"project-tracker/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// setupTestApp creates a temporary database and a fiber app with the
// full protected route table.
func setupTestApp(t *testing.T) (*fiber.App, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "project-tracker-test-*")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.SeedAdmin("admin", string(hash), "Administrator"))

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	a := app.New(db, time.Hour, logger)

	srv := fiber.New()
	srv.Post("/api/auth/login", handlers.Login(a))

	api := srv.Group("/api/v1", middleware.RequireToken(a.Tokens))
	api.Get("/contacts", handlers.GetContacts(a))
	api.Post("/contacts", handlers.CreateContact(a))
	api.Get("/contacts/:id", handlers.GetContact(a))
	api.Put("/contacts/:id", handlers.UpdateContact(a))
	api.Delete("/contacts/:id", handlers.DeleteContact(a))
	api.Get("/tasks", handlers.GetTasks(a))

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return srv, cleanup
}

func login(t *testing.T, srv *fiber.App, username, password string) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	creds := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	req.Header.Set("Authorization", "Basic "+creds)

	resp, err := srv.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	token := resp.Header.Get("Token")
	require.NotEmpty(t, token)
	return token
}

func doJSON(t *testing.T, srv *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Token", token)
	}

	resp, err := srv.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestLogin(t *testing.T) {
	srv, cleanup := setupTestApp(t)
	defer cleanup()

	t.Run("valid credentials issue a token", func(t *testing.T) {
		token := login(t, srv, "admin", "s3cret")
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		creds := base64.StdEncoding.EncodeToString([]byte("admin:wrong"))
		req.Header.Set("Authorization", "Basic "+creds)

		resp, err := srv.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing credentials are rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)

		resp, err := srv.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestAuthenticationGate(t *testing.T) {
	srv, cleanup := setupTestApp(t)
	defer cleanup()

	t.Run("missing token header yields 401", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodGet, "/api/v1/contacts", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, float64(401), body["errorCode"])
	})

	t.Run("garbage token yields 401", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodGet, "/api/v1/contacts", "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token passes the gate", func(t *testing.T) {
		token := login(t, srv, "admin", "s3cret")

		// Empty store, so the handler itself answers 404/1000 - the
		// gate let the request through
		resp := doJSON(t, srv, http.MethodGet, "/api/v1/contacts", token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, float64(handlers.CodeCollectionEmpty), body["errorCode"])
	})
}

func TestContactEndpoints(t *testing.T) {
	srv, cleanup := setupTestApp(t)
	defer cleanup()

	token := login(t, srv, "admin", "s3cret")

	t.Run("create returns assigned id", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/api/v1/contacts", token, fiber.Map{
			"firstName": "Britney",
			"lastName":  "James",
			"email":     "brit@tf.com",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, float64(1), body["id"])
	})

	t.Run("get by id round-trips", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodGet, "/api/v1/contacts/1", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Britney", body["firstName"])
		assert.Equal(t, "brit@tf.com", body["email"])
	})

	t.Run("invalid payload yields 400", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/api/v1/contacts", token, fiber.Map{
			"firstName": "Britney",
			"lastName":  "James",
			"email":     "not-an-email",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("non-positive id yields 400", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodGet, "/api/v1/contacts/0", token, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Bad Request...", body["errorDescription"])
	})

	t.Run("missing id yields 404 with code 1001", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodGet, "/api/v1/contacts/99", token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, float64(handlers.CodeRecordNotFound), body["errorCode"])
	})

	t.Run("update and delete", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPut, "/api/v1/contacts/1", token, fiber.Map{
			"firstName": "Britney",
			"lastName":  "Spears",
			"email":     "brit@tf.com",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = doJSON(t, srv, http.MethodDelete, "/api/v1/contacts/1", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		// Second delete of the same id reports code 1002
		resp = doJSON(t, srv, http.MethodDelete, "/api/v1/contacts/1", token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, float64(handlers.CodeAlreadyDeleted), body["errorCode"])
	})
}
