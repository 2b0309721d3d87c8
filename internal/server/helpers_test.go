package server

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"blogpost/internal/config"
	"blogpost/internal/database"
	"blogpost/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:    "test-secret-key",
		PasswordSalt: "test-salt",
		Env:          "test",
	}
}

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// in-memory sqlite is per-connection
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

// setupTestApp builds a full app over an in-memory store and no Redis.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	srv := NewWithDB(testConfig(), setupTestDB(t), nil)
	app, err := srv.NewApp()
	require.NoError(t, err)
	return app
}

// setupTestAppWithRedis builds the app backed by a miniredis instance.
func setupTestAppWithRedis(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	srv := NewWithDB(testConfig(), setupTestDB(t), rdb)
	app, err := srv.NewApp()
	require.NoError(t, err)
	return app
}

// doJSON performs one request against the app and decodes the envelope.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, models.Envelope) {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var env models.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func resultMap(t *testing.T, env models.Envelope) map[string]interface{} {
	t.Helper()
	m, ok := env.Result.(map[string]interface{})
	require.True(t, ok, "result is not an object: %#v", env.Result)
	return m
}

func resultList(t *testing.T, env models.Envelope) []interface{} {
	t.Helper()
	l, ok := env.Result.([]interface{})
	require.True(t, ok, "result is not a list: %#v", env.Result)
	return l
}

// registerUser registers a user through the API and returns its id.
func registerUser(t *testing.T, app *fiber.App, username, email string) string {
	t.Helper()
	_, env := doJSON(t, app, fiber.MethodPut, "/user/register", map[string]any{
		"username": username,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusCreated, env.Code, "register failed: %s", env.Message)
	return resultMap(t, env)["user_id"].(string)
}

// createBlog creates a blog through the API and returns its id.
func createBlog(t *testing.T, app *fiber.App, authorID, title string, tags, categories []string) string {
	t.Helper()
	_, env := doJSON(t, app, fiber.MethodPut, "/blog/create", map[string]any{
		"title":      title,
		"content":    "content of " + title,
		"author_id":  authorID,
		"tags":       tags,
		"categories": categories,
	})
	require.Equal(t, fiber.StatusCreated, env.Code, "create blog failed: %s", env.Message)
	return resultMap(t, env)["blog_id"].(string)
}

// createComment creates a comment through the API and returns its id.
func createComment(t *testing.T, app *fiber.App, blogID, authorID, content string) string {
	t.Helper()
	_, env := doJSON(t, app, fiber.MethodPut, "/comment/create", map[string]any{
		"blog_id":   blogID,
		"author_id": authorID,
		"content":   content,
	})
	require.Equal(t, fiber.StatusCreated, env.Code, "create comment failed: %s", env.Message)
	return resultMap(t, env)["comment_id"].(string)
}
