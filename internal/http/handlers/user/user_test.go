package user_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/arnav-mehta/items-api/internal/config"
	"github.com/arnav-mehta/items-api/internal/http/router"
	"github.com/arnav-mehta/items-api/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Env:         "dev",
		StoragePath: filepath.Join(t.TempDir(), "test.db"),
	}

	store, err := sqlite.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { store.Db.Close() })

	return router.New(store)
}

func postUser(t *testing.T, h http.Handler, payload map[string]any) (int, map[string]any) {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/users/", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))

	return w.Code, decoded
}

func TestCreate(t *testing.T) {
	h := newTestRouter(t)

	code, body := postUser(t, h, map[string]any{
		"username":  "sam_lee",
		"email":     "sam@example.com",
		"full_name": "Sam Lee",
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "User created", body["message"])

	created := body["user"].(map[string]any)
	assert.Equal(t, float64(4), created["id"]) // 3 seeded users come first
	assert.Equal(t, "sam_lee", created["username"])
	assert.Equal(t, "Sam Lee", created["full_name"])
}

func TestCreate_FullNameOptional(t *testing.T) {
	h := newTestRouter(t)

	code, body := postUser(t, h, map[string]any{
		"username": "no_name",
		"email":    "noname@example.com",
	})
	require.Equal(t, http.StatusCreated, code)

	created := body["user"].(map[string]any)
	assert.Nil(t, created["full_name"])
}

func TestCreate_DuplicateUsername(t *testing.T) {
	h := newTestRouter(t)

	// john_doe is part of the seed data.
	code, body := postUser(t, h, map[string]any{
		"username": "john_doe",
		"email":    "different@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "username or email already exists", body["error"])
}

func TestCreate_DuplicateEmail(t *testing.T) {
	h := newTestRouter(t)

	code, body := postUser(t, h, map[string]any{
		"username": "brand_new",
		"email":    "john@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "username or email already exists", body["error"])
}

func TestCreate_SecondAttemptConflicts(t *testing.T) {
	h := newTestRouter(t)

	payload := map[string]any{
		"username": "only_once",
		"email":    "once@example.com",
	}

	code, _ := postUser(t, h, payload)
	require.Equal(t, http.StatusCreated, code)

	code, body := postUser(t, h, payload)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "username or email already exists", body["error"])
}

func TestCreate_InvalidEmail(t *testing.T) {
	h := newTestRouter(t)

	code, body := postUser(t, h, map[string]any{
		"username": "bad_email",
		"email":    "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["error"], "field Email must be a valid email address")
}

func TestCreate_MissingFields(t *testing.T) {
	h := newTestRouter(t)

	code, body := postUser(t, h, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["error"], "field Username is required")
	assert.Contains(t, body["error"], "field Email is required")
}
