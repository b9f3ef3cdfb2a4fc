package home_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arnav-mehta/items-api/internal/http/handlers/home"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getMessage(t *testing.T, h http.HandlerFunc, target string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h(w, req)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return w.Code, body["message"]
}

func TestRoot(t *testing.T) {
	code, msg := getMessage(t, home.Root(), "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Welcome to the Items API!", msg)
}

func TestAsync(t *testing.T) {
	code, msg := getMessage(t, home.Async(), "/async-example/")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "This is an async response", msg)
}
