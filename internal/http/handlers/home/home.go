// Package home holds the small informational endpoints that are not
// tied to a stored resource.
package home

import (
	"net/http"

	"github.com/arnav-mehta/items-api/internal/utils/response"
)

// Root handles GET / with a fixed welcome message.
func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "Welcome to the Items API!",
		})
	}
}

// Async handles GET /async-example/. The handler already runs on its
// own goroutine under net/http, so "async" here is just a fixed
// response confirming that.
func Async() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "This is an async response",
		})
	}
}
