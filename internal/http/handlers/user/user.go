// Package user contains the HTTP handlers for the User resource.
// Users are create-only: there are no read, update, or delete routes.
// Same factory/closure pattern as the item handlers.
package user

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/arnav-mehta/items-api/internal/storage"
	"github.com/arnav-mehta/items-api/internal/types"
	"github.com/arnav-mehta/items-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// ─────────────────────────────────────────────────────────────────────────────
// Create handles POST /users/
//
// Request body (JSON):
//
//	{ "username": "sam_lee", "email": "sam@example.com", "full_name": "Sam Lee" }
//
// full_name is optional. Username and email must be unique — the store
// enforces that, and a violation comes back as a 400.
//
// Success response (201 Created):
//
//	{ "user": { "id": 4, "username": "sam_lee", ... }, "message": "User created" }
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, failed validation,
//	                   or duplicate username/email
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Create(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a user")

		var user types.User
		err := json.NewDecoder(r.Body).Decode(&user)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		// username and email required; email must also be well-formed.
		if err := validator.New().Struct(user); err != nil {
			if validateErrs, ok := response.ValidationErrors(err); ok {
				response.WriteJSON(w, http.StatusBadRequest,
					response.ValidationError(validateErrs))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		lastID, err := store.CreateUser(user)
		if err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				response.WriteJSON(w, http.StatusBadRequest,
					response.GeneralError(errors.New("username or email already exists")))
				return
			}
			slog.Error("error creating user",
				slog.String("username", user.Username),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}
		user.ID = lastID

		slog.Info("user created", slog.Int64("id", lastID))

		response.WriteJSON(w, http.StatusCreated, map[string]any{
			"user":    user,
			"message": "User created",
		})
	}
}
