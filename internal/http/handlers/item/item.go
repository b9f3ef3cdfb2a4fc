// Package item contains all HTTP handlers for the Item resource.
//
// HANDLER PATTERN — FACTORY / CLOSURE:
// The router expects func(http.ResponseWriter, *http.Request), which
// leaves no room for dependencies. Each exported function here is a
// factory: it takes the storage dependency once at route-registration
// time and returns the actual handler, which closes over it.
//
//	router.HandleFunc("POST /items/{$}", item.Create(storage))
package item

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/arnav-mehta/items-api/internal/storage"
	"github.com/arnav-mehta/items-api/internal/types"
	"github.com/arnav-mehta/items-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// ─────────────────────────────────────────────────────────────────────────────
// Create handles POST /items/
//
// Request body (JSON):
//
//	{ "name": "Webcam", "price": 59.99, "is_offer": true }
//
// is_offer is optional and may be omitted or null.
//
// Success response (201 Created):
//
//	{ "item": { "id": 6, "name": "Webcam", ... }, "message": "Item created successfully" }
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or failed validation
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Create(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating an item")

		var item types.Item
		err := json.NewDecoder(r.Body).Decode(&item)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		// Check the validate:"..." tags (name and price required).
		if err := validator.New().Struct(item); err != nil {
			if validateErrs, ok := response.ValidationErrors(err); ok {
				response.WriteJSON(w, http.StatusBadRequest,
					response.ValidationError(validateErrs))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		lastID, err := store.CreateItem(item)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}
		item.ID = lastID

		slog.Info("item created", slog.Int64("id", lastID))

		response.WriteJSON(w, http.StatusCreated, map[string]any{
			"item":    item,
			"message": "Item created successfully",
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /items/{id}
//
// Path parameter: {id} — must be a valid integer.
// Query parameter: q — optional free-form string, echoed back untouched
// (null when absent).
//
// Success response (200 OK):
//
//	{ "item": { "id": 1, "name": "Laptop", ... }, "q": "promo" }
//
// Error responses:
//
//	400 Bad Request  — id is not a valid integer
//	404 Not Found    — no item with that id
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting an item", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		item, err := store.GetItemByID(intID)
		if err != nil {
			writeStorageError(w, id, err)
			return
		}

		// q echoes as null when the client did not send it.
		var q any
		if v := r.URL.Query().Get("q"); v != "" {
			q = v
		}

		response.WriteJSON(w, http.StatusOK, map[string]any{
			"item": item,
			"q":    q,
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /items/
//
// Success response (200 OK):
//
//	{ "items": [ { "id": 1, ... }, { "id": 2, ... } ], "count": 2 }
//
// items is an empty array [] (not null) when the table is empty.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all items")

		items, err := store.GetItems()
		if err != nil {
			slog.Error("error getting items", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]any{
			"items": items,
			"count": len(items),
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /items/{id}
// Replaces ALL fields of an existing item; it never creates one.
//
// Request body (JSON) — same shape as Create:
//
//	{ "name": "Laptop Pro", "price": 1299.99, "is_offer": false }
//
// Success response (200 OK):
//
//	{ "item_id": 1, "item": { "id": 1, "name": "Laptop Pro", ... }, "message": "Item updated" }
//
// Error responses:
//
//	400 Bad Request  — invalid id, empty body, or validation failure
//	404 Not Found    — no item with that id (zero rows affected)
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating an item", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		var item types.Item
		err = json.NewDecoder(r.Body).Decode(&item)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		// Same rules as creation — a PUT body must be complete.
		if err := validator.New().Struct(item); err != nil {
			if validateErrs, ok := response.ValidationErrors(err); ok {
				response.WriteJSON(w, http.StatusBadRequest,
					response.ValidationError(validateErrs))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		updated, err := store.UpdateItemByID(intID, item)
		if err != nil {
			writeStorageError(w, id, err)
			return
		}

		slog.Info("item updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]any{
			"item_id": intID,
			"item":    updated,
			"message": "Item updated",
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /items/{id}
//
// Success response (200 OK):
//
//	{ "message": "Item 3 deleted" }
//
// Error responses:
//
//	400 Bad Request  — invalid id
//	404 Not Found    — no item with that id (zero rows affected)
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting an item", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		if err := store.DeleteItemByID(intID); err != nil {
			writeStorageError(w, id, err)
			return
		}

		slog.Info("item deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{
			"message": fmt.Sprintf("Item %d deleted", intID),
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Search handles GET /search/
//
// Query parameters (all optional): name, price_min, price_max.
// Present filters are ANDed together: substring match on name,
// inclusive price bounds. With no filters every item is returned.
//
// Example: /search/?name=board&price_min=50&price_max=100
//
// Success response (200 OK):
//
//	{
//	  "items":   [ { "id": 3, "name": "Keyboard", ... } ],
//	  "filters": { "name": "board", "price_min": 50, "price_max": 100 },
//	  "count":   1
//	}
//
// Absent filters echo as null.
//
// Error responses:
//
//	400 Bad Request  — price_min or price_max is not a number
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Search(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		var filter types.SearchFilter

		if name := query.Get("name"); name != "" {
			filter.Name = &name
		}
		if raw := query.Get("price_min"); raw != "" {
			min, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				response.WriteJSON(w, http.StatusBadRequest,
					response.GeneralError(errors.New("invalid price_min: must be a number")))
				return
			}
			filter.PriceMin = &min
		}
		if raw := query.Get("price_max"); raw != "" {
			max, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				response.WriteJSON(w, http.StatusBadRequest,
					response.GeneralError(errors.New("invalid price_max: must be a number")))
				return
			}
			filter.PriceMax = &max
		}

		slog.Info("searching items",
			slog.Bool("name_filter", filter.Name != nil),
			slog.Bool("price_min_filter", filter.PriceMin != nil),
			slog.Bool("price_max_filter", filter.PriceMax != nil),
		)

		items, err := store.SearchItems(filter)
		if err != nil {
			slog.Error("error searching items", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]any{
			"items":   items,
			"filters": filter,
			"count":   len(items),
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Status handles GET /items/{id}/status
// Reports whether an item exists without returning the record itself.
//
// Success response (200 OK):
//
//	{ "item_id": 42, "status": "found" }
//
// Error responses:
//
//	400 Bad Request  — invalid id
//	404 Not Found    — no item with that id
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Status(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("checking item status", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		if _, err := store.GetItemByID(intID); err != nil {
			writeStorageError(w, id, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]any{
			"item_id": intID,
			"status":  "found",
		})
	}
}

// writeStorageError maps a storage failure to the right HTTP response:
// ErrNotFound becomes a 404 with the short detail, anything else is a
// logged 500.
func writeStorageError(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		response.WriteJSON(w, http.StatusNotFound, response.NotFoundError("item"))
		return
	}

	slog.Error("storage error",
		slog.String("id", id),
		slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
}
