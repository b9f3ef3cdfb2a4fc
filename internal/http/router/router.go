// Package router wires every route to its handler. It lives apart
// from main so tests can mount the exact route table the server runs.
package router

import (
	"net/http"

	"github.com/arnav-mehta/items-api/internal/http/handlers/home"
	"github.com/arnav-mehta/items-api/internal/http/handlers/item"
	"github.com/arnav-mehta/items-api/internal/http/handlers/user"
	"github.com/arnav-mehta/items-api/internal/storage"
)

// New returns a ServeMux with all application routes registered.
//
// Patterns use the Go 1.22 ServeMux features: a leading method, {id}
// wildcards, and {$} to pin a trailing-slash path to an exact match
// (so "GET /items/{$}" does not swallow /items/x/y).
//
// Route table:
//
//	GET    /                    welcome message
//	GET    /items/              list all items
//	GET    /items/{id}          fetch one item (optional ?q= echoed)
//	POST   /items/              create an item
//	PUT    /items/{id}          replace an item
//	DELETE /items/{id}          delete an item
//	GET    /items/{id}/status   existence check
//	GET    /search/             filtered search (name, price_min, price_max)
//	POST   /users/              create a user
//	GET    /async-example/      fixed async-style response
func New(store storage.Storage) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", home.Root())
	mux.HandleFunc("GET /async-example/{$}", home.Async())

	mux.HandleFunc("GET /items/{$}", item.GetList(store))
	mux.HandleFunc("POST /items/{$}", item.Create(store))
	mux.HandleFunc("GET /items/{id}", item.GetByID(store))
	mux.HandleFunc("PUT /items/{id}", item.Update(store))
	mux.HandleFunc("DELETE /items/{id}", item.Delete(store))
	mux.HandleFunc("GET /items/{id}/status", item.Status(store))

	mux.HandleFunc("GET /search/{$}", item.Search(store))

	mux.HandleFunc("POST /users/{$}", user.Create(store))

	return mux
}
