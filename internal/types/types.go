// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, and utils can all import types without depending
// on each other.
package types

// Item represents a product record in the catalog.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — controls how the field appears when encoded to JSON
//     (snake_case names match REST API conventions).
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package. "required" means the field must be non-zero / non-empty.
//
// IsOffer is a *bool rather than bool so that "not set" survives the
// round trip: an absent flag stays NULL in the store and null in JSON
// instead of collapsing to false.
type Item struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"  validate:"required"`
	Price   float64 `json:"price" validate:"required"`
	IsOffer *bool   `json:"is_offer"`
}

// User represents an account record. Username and Email are unique —
// the store enforces that, not the application layer.
type User struct {
	ID       int64   `json:"id"`
	Username string  `json:"username" validate:"required"`
	Email    string  `json:"email"    validate:"required,email"`
	FullName *string `json:"full_name"`
}

// SearchFilter carries the optional predicates for GET /search/.
// A nil field means "no constraint on this dimension"; the JSON tags
// let the filter set be echoed back in the search response as-is
// (absent filters serialize as null).
type SearchFilter struct {
	Name     *string  `json:"name"`
	PriceMin *float64 `json:"price_min"`
	PriceMax *float64 `json:"price_max"`
}
