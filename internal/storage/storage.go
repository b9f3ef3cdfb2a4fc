// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to work with this application.
//
// Handlers (HTTP layer) depend only on this interface, never on the
// concrete SQLite type. Switching databases means implementing the
// interface for the new backend and changing one line in main.go;
// tests can pass a fake that satisfies the interface.
package storage

import (
	"errors"

	"github.com/arnav-mehta/items-api/internal/types"
)

// Sentinel errors returned by Storage implementations.
// Handlers match on these with errors.Is to pick the HTTP status,
// without knowing anything about the underlying database.
var (
	// ErrNotFound means the referenced id matched no row.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate means a UNIQUE constraint rejected the write
	// (duplicate username or email on user creation).
	ErrDuplicate = errors.New("record already exists")
)

// Storage is the database contract.
// Any concrete type that implements all of these methods satisfies the
// interface implicitly.
type Storage interface {
	// CreateItem inserts a new item and returns the store-assigned id.
	CreateItem(item types.Item) (int64, error)

	// GetItemByID fetches a single item by primary key.
	// Returns ErrNotFound (possibly wrapped) if no row matches.
	GetItemByID(id int64) (types.Item, error)

	// GetItems returns every item in insertion order.
	// Returns an empty slice (not nil) when the table is empty.
	GetItems() ([]types.Item, error)

	// UpdateItemByID replaces name, price, and is_offer of an existing
	// item and returns the stored record. Returns ErrNotFound when the
	// update affected zero rows.
	UpdateItemByID(id int64, item types.Item) (types.Item, error)

	// DeleteItemByID removes an item. Returns ErrNotFound when the
	// delete affected zero rows.
	DeleteItemByID(id int64) error

	// SearchItems returns the items matching every present filter
	// (substring on name, inclusive price bounds). A zero-value filter
	// matches everything.
	SearchItems(filter types.SearchFilter) ([]types.Item, error)

	// CreateUser inserts a new user and returns the store-assigned id.
	// Returns ErrDuplicate when username or email is already taken.
	CreateUser(user types.User) (int64, error)
}
