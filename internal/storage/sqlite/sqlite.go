// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite stores everything in a single file on disk — no network, no
// separate server process, nothing to install beyond the driver. The
// mattn/go-sqlite3 driver registers itself with database/sql via its
// init function, which is why it is imported for side effects only in
// most places; this package also uses it directly to recognise UNIQUE
// constraint violations.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/arnav-mehta/items-api/internal/config"
	"github.com/arnav-mehta/items-api/internal/storage"
	"github.com/arnav-mehta/items-api/internal/types"

	"github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB, the connection pool managed by database/sql,
// which is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.StoragePath, creates the items
// and users tables if they do not exist, seeds them with sample rows
// on first startup, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	// sql.Open validates the driver name and DSN only; the first real
	// connection happens on the first query.
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent — safe on every startup.
	// is_offer and full_name are nullable on purpose: both are optional
	// in the API and an unset value must stay NULL, not become 0 / "".
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS items (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			name     TEXT    NOT NULL,
			price    REAL    NOT NULL,
			is_offer BOOLEAN
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create items table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			username  TEXT NOT NULL UNIQUE,
			email     TEXT NOT NULL UNIQUE,
			full_name TEXT
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create users table: %w", err)
	}

	s := &SQLite{Db: db}

	if err := s.seed(); err != nil {
		return nil, fmt.Errorf("sqlite.New: seed: %w", err)
	}

	return s, nil
}

// seed inserts the sample rows, once, when the tables are empty.
// Running against an already-populated file is a no-op, so restarting
// the server never duplicates the samples.
func (s *SQLite) seed() error {
	var count int

	if err := s.Db.QueryRow("SELECT COUNT(*) FROM items").Scan(&count); err != nil {
		return fmt.Errorf("count items: %w", err)
	}
	if count == 0 {
		offer := func(b bool) *bool { return &b }
		sampleItems := []types.Item{
			{Name: "Laptop", Price: 999.99, IsOffer: offer(true)},
			{Name: "Mouse", Price: 25.50, IsOffer: offer(false)},
			{Name: "Keyboard", Price: 75.00, IsOffer: offer(true)},
			{Name: "Monitor", Price: 299.99, IsOffer: offer(false)},
			{Name: "Headphones", Price: 149.99, IsOffer: offer(true)},
		}
		for _, item := range sampleItems {
			if _, err := s.CreateItem(item); err != nil {
				return fmt.Errorf("insert sample item %q: %w", item.Name, err)
			}
		}
	}

	if err := s.Db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count == 0 {
		name := func(v string) *string { return &v }
		sampleUsers := []types.User{
			{Username: "john_doe", Email: "john@example.com", FullName: name("John Doe")},
			{Username: "jane_smith", Email: "jane@example.com", FullName: name("Jane Smith")},
			{Username: "alice_wonder", Email: "alice@example.com", FullName: name("Alice Wonderland")},
		}
		for _, user := range sampleUsers {
			if _, err := s.CreateUser(user); err != nil {
				return fmt.Errorf("insert sample user %q: %w", user.Username, err)
			}
		}
	}

	return nil
}

// CreateItem inserts a new row into the items table and returns the
// auto-generated primary key.
//
// Prepared statements with ? placeholders keep user input out of the
// SQL text entirely — the driver sends query and values separately, so
// the engine never interprets a value as syntax.
func (s *SQLite) CreateItem(item types.Item) (int64, error) {
	stmt, err := s.Db.Prepare(
		"INSERT INTO items (name, price, is_offer) VALUES (?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("CreateItem: prepare: %w", err)
	}
	defer stmt.Close()

	// A nil *bool is passed through as NULL by the driver.
	result, err := stmt.Exec(item.Name, item.Price, item.IsOffer)
	if err != nil {
		return 0, fmt.Errorf("CreateItem: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateItem: last insert id: %w", err)
	}

	return lastID, nil
}

// GetItemByID fetches exactly one item row matched by primary key.
func (s *SQLite) GetItemByID(id int64) (types.Item, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, price, is_offer FROM items WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Item{}, fmt.Errorf("GetItemByID: prepare: %w", err)
	}
	defer stmt.Close()

	item, err := scanItem(stmt.QueryRow(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Item{}, fmt.Errorf("item %d: %w", id, storage.ErrNotFound)
		}
		return types.Item{}, fmt.Errorf("GetItemByID: scan: %w", err)
	}

	return item, nil
}

// GetItems returns all item rows as a slice, in primary-key order.
func (s *SQLite) GetItems() ([]types.Item, error) {
	// Explicit column list — SELECT * would silently break Scan ordering
	// if a column were ever added.
	rows, err := s.Db.Query("SELECT id, name, price, is_offer FROM items ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("GetItems: query: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// UpdateItemByID replaces an item's data with the provided values and
// returns the stored record so the caller can echo it back.
// An affected-row count of zero means the id does not exist.
func (s *SQLite) UpdateItemByID(id int64, item types.Item) (types.Item, error) {
	stmt, err := s.Db.Prepare(
		"UPDATE items SET name = ?, price = ?, is_offer = ? WHERE id = ?",
	)
	if err != nil {
		return types.Item{}, fmt.Errorf("UpdateItemByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(item.Name, item.Price, item.IsOffer, id)
	if err != nil {
		return types.Item{}, fmt.Errorf("UpdateItemByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return types.Item{}, fmt.Errorf("UpdateItemByID: rows affected: %w", err)
	}
	if affected == 0 {
		return types.Item{}, fmt.Errorf("item %d: %w", id, storage.ErrNotFound)
	}

	// Re-fetch so the response reflects exactly what is stored.
	return s.GetItemByID(id)
}

// DeleteItemByID removes an item row by primary key.
func (s *SQLite) DeleteItemByID(id int64) error {
	stmt, err := s.Db.Prepare("DELETE FROM items WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteItemByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("DeleteItemByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteItemByID: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("item %d: %w", id, storage.ErrNotFound)
	}

	return nil
}

// SearchItems assembles a query from the present filters and returns
// the matching rows.
//
// Each present filter narrows the result with an AND: substring match
// on name (LIKE), inclusive lower and upper price bounds. Absent
// filters add no predicate, so an empty filter returns every row.
// The filter values travel as ? arguments; only the fixed predicate
// text is concatenated.
func (s *SQLite) SearchItems(filter types.SearchFilter) ([]types.Item, error) {
	var sb strings.Builder
	sb.WriteString("SELECT id, name, price, is_offer FROM items WHERE 1=1")

	args := make([]any, 0, 3)

	if filter.Name != nil && *filter.Name != "" {
		sb.WriteString(" AND name LIKE ?")
		args = append(args, "%"+*filter.Name+"%")
	}
	if filter.PriceMin != nil {
		sb.WriteString(" AND price >= ?")
		args = append(args, *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		sb.WriteString(" AND price <= ?")
		args = append(args, *filter.PriceMax)
	}

	sb.WriteString(" ORDER BY id")

	rows, err := s.Db.Query(sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("SearchItems: query: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// CreateUser inserts a new row into the users table and returns the
// auto-generated primary key. The UNIQUE constraints on username and
// email are the single authority on duplicates; a violation surfaces
// as storage.ErrDuplicate.
func (s *SQLite) CreateUser(user types.User) (int64, error) {
	stmt, err := s.Db.Prepare(
		"INSERT INTO users (username, email, full_name) VALUES (?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("CreateUser: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(user.Username, user.Email, user.FullName)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) &&
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return 0, fmt.Errorf("user %q: %w", user.Username, storage.ErrDuplicate)
		}
		return 0, fmt.Errorf("CreateUser: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateUser: last insert id: %w", err)
	}

	return lastID, nil
}

// scanItem reads one item row, converting a NULL is_offer into a nil
// pointer.
func scanItem(row *sql.Row) (types.Item, error) {
	var item types.Item
	var isOffer sql.NullBool

	if err := row.Scan(&item.ID, &item.Name, &item.Price, &isOffer); err != nil {
		return types.Item{}, err
	}
	if isOffer.Valid {
		item.IsOffer = &isOffer.Bool
	}

	return item, nil
}

// collectItems drains a multi-row cursor into a slice. Returns an
// empty (non-nil) slice so the JSON encoding is [] rather than null.
func collectItems(rows *sql.Rows) ([]types.Item, error) {
	items := make([]types.Item, 0)

	for rows.Next() {
		var item types.Item
		var isOffer sql.NullBool

		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &isOffer); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if isOffer.Valid {
			item.IsOffer = &isOffer.Bool
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return items, nil
}
