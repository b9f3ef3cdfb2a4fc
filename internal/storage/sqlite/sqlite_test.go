package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/arnav-mehta/items-api/internal/config"
	"github.com/arnav-mehta/items-api/internal/storage"
	"github.com/arnav-mehta/items-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore opens a fresh database file in a per-test temp dir.
// New seeds 5 sample items and 3 sample users, so every test starts
// from that known state.
func newTestStore(t *testing.T) *SQLite {
	t.Helper()

	cfg := &config.Config{
		Env:         "dev",
		StoragePath: filepath.Join(t.TempDir(), "test.db"),
	}

	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Db.Close() })

	return s
}

func TestNew_SeedsSampleRows(t *testing.T) {
	s := newTestStore(t)

	items, err := s.GetItems()
	require.NoError(t, err)
	require.Len(t, items, 5)

	assert.Equal(t, "Laptop", items[0].Name)
	assert.Equal(t, 999.99, items[0].Price)
	require.NotNil(t, items[0].IsOffer)
	assert.True(t, *items[0].IsOffer)

	var userCount int
	require.NoError(t, s.Db.QueryRow("SELECT COUNT(*) FROM users").Scan(&userCount))
	assert.Equal(t, 3, userCount)
}

func TestSeed_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	cfg := &config.Config{Env: "dev", StoragePath: path}

	s1, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, s1.Db.Close())

	// Reopening the same file must not duplicate the samples.
	s2, err := New(cfg)
	require.NoError(t, err)
	defer s2.Db.Close()

	items, err := s2.GetItems()
	require.NoError(t, err)
	assert.Len(t, items, 5)
}

func TestCreateItem_AssignsFreshID(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateItem(types.Item{Name: "Webcam", Price: 59.99})
	require.NoError(t, err)
	assert.Equal(t, int64(6), id) // 5 seeded rows come first

	got, err := s.GetItemByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Webcam", got.Name)
	assert.Equal(t, 59.99, got.Price)
	assert.Nil(t, got.IsOffer) // omitted flag stays NULL, not false
}

func TestGetItemByID_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetItemByID(999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateItemByID(t *testing.T) {
	s := newTestStore(t)

	offer := false
	updated, err := s.UpdateItemByID(1, types.Item{
		Name:    "Laptop Pro",
		Price:   1299.99,
		IsOffer: &offer,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.ID)
	assert.Equal(t, "Laptop Pro", updated.Name)
	assert.Equal(t, 1299.99, updated.Price)
	require.NotNil(t, updated.IsOffer)
	assert.False(t, *updated.IsOffer)
}

func TestUpdateItemByID_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdateItemByID(999, types.Item{Name: "Ghost", Price: 1})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteItemByID(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.DeleteItemByID(2))

	_, err := s.GetItemByID(2)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	items, err := s.GetItems()
	require.NoError(t, err)
	assert.Len(t, items, 4)

	// Deleting again reports not found: zero rows affected.
	assert.ErrorIs(t, s.DeleteItemByID(2), storage.ErrNotFound)
}

func TestSearchItems(t *testing.T) {
	s := newTestStore(t)

	t.Run("no filters returns everything", func(t *testing.T) {
		items, err := s.SearchItems(types.SearchFilter{})
		require.NoError(t, err)
		assert.Len(t, items, 5)
	})

	t.Run("price bounds are inclusive", func(t *testing.T) {
		min, max := 100.0, 200.0
		items, err := s.SearchItems(types.SearchFilter{PriceMin: &min, PriceMax: &max})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Headphones", items[0].Name)

		// A bound equal to a price still matches.
		exact := 75.00
		items, err = s.SearchItems(types.SearchFilter{PriceMin: &exact, PriceMax: &exact})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Keyboard", items[0].Name)
	})

	t.Run("name substring match", func(t *testing.T) {
		name := "board"
		items, err := s.SearchItems(types.SearchFilter{Name: &name})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Keyboard", items[0].Name)
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		name := "o"
		min := 200.0
		items, err := s.SearchItems(types.SearchFilter{Name: &name, PriceMin: &min})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Laptop", items[0].Name)
		assert.Equal(t, "Monitor", items[1].Name)
	})

	t.Run("no match returns empty non-nil slice", func(t *testing.T) {
		name := "does-not-exist"
		items, err := s.SearchItems(types.SearchFilter{Name: &name})
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
}

func TestCreateUser(t *testing.T) {
	s := newTestStore(t)

	full := "Sam Lee"
	id, err := s.CreateUser(types.User{
		Username: "sam_lee",
		Email:    "sam@example.com",
		FullName: &full,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), id) // 3 seeded users come first
}

func TestCreateUser_Duplicate(t *testing.T) {
	s := newTestStore(t)

	// john_doe / john@example.com are seeded.
	_, err := s.CreateUser(types.User{Username: "john_doe", Email: "fresh@example.com"})
	assert.ErrorIs(t, err, storage.ErrDuplicate)

	_, err = s.CreateUser(types.User{Username: "fresh_name", Email: "john@example.com"})
	assert.ErrorIs(t, err, storage.ErrDuplicate)
}
