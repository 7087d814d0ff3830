package store

import (
	"database/sql"
	"testing"

	"github.com/davlatp7-commits/render-restaurant/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// newTestStore opens an in-memory database pinned to a single connection so
// every query sees the same memory store.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	s.DB.SetMaxOpenConns(1)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.InitSchema())
	return s
}

func mustCreateDish(t *testing.T, s *Store, name string, categoryID sql.NullInt64) *models.Dish {
	t.Helper()

	dish := &models.Dish{
		Name:       name,
		Price:      decimal.NewFromInt(10),
		Available:  true,
		CategoryID: categoryID,
	}
	require.NoError(t, s.CreateDish(dish))
	require.NotZero(t, dish.ID)
	return dish
}
