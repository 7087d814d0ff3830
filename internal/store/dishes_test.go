package store

import (
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleDishAvailabilityTwice(t *testing.T) {
	s := newTestStore(t)
	dish := mustCreateDish(t, s, "Borscht", sql.NullInt64{})

	require.NoError(t, s.ToggleDishAvailability(dish.ID))
	got, err := s.GetDishByID(dish.ID)
	require.NoError(t, err)
	assert.False(t, got.Available)

	require.NoError(t, s.ToggleDishAvailability(dish.ID))
	got, err = s.GetDishByID(dish.ID)
	require.NoError(t, err)
	assert.True(t, got.Available)
}

func TestToggleDishAvailabilityMissing(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.ToggleDishAvailability(999), sql.ErrNoRows)
}

func TestGetAvailableDishesFiltersByCategory(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateCategory("Soups"))
	soups, err := s.GetCategoryByName("Soups")
	require.NoError(t, err)

	inCategory := mustCreateDish(t, s, "Borscht", sql.NullInt64{Int64: int64(soups.ID), Valid: true})
	mustCreateDish(t, s, "Pelmeni", sql.NullInt64{})
	hidden := mustCreateDish(t, s, "Solyanka", sql.NullInt64{Int64: int64(soups.ID), Valid: true})
	require.NoError(t, s.ToggleDishAvailability(hidden.ID))

	dishes, err := s.GetAvailableDishes("Soups")
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	assert.Equal(t, inCategory.ID, dishes[0].ID)

	all, err := s.GetAvailableDishes("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetActiveCategories(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateCategory("Soups"))
	require.NoError(t, s.CreateCategory("Drinks"))
	soups, err := s.GetCategoryByName("Soups")
	require.NoError(t, err)

	mustCreateDish(t, s, "Borscht", sql.NullInt64{Int64: int64(soups.ID), Valid: true})

	active, err := s.GetActiveCategories()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Soups", active[0].Name)
}

func TestDeleteCategoryKeepsDishes(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateCategory("Soups"))
	soups, err := s.GetCategoryByName("Soups")
	require.NoError(t, err)

	catID := sql.NullInt64{Int64: int64(soups.ID), Valid: true}
	first := mustCreateDish(t, s, "Borscht", catID)
	second := mustCreateDish(t, s, "Solyanka", catID)

	require.NoError(t, s.DeleteCategory(soups.ID))

	for _, id := range []int{first.ID, second.ID} {
		dish, err := s.GetDishByID(id)
		require.NoError(t, err)
		assert.False(t, dish.CategoryID.Valid, "dish %d should have its category cleared", id)
	}

	categories, err := s.GetAllCategories()
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateCategory("Soups"))
	assert.Error(t, s.CreateCategory("Soups"))
}

func TestGetDishesByIDsSkipsDeleted(t *testing.T) {
	s := newTestStore(t)

	kept := mustCreateDish(t, s, "Borscht", sql.NullInt64{})
	deleted := mustCreateDish(t, s, "Pelmeni", sql.NullInt64{})
	require.NoError(t, s.DeleteDish(deleted.ID))

	dishes, err := s.GetDishesByIDs([]int{kept.ID, deleted.ID})
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	assert.Equal(t, kept.ID, dishes[0].ID)
}

func TestUpdateDishPrice(t *testing.T) {
	s := newTestStore(t)

	dish := mustCreateDish(t, s, "Borscht", sql.NullInt64{})
	dish.Price = decimal.RequireFromString("12.50")
	require.NoError(t, s.UpdateDish(dish))

	got, err := s.GetDishByID(dish.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("12.50")), "got price %s", got.Price)
}
