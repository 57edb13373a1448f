package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/recipe-search/model"
)

func TestNewRecipeStore(t *testing.T) {
	recipes := []model.Recipe{
		{ID: "a", Title: "Første", Category: "Middag"},
		{ID: "b", Title: "Andre", Category: "Dessert"},
		{ID: "a", Title: "Duplikat", Category: "Middag"},
		{ID: "c", Title: "Tredje", Category: "Middag"},
	}

	rs, duplicates := NewRecipeStore(recipes)

	assert.Equal(t, []string{"a"}, duplicates)
	assert.Equal(t, 3, rs.Len())

	first, ok := rs.Get("a")
	require.True(t, ok)
	assert.Equal(t, "Første", first.Title)

	_, ok = rs.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b", "c"}, []string{rs.All()[0].ID, rs.All()[1].ID, rs.All()[2].ID})
}

func TestRecipeStore_Categories(t *testing.T) {
	rs, _ := NewRecipeStore([]model.Recipe{
		{ID: "1", Category: "Middag"},
		{ID: "2", Category: "Dessert"},
		{ID: "3", Category: "Middag"},
		{ID: "4"},
	})

	assert.Equal(t, []string{"Middag", "Dessert"}, rs.Categories())
}

func TestRecipeStore_Empty(t *testing.T) {
	rs, duplicates := NewRecipeStore(nil)
	assert.Nil(t, duplicates)
	assert.Equal(t, 0, rs.Len())
	assert.Empty(t, rs.Categories())
}
