package store

import (
	"github.com/gcbaptista/recipe-search/model"
)

// RecipeStore is the live recipe collection an index is built from.
// Like the index, it is immutable once constructed.
type RecipeStore struct {
	recipes []model.Recipe
	byID    map[string]int // Recipe ID to position in recipes
}

// NewRecipeStore copies recipes into a new store. When IDs repeat, the first
// occurrence wins and later ones are returned as duplicates.
func NewRecipeStore(recipes []model.Recipe) (*RecipeStore, []string) {
	rs := &RecipeStore{
		recipes: make([]model.Recipe, 0, len(recipes)),
		byID:    make(map[string]int, len(recipes)),
	}

	var duplicates []string
	for _, recipe := range recipes {
		if _, exists := rs.byID[recipe.ID]; exists {
			duplicates = append(duplicates, recipe.ID)
			continue
		}
		rs.byID[recipe.ID] = len(rs.recipes)
		rs.recipes = append(rs.recipes, recipe)
	}
	return rs, duplicates
}

// Get returns the recipe with the given ID.
func (rs *RecipeStore) Get(id string) (*model.Recipe, bool) {
	pos, ok := rs.byID[id]
	if !ok {
		return nil, false
	}
	return &rs.recipes[pos], true
}

// All returns the recipes in their original order. Callers must not modify the slice.
func (rs *RecipeStore) All() []model.Recipe {
	return rs.recipes
}

// Len returns the number of recipes.
func (rs *RecipeStore) Len() int {
	return len(rs.recipes)
}

// Categories returns the distinct categories in first-seen order.
func (rs *RecipeStore) Categories() []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, recipe := range rs.recipes {
		if _, ok := seen[recipe.Category]; ok || recipe.Category == "" {
			continue
		}
		seen[recipe.Category] = struct{}{}
		categories = append(categories, recipe.Category)
	}
	return categories
}
