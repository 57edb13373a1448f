package engine

import (
	"fmt"
	"time"

	"github.com/gcbaptista/recipe-search/index"
	"github.com/gcbaptista/recipe-search/internal/search"
	"github.com/gcbaptista/recipe-search/model"
	"github.com/gcbaptista/recipe-search/services"
	"github.com/gcbaptista/recipe-search/store"
)

// Instance is one complete, immutable build: the recipe store, the inverted
// index over it and the search service reading both. It is never modified
// after buildInstance returns.
type Instance struct {
	RecipeStore   *store.RecipeStore
	InvertedIndex *index.InvertedIndex
	searcher      *search.Service
	generation    uint64
	builtAt       time.Time
}

// buildInstance indexes recipes. Duplicate IDs keep their first occurrence
// and are returned so the caller can report them.
func buildInstance(recipes []model.Recipe, generation uint64) (*Instance, []string, error) {
	recipeStore, duplicates := store.NewRecipeStore(recipes)
	invIndex := index.Build(recipeStore.All())

	searchService, err := search.NewService(invIndex, recipeStore)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create search service: %w", err)
	}

	return &Instance{
		RecipeStore:   recipeStore,
		InvertedIndex: invIndex,
		searcher:      searchService,
		generation:    generation,
		builtAt:       time.Now(),
	}, duplicates, nil
}

// Generation is the build number of this instance, starting at 1.
func (i *Instance) Generation() uint64 {
	return i.generation
}

// Stats reports the size of this instance.
func (i *Instance) Stats() services.IndexStats {
	return services.IndexStats{
		Stats:      i.InvertedIndex.Stats(),
		Generation: i.generation,
		BuiltAt:    i.builtAt,
	}
}
