package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gcbaptista/recipe-search/internal/errors"
	"github.com/gcbaptista/recipe-search/internal/metrics"
	testfixtures "github.com/gcbaptista/recipe-search/internal/testing"
	"github.com/gcbaptista/recipe-search/model"
	"github.com/gcbaptista/recipe-search/services"
)

func newTestEngine(t *testing.T, recipes []model.Recipe) *Engine {
	t.Helper()
	e, err := NewEngine(recipes, Options{Metrics: metrics.New()})
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestNewEngine(t *testing.T) {
	e := newTestEngine(t, testfixtures.SampleRecipes())

	stats := e.Stats()
	assert.Equal(t, uint64(1), stats.Generation)
	assert.Equal(t, 5, stats.TotalRecipes)
	assert.Positive(t, stats.TotalTerms)
	assert.False(t, stats.BuiltAt.IsZero())
}

func TestNewEngine_EmptyCollection(t *testing.T) {
	e := newTestEngine(t, nil)

	result := e.Search(services.SearchQuery{QueryString: "laks"})
	assert.Empty(t, result.Hits)
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, e.Suggestions("laks", 8))
	assert.Equal(t, 0, e.Stats().TotalRecipes)
}

func TestNewEngine_DuplicateIDsKeepFirst(t *testing.T) {
	recipes := []model.Recipe{
		{ID: "1", Title: "Laks", Category: "middag"},
		{ID: "1", Title: "Torsk", Category: "middag"},
	}
	e := newTestEngine(t, recipes)

	assert.Equal(t, 1, e.Stats().TotalRecipes)
	recipe, err := e.GetRecipe("1")
	require.NoError(t, err)
	assert.Equal(t, "Laks", recipe.Title)
	assert.Empty(t, e.Search(services.SearchQuery{QueryString: "torsk"}).Hits)
}

func TestEngine_Search(t *testing.T) {
	e := newTestEngine(t, testfixtures.SampleRecipes())

	result := e.Search(services.SearchQuery{
		QueryString: "suppe",
		Filters:     services.Filters{Category: "suppe"},
	})

	require.Equal(t, 1, result.Total)
	assert.Equal(t, "grønnsakssuppe", result.Hits[0].Recipe.ID)
	assert.NotEmpty(t, result.QueryId)
	assert.Equal(t, uint64(1), result.Generation)

	other := e.Search(services.SearchQuery{QueryString: "suppe"})
	assert.NotEqual(t, result.QueryId, other.QueryId)
}

func TestEngine_Reload(t *testing.T) {
	e := newTestEngine(t, testfixtures.SampleRecipes())
	require.NotEmpty(t, e.Search(services.SearchQuery{QueryString: "laks"}).Hits)

	stats := e.Reload(testfixtures.NumberedRecipes(3, "Taco"))

	assert.Equal(t, uint64(2), stats.Generation)
	assert.Equal(t, 3, stats.TotalRecipes)
	assert.Equal(t, uint64(2), e.Generation())
	assert.Empty(t, e.Search(services.SearchQuery{QueryString: "laks"}).Hits)

	result := e.Search(services.SearchQuery{QueryString: "taco"})
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, uint64(2), result.Generation)

	_, err := e.GetRecipe("laks-i-ovn")
	assert.ErrorIs(t, err, apperrors.ErrRecipeNotFound)
}

func TestEngine_GetRecipe(t *testing.T) {
	e := newTestEngine(t, testfixtures.SampleRecipes())

	recipe, err := e.GetRecipe("pannekaker")
	require.NoError(t, err)
	assert.Equal(t, "Pannekaker", recipe.Title)

	_, err = e.GetRecipe("missing")
	assert.ErrorIs(t, err, apperrors.ErrRecipeNotFound)
	var notFound *apperrors.RecipeNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.RecipeID)
}

func TestEngine_CategoriesAndSuggestions(t *testing.T) {
	e := newTestEngine(t, testfixtures.SampleRecipes())

	assert.Equal(t, []string{"middag", "suppe", "Lørdagsmiddag", "dessert"}, e.Categories())
	assert.Equal(t, []string{"suppe", "Løksuppe"}, e.Suggestions("suppe", 2))
}

func TestEngine_ConcurrentReadersSeeOneGeneration(t *testing.T) {
	sample := testfixtures.SampleRecipes()
	numbered := testfixtures.NumberedRecipes(3, "Laks")
	idsOf := func(recipes []model.Recipe) map[string]bool {
		ids := make(map[string]bool, len(recipes))
		for _, recipe := range recipes {
			ids[recipe.ID] = true
		}
		return ids
	}
	// Odd generations serve the sample set, even ones the numbered set.
	odd, even := idsOf(sample), idsOf(numbered)

	e := newTestEngine(t, sample)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	errs := make(chan string, 100)

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				result := e.Search(services.SearchQuery{QueryString: "laks"})
				want := even
				if result.Generation%2 == 1 {
					want = odd
				}
				for _, hit := range result.Hits {
					if !want[hit.Recipe.ID] {
						select {
						case errs <- hit.Recipe.ID:
						default:
						}
					}
				}
			}
		}()
	}

	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			e.Reload(numbered)
		} else {
			e.Reload(sample)
		}
	}
	close(stop)
	wg.Wait()
	close(errs)

	for id := range errs {
		t.Errorf("recipe %q served from the wrong generation", id)
	}
	assert.Equal(t, uint64(21), e.Generation())
}
