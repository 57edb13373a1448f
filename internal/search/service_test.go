package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/recipe-search/index"
	testfixtures "github.com/gcbaptista/recipe-search/internal/testing"
	"github.com/gcbaptista/recipe-search/model"
	"github.com/gcbaptista/recipe-search/services"
	"github.com/gcbaptista/recipe-search/store"
)

// --- Test Helpers ---

// setupTestSearchService indexes recipes and returns a search service over them.
func setupTestSearchService(t *testing.T, recipes []model.Recipe) *Service {
	t.Helper()
	recipeStore, _ := store.NewRecipeStore(recipes)
	service, err := NewService(index.Build(recipeStore.All()), recipeStore)
	require.NoError(t, err)
	return service
}

func hitIDs(hits []services.HitResult) []string {
	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.Recipe.ID)
	}
	return ids
}

// --- Test Cases ---

func TestNewService(t *testing.T) {
	recipeStore, _ := store.NewRecipeStore(nil)

	t.Run("valid initialization", func(t *testing.T) {
		_, err := NewService(index.Build(nil), recipeStore)
		assert.NoError(t, err)
	})

	t.Run("nil inverted index", func(t *testing.T) {
		_, err := NewService(nil, recipeStore)
		assert.Error(t, err)
	})

	t.Run("nil recipe store", func(t *testing.T) {
		_, err := NewService(index.Build(nil), nil)
		assert.Error(t, err)
	})
}

func TestSearch_EmptyQueries(t *testing.T) {
	service := setupTestSearchService(t, testfixtures.SampleRecipes())

	for _, query := range []string{"", "   ", "a", "!!"} {
		t.Run(query, func(t *testing.T) {
			hits := service.Search(query, services.Filters{})
			assert.NotNil(t, hits)
			assert.Empty(t, hits)
		})
	}
}

func TestSearch_NoRecipes(t *testing.T) {
	service := setupTestSearchService(t, nil)
	assert.Empty(t, service.Search("laks", services.Filters{}))
}

func TestSearch_ScoresExactFuzzyAndBonuses(t *testing.T) {
	service := setupTestSearchService(t, testfixtures.SampleRecipes())

	hits := service.Search("laks dill", services.Filters{})
	require.Len(t, hits, 1)

	hit := hits[0]
	assert.Equal(t, "laks-i-ovn", hit.Recipe.ID)
	// laks: exact 21 + fuzzy 6; dill: exact 11 + fuzzy 3; two terms +6; title +15.
	assert.Equal(t, 62.0, hit.Score)
	assert.Equal(t, []string{"laks", "dill"}, hit.MatchedTerms)
	assert.Equal(t, []index.Field{index.FieldTitle, index.FieldDescription, index.FieldIngredients}, hit.MatchedFields)
}

func TestSearch_TitleOutranksSteps(t *testing.T) {
	recipes := []model.Recipe{
		{ID: "title", Title: "Basilikum", Category: "urter"},
		{ID: "steps", Title: "Tomatsalat", Category: "salat", Steps: []model.Step{{Description: "Strø over basilikum"}}},
	}
	service := setupTestSearchService(t, recipes)

	hits := service.Search("basilikum", services.Filters{})
	require.NotEmpty(t, hits)
	assert.Equal(t, "title", hits[0].Recipe.ID)
	// exact 10 + fuzzy 3 + title bonus 15
	assert.Equal(t, 28.0, hits[0].Score)

	// The steps-only recipe scores 3, halved to 1.5, and falls under the threshold.
	assert.Equal(t, []string{"title"}, hitIDs(hits))
}

func TestSearch_StepsOnlyPenalty(t *testing.T) {
	recipes := []model.Recipe{
		{ID: "r1", Title: "Test", Category: "annet", Steps: []model.Step{
			{Description: "Brun smør i panne"},
			{Description: "Brun løk"},
		}},
	}
	service := setupTestSearchService(t, recipes)

	hits := service.Search("brun panne", services.Filters{})
	require.Len(t, hits, 1)
	// 3 + 3 exact, two terms +6, halved for steps-only matches.
	assert.Equal(t, 6.0, hits[0].Score)
	assert.Equal(t, []index.Field{index.FieldSteps}, hits[0].MatchedFields)
}

func TestSearch_CaseAndDiacriticInvariance(t *testing.T) {
	service := setupTestSearchService(t, testfixtures.SampleRecipes())

	base := service.Search("Grønnsaker", services.Filters{})
	require.NotEmpty(t, base)

	assert.Equal(t, base, service.Search("GRØNNSAKER", services.Filters{}))
	assert.Equal(t, base, service.Search("grønnsaker", services.Filters{}))
	assert.Equal(t, hitIDs(base), hitIDs(service.Search("gronnsaker", services.Filters{})))
}

func TestSearch_CategoryFilter(t *testing.T) {
	service := setupTestSearchService(t, testfixtures.SampleRecipes())

	hits := service.Search("middag", services.Filters{Category: "middag"})
	require.NotEmpty(t, hits)
	for _, hit := range hits {
		assert.Equal(t, "middag", hit.Recipe.Category)
	}
	assert.ElementsMatch(t, []string{"laks-i-ovn", "kyllinggryte"}, hitIDs(hits))

	assert.Empty(t, service.Search("middag", services.Filters{Category: "Middag"}))
}

func TestSearch_TimeFilter(t *testing.T) {
	recipes := []model.Recipe{
		{ID: "medium", Title: "Gryte medium", Category: "middag", Time: model.TimeText("45 min")},
		{ID: "quick", Title: "Gryte rask", Category: "middag", Time: model.TimeText("20 min")},
		{ID: "long", Title: "Gryte lang", Category: "middag", Time: model.TimeText("2 timer")},
		{ID: "unknown", Title: "Gryte ukjent", Category: "middag"},
	}
	service := setupTestSearchService(t, recipes)

	tests := []struct {
		bucket services.TimeBucket
		want   []string
	}{
		{services.TimeQuick, []string{"quick", "unknown"}},
		{services.TimeMedium, []string{"medium"}},
		{services.TimeLong, []string{"long"}},
		{"", []string{"long", "medium", "quick", "unknown"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.bucket), func(t *testing.T) {
			hits := service.Search("gryte", services.Filters{Time: tt.bucket})
			assert.ElementsMatch(t, tt.want, hitIDs(hits))
		})
	}
}

func TestSearch_FuzzyBoundary(t *testing.T) {
	longTerm := strings.Repeat("a", 100)
	recipes := []model.Recipe{
		{ID: "pasta", Title: "Pasta", Category: "middag"},
		{ID: "bryst", Title: "Kyllingbryst", Category: "middag"},
		{ID: "long", Title: longTerm, Category: "middag"},
	}
	service := setupTestSearchService(t, recipes)

	t.Run("similarity 0.80 does not match", func(t *testing.T) {
		assert.Empty(t, service.Search("pesta", services.Filters{}))
		assert.Empty(t, service.Search(strings.Repeat("b", 20)+strings.Repeat("a", 80), services.Filters{}))
	})

	t.Run("similarity 0.81 matches", func(t *testing.T) {
		hits := service.Search(strings.Repeat("b", 19)+strings.Repeat("a", 81), services.Filters{})
		require.Len(t, hits, 1)
		assert.Equal(t, "long", hits[0].Recipe.ID)
		// floor(10 * 0.3 * 0.81) + title bonus
		assert.Equal(t, 17.0, hits[0].Score)
	})

	t.Run("one typo in a long word", func(t *testing.T) {
		hits := service.Search("kyllingbrys", services.Filters{})
		require.Len(t, hits, 1)
		assert.Equal(t, "bryst", hits[0].Recipe.ID)
		assert.Equal(t, 17.0, hits[0].Score)
		assert.Equal(t, []string{"kyllingbrys"}, hits[0].MatchedTerms)
	})

	t.Run("short tokens never match fuzzily", func(t *testing.T) {
		assert.Empty(t, service.Search("paa", services.Filters{}))
	})
}

func TestSearch_TruncatesAndOrders(t *testing.T) {
	service := setupTestSearchService(t, testfixtures.NumberedRecipes(30, "Taco"))

	hits := service.Search("taco", services.Filters{})
	require.Len(t, hits, MaxResults)

	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
	// Equal scores fall back to title order.
	assert.Equal(t, "recipe-00", hits[0].Recipe.ID)
	assert.Equal(t, "recipe-19", hits[MaxResults-1].Recipe.ID)
}

func TestSearch_RanksByScoreThenTitle(t *testing.T) {
	recipes := []model.Recipe{
		{ID: "b", Title: "Burger", Category: "middag", Keywords: []string{"burger"}},
		{ID: "a", Title: "Burger", Category: "lunsj"},
		{ID: "c", Title: "Alt om burger", Category: "lunsj"},
	}
	service := setupTestSearchService(t, recipes)

	hits := service.Search("burger", services.Filters{})
	// "b" also matches in keywords; "a" and "c" tie on score and sort by title.
	assert.Equal(t, []string{"b", "c", "a"}, hitIDs(hits))
}

func TestSearch_SkipsStaleIndexEntries(t *testing.T) {
	recipes := testfixtures.SampleRecipes()
	ghost := model.Recipe{ID: "ghost", Title: "Laks spøkelse", Category: "middag"}

	// The index knows about a recipe the live store does not.
	recipeStore, _ := store.NewRecipeStore(recipes)
	service, err := NewService(index.Build(append(recipes, ghost)), recipeStore)
	require.NoError(t, err)

	hits := service.Search("laks", services.Filters{})
	assert.Equal(t, []string{"laks-i-ovn"}, hitIDs(hits))
}

func TestSearch_Deterministic(t *testing.T) {
	first := setupTestSearchService(t, testfixtures.SampleRecipes())
	second := setupTestSearchService(t, testfixtures.SampleRecipes())

	for _, query := range []string{"suppe", "løk smør", "middag kylling", "grønnsaker", "ovn"} {
		assert.Equal(t, first.Search(query, services.Filters{}), second.Search(query, services.Filters{}), query)
	}
}

func TestSearch_EveryTitleTokenFindsItsRecipe(t *testing.T) {
	recipes := testfixtures.SampleRecipes()
	service := setupTestSearchService(t, recipes)

	for _, recipe := range recipes {
		hits := service.Search(recipe.Title, services.Filters{})
		assert.Contains(t, hitIDs(hits), recipe.ID, "title %q", recipe.Title)
	}
}

func TestService_Stats(t *testing.T) {
	service := setupTestSearchService(t, testfixtures.SampleRecipes())
	stats := service.Stats()

	assert.Equal(t, 5, stats.TotalRecipes)
	assert.Positive(t, stats.TotalTerms)
	assert.Equal(t, stats.TotalTerms, stats.OriginalTermsCount)
}
