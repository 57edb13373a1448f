package index

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/recipe-search/model"
)

func TestField_Weight(t *testing.T) {
	tests := []struct {
		field Field
		want  float64
	}{
		{FieldTitle, 10},
		{FieldCategory, 8},
		{FieldKeywords, 6},
		{FieldIngredients, 6},
		{FieldDescription, 5},
		{FieldLongDescription, 4},
		{FieldSteps, 3},
		{Field("tips"), 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.field.Weight())
		})
	}
}

func TestBuild_AccumulatesScoresAndFields(t *testing.T) {
	recipe := model.Recipe{
		ID:          "r1",
		Title:       "Laks med laks",
		Category:    "Middag",
		Keywords:    []string{"laks", "fisk"},
		Description: "Enkel laks",
		Ingredients: []model.IngredientGroup{
			{Ingredients: []model.Ingredient{{Name: "Laks", Quantity: "400 g"}}},
		},
		Steps: []model.Step{{Description: "Stek laksen"}},
	}

	ii := Build([]model.Recipe{recipe})

	postings, ok := ii.Lookup("laks")
	require.True(t, ok)
	entry := postings["r1"]
	require.NotNil(t, entry)

	// title twice (2x10) + keyword (6) + description (5) + ingredient (6)
	assert.Equal(t, 37.0, entry.Score)
	assert.Equal(t, []Field{FieldTitle, FieldKeywords, FieldDescription, FieldIngredients}, entry.Fields)
	assert.Equal(t, 27.0, entry.FieldScore())

	laksen, ok := ii.Lookup("laksen")
	require.True(t, ok)
	assert.Equal(t, 3.0, laksen["r1"].Score)
	assert.Equal(t, []Field{FieldSteps}, laksen["r1"].Fields)
}

func TestBuild_TermsComeFromIndexedFieldsOnly(t *testing.T) {
	recipes := []model.Recipe{
		{ID: "r1", Title: "Grønnsakssuppe", Category: "Suppe", Time: model.TimeText("45 min")},
		{ID: "r2", Title: "Å", Category: "x"},
	}

	ii := Build(recipes)
	terms := ii.Terms()
	sort.Strings(terms)

	// "Å" folds to "aa" which is long enough; "x" is dropped; time is not indexed.
	assert.Equal(t, []string{"aa", "groennsakssuppe", "suppe"}, terms)
	assert.Equal(t, Stats{TotalTerms: 3, TotalRecipes: 2, OriginalTermsCount: 3}, ii.Stats())
}

func TestBuild_MissingOptionalFields(t *testing.T) {
	ii := Build([]model.Recipe{{ID: "r1"}})
	assert.Empty(t, ii.Index)
	assert.Equal(t, 1, ii.Stats().TotalRecipes)
}

func TestBuild_OriginalTermsLastWriteWins(t *testing.T) {
	recipes := []model.Recipe{
		{ID: "r1", Title: "Pasta carbonara", Category: "Middag"},
		{ID: "r2", Title: "Rask pasta", Category: "Middag"},
	}

	ii := Build(recipes)
	assert.Equal(t, "Rask pasta", ii.OriginalTerms["pasta"])
	assert.Equal(t, "Middag", ii.OriginalTerms["middag"])
}

func TestBuild_Deterministic(t *testing.T) {
	recipes := []model.Recipe{
		{ID: "r1", Title: "Fiskesuppe", Category: "Suppe", Keywords: []string{"fisk"}},
		{ID: "r2", Title: "Fiskekaker", Category: "Middag", Steps: []model.Step{{Description: "Form kaker av fisk"}}},
	}

	assert.Equal(t, Build(recipes).Index, Build(recipes).Index)
}
