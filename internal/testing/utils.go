// Package testing provides shared recipe fixtures for the search engine tests.
package testing

import (
	"fmt"

	"github.com/gcbaptista/recipe-search/model"
)

// SampleRecipes returns a small, varied recipe collection.
// Callers get a fresh copy and may modify it.
func SampleRecipes() []model.Recipe {
	return []model.Recipe{
		{
			ID:          "laks-i-ovn",
			Title:       "Laks i ovn",
			Category:    "middag",
			Keywords:    []string{"fisk", "sunn"},
			Description: "Saftig laks med sitron og dill.",
			Ingredients: []model.IngredientGroup{
				{Title: "Fisk", Ingredients: []model.Ingredient{
					{Name: "Laks", Quantity: "600 g"},
					{Name: "Sitron", Quantity: "1 stk"},
					{Name: "Dill", Quantity: "1 bunt"},
				}},
			},
			Steps: []model.Step{
				{Description: "Legg laksen i en ildfast form."},
				{Description: "Stek i ovnen på 200 grader."},
			},
			Time: model.TimeText("35 min"),
		},
		{
			ID:              "grønnsakssuppe",
			Title:           "Grønnsakssuppe",
			Category:        "suppe",
			Keywords:        []string{"grønnsaker", "vegetar"},
			Description:     "Varmende suppe med grønnsaker.",
			LongDescription: "En klassisk suppe som passer godt en kald høstdag.",
			Ingredients: []model.IngredientGroup{
				{Ingredients: []model.Ingredient{
					{Name: "Gulrot", Quantity: "3 stk"},
					{Name: "Løk", Quantity: "1 stk"},
					{Name: "Grønnsaksbuljong", Quantity: "1 l"},
				}},
			},
			Steps: []model.Step{
				{Description: "Kutt grønnsakene i biter."},
				{Description: "Kok alt i buljongen i 20 minutter."},
			},
			Time: model.TimeMinutes(45),
		},
		{
			ID:       "løksuppe",
			Title:    "Løksuppe",
			Category: "Lørdagsmiddag",
			Keywords: []string{"fransk"},
			Ingredients: []model.IngredientGroup{
				{Ingredients: []model.Ingredient{
					{Name: "Løk", Quantity: "1 kg"},
					{Name: "Smør", Quantity: "50 g"},
				}},
			},
			Steps: []model.Step{
				{Description: "Brun løken langsomt i smør."},
			},
			Time: model.TimeText("1 time 30 min"),
		},
		{
			ID:          "pannekaker",
			Title:       "Pannekaker",
			Category:    "dessert",
			Description: "Tynne pannekaker med syltetøy.",
			Ingredients: []model.IngredientGroup{
				{Ingredients: []model.Ingredient{
					{Name: "Mel", Quantity: "3 dl"},
					{Name: "Melk", Quantity: "6 dl"},
					{Name: "Egg", Quantity: "3 stk"},
				}},
			},
			Steps: []model.Step{
				{Description: "Visp sammen mel og melk."},
				{Description: "Stek tynne kaker i smør."},
			},
			Time: model.TimeText("25 min"),
		},
		{
			ID:       "kyllinggryte",
			Title:    "Kyllinggryte",
			Category: "middag",
			Keywords: []string{"kylling", "gryte"},
			Ingredients: []model.IngredientGroup{
				{Ingredients: []model.Ingredient{
					{Name: "Kyllingfilet", Quantity: "500 g"},
					{Name: "Kokosmelk", Quantity: "1 boks"},
				}},
			},
			Steps: []model.Step{
				{Description: "Brun kyllingen og tilsett kokosmelk."},
			},
			Time: model.TimeText("2 timer"),
		},
	}
}

// NumberedRecipes returns n recipes that all carry term in their title.
// Titles differ so ordering is fully determined.
func NumberedRecipes(n int, term string) []model.Recipe {
	recipes := make([]model.Recipe, 0, n)
	for i := 0; i < n; i++ {
		recipes = append(recipes, model.Recipe{
			ID:       fmt.Sprintf("recipe-%02d", i),
			Title:    fmt.Sprintf("%s nummer %02d", term, i),
			Category: "middag",
		})
	}
	return recipes
}
