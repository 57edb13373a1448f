package index

import (
	"github.com/gcbaptista/recipe-search/internal/tokenizer"
	"github.com/gcbaptista/recipe-search/model"
)

// InvertedIndex maps a normalized term to the recipes containing it.
// It is built once by Build and never mutated afterwards, so any number of
// goroutines may read it without locking.
type InvertedIndex struct {
	Index map[string]PostingList

	// OriginalTerms maps a term to the raw field text it was last seen in.
	// Display aid only.
	OriginalTerms map[string]string

	recipeCount int
}

// Stats summarizes the size of an index.
type Stats struct {
	TotalTerms         int `json:"totalTerms"`
	TotalRecipes       int `json:"totalRecipes"`
	OriginalTermsCount int `json:"originalTermsCount"`
}

// Build indexes every recipe in order. Missing optional fields are skipped.
func Build(recipes []model.Recipe) *InvertedIndex {
	ii := &InvertedIndex{
		Index:         make(map[string]PostingList),
		OriginalTerms: make(map[string]string),
		recipeCount:   len(recipes),
	}

	for _, recipe := range recipes {
		ii.indexRecipe(recipe)
	}
	return ii
}

func (ii *InvertedIndex) indexRecipe(recipe model.Recipe) {
	ii.addText(recipe.Title, recipe.ID, FieldTitle)
	ii.addText(recipe.Category, recipe.ID, FieldCategory)

	for _, keyword := range recipe.Keywords {
		ii.addText(keyword, recipe.ID, FieldKeywords)
	}

	ii.addText(recipe.Description, recipe.ID, FieldDescription)
	ii.addText(recipe.LongDescription, recipe.ID, FieldLongDescription)

	for _, name := range recipe.IngredientNames() {
		ii.addText(name, recipe.ID, FieldIngredients)
	}

	for _, step := range recipe.Steps {
		ii.addText(step.Description, recipe.ID, FieldSteps)
	}
}

// addText tokenizes text and adds the field's weight for every token occurrence.
func (ii *InvertedIndex) addText(text, recipeID string, field Field) {
	if text == "" {
		return
	}

	weight := field.Weight()
	for _, token := range tokenizer.Tokenize(text) {
		postings, ok := ii.Index[token]
		if !ok {
			postings = make(PostingList)
			ii.Index[token] = postings
		}

		entry, ok := postings[recipeID]
		if !ok {
			entry = &PostingEntry{Fields: make([]Field, 0, 1)}
			postings[recipeID] = entry
		}

		entry.Score += weight
		entry.addField(field)

		ii.OriginalTerms[token] = text
	}
}

// Lookup returns the postings for an exact term.
func (ii *InvertedIndex) Lookup(term string) (PostingList, bool) {
	postings, ok := ii.Index[term]
	return postings, ok
}

// Terms returns every indexed term in no particular order.
func (ii *InvertedIndex) Terms() []string {
	terms := make([]string, 0, len(ii.Index))
	for term := range ii.Index {
		terms = append(terms, term)
	}
	return terms
}

// Stats returns term and recipe counts.
func (ii *InvertedIndex) Stats() Stats {
	return Stats{
		TotalTerms:         len(ii.Index),
		TotalRecipes:       ii.recipeCount,
		OriginalTermsCount: len(ii.OriginalTerms),
	}
}
