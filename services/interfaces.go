package services

import (
	"context"
	"time"

	"github.com/gcbaptista/recipe-search/index"
	"github.com/gcbaptista/recipe-search/model"
)

// TimeBucket is a coarse cooking-time facet.
type TimeBucket string

const (
	TimeQuick  TimeBucket = "quick"  // 30 minutes or less
	TimeMedium TimeBucket = "medium" // more than 30, at most 60 minutes
	TimeLong   TimeBucket = "long"   // more than 60 minutes
)

// IsValid reports whether b is one of the known buckets.
func (b TimeBucket) IsValid() bool {
	switch b {
	case TimeQuick, TimeMedium, TimeLong:
		return true
	}
	return false
}

// Filters restricts which recipes may appear in search results.
// Empty fields do not filter.
type Filters struct {
	Category string     `json:"category,omitempty"` // Exact, case-sensitive match on the recipe category
	Time     TimeBucket `json:"time,omitempty"`
}

// HitResult represents a single recipe in the search results.
type HitResult struct {
	Recipe        *model.Recipe `json:"recipe"`
	Score         float64       `json:"score"`
	MatchedTerms  []string      `json:"matched_terms"`  // Query tokens that matched, in query order
	MatchedFields []index.Field `json:"matched_fields"` // Fields any matched term was found in
}

// SearchQuery is a full-text query with optional filters.
type SearchQuery struct {
	QueryString string  `json:"query"`
	Filters     Filters `json:"filters"`
}

// SearchResult wraps the hits of one query.
type SearchResult struct {
	Hits       []HitResult `json:"hits"`
	Total      int         `json:"total"`
	Took       int64       `json:"took"`     // milliseconds
	QueryId    string      `json:"query_id"` // unique UUID for this search query
	Generation uint64      `json:"generation"`
}

// IndexStats describes the currently served index.
type IndexStats struct {
	index.Stats
	Generation uint64    `json:"generation"`
	BuiltAt    time.Time `json:"built_at"`
}

// Searcher runs queries against an index.
type Searcher interface {
	Search(query SearchQuery) SearchResult
}

// Suggester produces autocomplete suggestions.
type Suggester interface {
	Suggestions(query string, limit int) []string
}

// RecipeSource supplies the recipe collection an index is built from.
type RecipeSource interface {
	LoadRecipes(ctx context.Context) ([]model.Recipe, error)
}

// RecipeReloader rebuilds the served index from a fresh recipe collection.
type RecipeReloader interface {
	Reload(recipes []model.Recipe) IndexStats
}

// ReloadScheduler rebuilds the index in the background and reports on it.
type ReloadScheduler interface {
	ReloadAsync(source RecipeSource) (string, error)
	GetJob(jobID string) (*model.Job, error)
}

// RecipeIndex is everything the API needs from the engine.
type RecipeIndex interface {
	Searcher
	Suggester
	RecipeReloader
	ReloadScheduler
	Stats() IndexStats
	GetRecipe(id string) (*model.Recipe, error)
	Categories() []string
}
