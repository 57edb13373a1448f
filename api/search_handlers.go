package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gcbaptista/recipe-search/model"
	"github.com/gcbaptista/recipe-search/services"
)

// SearchHandler handles GET /search?q=&category=&time=
func (api *API) SearchHandler(c *gin.Context) {
	query := services.SearchQuery{
		QueryString: c.Query("q"),
		Filters: services.Filters{
			Category: c.Query("category"),
			Time:     services.TimeBucket(c.Query("time")),
		},
	}

	if validation := ValidateSearchQuery(query, api.limits.MaxQueryLength); validation.HasErrors() {
		SendStructuredValidationError(c, validation)
		return
	}

	start := time.Now()
	result, cached := api.search(c, query)
	took := time.Since(start)

	api.metrics.ObserveSearch(took, result.Total, cached)
	api.analytics.TrackSearchEvent(model.SearchEvent{
		Query:        query.QueryString,
		Category:     query.Filters.Category,
		TimeBucket:   string(query.Filters.Time),
		ResponseTime: took,
		ResultCount:  result.Total,
		Generation:   result.Generation,
		Cached:       cached,
	})

	c.JSON(http.StatusOK, result)
}

// search answers from the result cache when one is configured.
func (api *API) search(c *gin.Context, query services.SearchQuery) (services.SearchResult, bool) {
	if api.cache == nil {
		return api.engine.Search(query), false
	}

	generation := api.engine.Stats().Generation
	result, cached := api.cache.GetOrCompute(c.Request.Context(), generation, query, func() services.SearchResult {
		return api.engine.Search(query)
	})
	if cached {
		// Each response identifies its own query.
		result.QueryId = uuid.New().String()
	}
	return result, cached
}

// SuggestionsHandler handles GET /suggestions?q=&limit=
func (api *API) SuggestionsHandler(c *gin.Context) {
	limit, validation := ValidateSuggestionLimit(c.Query("limit"), api.limits.DefaultSuggestionLimit, api.limits.MaxSuggestionLimit)
	if validation.HasErrors() {
		SendStructuredValidationError(c, validation)
		return
	}

	suggestions := api.engine.Suggestions(c.Query("q"), limit)
	api.metrics.ObserveSuggestions()

	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
		"total":       len(suggestions),
	})
}
