package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/recipe-search/config"
	"github.com/gcbaptista/recipe-search/internal/analytics"
	"github.com/gcbaptista/recipe-search/internal/cache"
	"github.com/gcbaptista/recipe-search/internal/metrics"
	"github.com/gcbaptista/recipe-search/services"
)

const serviceName = "recipe-search"

// Dependencies are the collaborators of the API. Only Engine is required.
type Dependencies struct {
	Engine    services.RecipeIndex
	Source    services.RecipeSource // Used by POST /reload; nil disables reloads
	Analytics *analytics.Service
	Cache     *cache.QueryCache
	Metrics   *metrics.Metrics
	Search    config.SearchConfig
}

// API holds dependencies for API handlers.
type API struct {
	engine    services.RecipeIndex
	source    services.RecipeSource
	analytics *analytics.Service
	cache     *cache.QueryCache
	metrics   *metrics.Metrics
	limits    config.SearchConfig
}

// NewAPI creates a new API handler structure. Missing limits fall back to
// the configuration defaults and a missing analytics service is created.
func NewAPI(deps Dependencies) *API {
	limits := deps.Search
	defaults := config.DefaultConfig().Search
	if limits.DefaultSuggestionLimit <= 0 {
		limits.DefaultSuggestionLimit = defaults.DefaultSuggestionLimit
	}
	if limits.MaxSuggestionLimit < limits.DefaultSuggestionLimit {
		limits.MaxSuggestionLimit = max(defaults.MaxSuggestionLimit, limits.DefaultSuggestionLimit)
	}

	analyticsService := deps.Analytics
	if analyticsService == nil {
		analyticsService = analytics.NewService(deps.Engine, "")
	}

	return &API{
		engine:    deps.Engine,
		source:    deps.Source,
		analytics: analyticsService,
		cache:     deps.Cache,
		metrics:   deps.Metrics,
		limits:    limits,
	}
}

// SetupRoutes defines all the API routes of the recipe search service.
// metricsPath is only used when the API has metrics.
func SetupRoutes(router *gin.Engine, apiHandler *API, metricsPath string) {
	router.GET("/health", apiHandler.HealthCheckHandler)

	router.GET("/search", apiHandler.SearchHandler)
	router.GET("/suggestions", apiHandler.SuggestionsHandler)

	router.GET("/stats", apiHandler.GetStatsHandler)
	router.GET("/categories", apiHandler.ListCategoriesHandler)
	router.GET("/recipes/:recipeId", apiHandler.GetRecipeHandler)

	router.POST("/reload", apiHandler.ReloadHandler)
	router.GET("/jobs/:jobId", apiHandler.GetJobHandler)

	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	if apiHandler.metrics != nil && metricsPath != "" {
		router.GET(metricsPath, gin.WrapH(apiHandler.metrics.Handler()))
	}
}

// NewRouter creates a gin engine with the standard middleware stack and all routes.
func NewRouter(apiHandler *API, maxBodyBytes int64, metricsPath string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(RequestLoggerMiddleware())
	router.Use(apiHandler.metrics.GinMiddleware())
	router.Use(CORSMiddleware())
	if maxBodyBytes > 0 {
		router.Use(RequestSizeLimitMiddleware(maxBodyBytes))
	}

	SetupRoutes(router, apiHandler, metricsPath)
	return router
}

// HealthCheckHandler reports liveness and the generation being served
func (api *API) HealthCheckHandler(c *gin.Context) {
	stats := api.engine.Stats()
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"service":    serviceName,
		"recipes":    stats.TotalRecipes,
		"generation": stats.Generation,
		"timestamp":  time.Now().Unix(),
	})
}

// GetStatsHandler returns statistics of the live index
func (api *API) GetStatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.engine.Stats())
}

// ListCategoriesHandler returns the distinct recipe categories
func (api *API) ListCategoriesHandler(c *gin.Context) {
	categories := api.engine.Categories()
	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"total":      len(categories),
	})
}

// GetRecipeHandler returns one recipe by ID
func (api *API) GetRecipeHandler(c *gin.Context) {
	recipeID := c.Param("recipeId")
	if validation := ValidateID("recipeId", recipeID); validation.HasErrors() {
		SendStructuredValidationError(c, validation)
		return
	}

	recipe, err := api.engine.GetRecipe(recipeID)
	if err != nil {
		SendErrorFromErr(c, "get recipe", err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}
