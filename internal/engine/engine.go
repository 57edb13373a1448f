package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/recipe-search/internal/errors"
	"github.com/gcbaptista/recipe-search/internal/jobs"
	"github.com/gcbaptista/recipe-search/internal/logger"
	"github.com/gcbaptista/recipe-search/internal/metrics"
	"github.com/gcbaptista/recipe-search/model"
	"github.com/gcbaptista/recipe-search/services"
)

const defaultJobWorkers = 1

// Options tune an Engine. The zero value is usable.
type Options struct {
	Metrics    *metrics.Metrics
	JobWorkers int
}

// Engine serves searches from the current Instance and replaces it as a whole
// on reload. Readers load the instance pointer once per call, so every call
// sees exactly one complete build.
// It implements the services.RecipeIndex interface.
type Engine struct {
	current    atomic.Pointer[Instance]
	buildMu    sync.Mutex // Serializes builds so generations are assigned in swap order
	generation uint64     // Guarded by buildMu
	jobManager *jobs.Manager
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewEngine builds the first index generation from recipes.
func NewEngine(recipes []model.Recipe, opts Options) (*Engine, error) {
	workers := opts.JobWorkers
	if workers <= 0 {
		workers = defaultJobWorkers
	}

	e := &Engine{
		jobManager: jobs.NewManager(workers, opts.Metrics),
		metrics:    opts.Metrics,
		logger:     logger.WithComponent("engine"),
	}
	if _, err := e.rebuild(recipes); err != nil {
		e.jobManager.Stop()
		return nil, err
	}
	e.jobManager.Start()
	return e, nil
}

// Close stops background jobs.
func (e *Engine) Close() {
	e.jobManager.Stop()
}

// instance returns the live build.
func (e *Engine) instance() *Instance {
	return e.current.Load()
}

// Reload builds a new instance from recipes and swaps it in.
// Queries already running finish against the previous instance.
func (e *Engine) Reload(recipes []model.Recipe) services.IndexStats {
	stats, err := e.rebuild(recipes)
	if err != nil {
		// Building over an in-memory slice only fails on programming errors;
		// the previous instance keeps serving.
		e.logger.Error("reload failed, keeping previous index", "error", err)
		return e.Stats()
	}
	return stats
}

func (e *Engine) rebuild(recipes []model.Recipe) (services.IndexStats, error) {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	start := time.Now()
	instance, duplicates, err := buildInstance(recipes, e.generation+1)
	if err != nil {
		e.metrics.ObserveBuildFailure()
		return services.IndexStats{}, fmt.Errorf("failed to build index: %w", err)
	}
	e.generation++
	e.current.Store(instance)

	stats := instance.Stats()
	took := time.Since(start)
	for _, id := range duplicates {
		e.logger.Warn("duplicate recipe id ignored", "recipe_id", id)
	}
	e.logger.Info("index built",
		"generation", stats.Generation,
		"recipes", stats.TotalRecipes,
		"terms", stats.TotalTerms,
		"duration", took,
	)
	e.metrics.ObserveBuild(took, stats.TotalRecipes, stats.TotalTerms, stats.Generation)
	return stats, nil
}

// Search runs query against the live index.
func (e *Engine) Search(query services.SearchQuery) services.SearchResult {
	start := time.Now()
	instance := e.instance()

	hits := instance.searcher.Search(query.QueryString, query.Filters)

	return services.SearchResult{
		Hits:       hits,
		Total:      len(hits),
		Took:       time.Since(start).Milliseconds(),
		QueryId:    uuid.New().String(),
		Generation: instance.generation,
	}
}

// Suggestions returns autocomplete strings for query. A non-positive limit
// uses the default.
func (e *Engine) Suggestions(query string, limit int) []string {
	return e.instance().searcher.Suggestions(query, limit)
}

// Stats describes the live index.
func (e *Engine) Stats() services.IndexStats {
	return e.instance().Stats()
}

// Generation is the build number of the live index.
func (e *Engine) Generation() uint64 {
	return e.instance().generation
}

// GetRecipe returns a recipe of the live index by ID.
func (e *Engine) GetRecipe(id string) (*model.Recipe, error) {
	recipe, found := e.instance().RecipeStore.Get(id)
	if !found {
		return nil, errors.NewRecipeNotFoundError(id)
	}
	return recipe, nil
}

// Categories lists the distinct categories of the live index in first-seen order.
func (e *Engine) Categories() []string {
	return e.instance().RecipeStore.Categories()
}
