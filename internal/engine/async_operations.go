package engine

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gcbaptista/recipe-search/internal/errors"
	"github.com/gcbaptista/recipe-search/model"
	"github.com/gcbaptista/recipe-search/services"
)

const reloadSteps = 2

// ReloadAsync loads recipes from source and rebuilds the index in a background
// job. It returns the job ID to poll with GetJob.
func (e *Engine) ReloadAsync(source services.RecipeSource) (string, error) {
	if source == nil {
		return "", fmt.Errorf("recipe source cannot be nil")
	}

	jobID := e.jobManager.CreateJob(model.JobTypeReload, map[string]string{
		"operation":           "reload",
		"previous_generation": strconv.FormatUint(e.Generation(), 10),
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeReloadJob(ctx, source, job.ID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start reload job: %w", err)
	}

	return jobID, nil
}

// executeReloadJob keeps the current index when loading fails or yields nothing.
func (e *Engine) executeReloadJob(ctx context.Context, source services.RecipeSource, jobID string) error {
	e.jobManager.UpdateJobProgress(jobID, 0, reloadSteps, "loading recipes")
	recipes, err := source.LoadRecipes(ctx)
	if err != nil {
		e.metrics.ObserveBuildFailure()
		return fmt.Errorf("failed to load recipes: %w", err)
	}
	if len(recipes) == 0 {
		e.metrics.ObserveBuildFailure()
		return errors.NewEmptySourceError("")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e.jobManager.UpdateJobProgress(jobID, 1, reloadSteps, fmt.Sprintf("indexing %d recipes", len(recipes)))
	stats, err := e.rebuild(recipes)
	if err != nil {
		return err
	}

	e.jobManager.SetJobMetadata(jobID, "generation", strconv.FormatUint(stats.Generation, 10))
	e.jobManager.SetJobMetadata(jobID, "recipes", strconv.Itoa(stats.TotalRecipes))
	e.jobManager.UpdateJobProgress(jobID, reloadSteps, reloadSteps, "index swapped")
	return nil
}

// GetJob returns the status of a background job.
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobManager.GetJob(jobID)
}
