package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrRecipeNotFound is returned when a recipe is not in the current index
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoRecipes is returned when a recipe source yields nothing to index
	ErrNoRecipes = errors.New("no recipes loaded")
)

// RecipeNotFoundError represents a recipe not found error with context
type RecipeNotFoundError struct {
	RecipeID string
}

func (e *RecipeNotFoundError) Error() string {
	return fmt.Sprintf("recipe with ID '%s' not found", e.RecipeID)
}

func (e *RecipeNotFoundError) Is(target error) bool {
	return target == ErrRecipeNotFound
}

// NewRecipeNotFoundError creates a new RecipeNotFoundError
func NewRecipeNotFoundError(recipeID string) *RecipeNotFoundError {
	return &RecipeNotFoundError{RecipeID: recipeID}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// EmptySourceError reports a recipe source that produced no usable recipes.
type EmptySourceError struct {
	Source string
}

func (e *EmptySourceError) Error() string {
	if e.Source == "" {
		return "no recipes loaded"
	}
	return fmt.Sprintf("no recipes loaded from '%s'", e.Source)
}

func (e *EmptySourceError) Is(target error) bool {
	return target == ErrNoRecipes
}

// NewEmptySourceError creates a new EmptySourceError
func NewEmptySourceError(source string) *EmptySourceError {
	return &EmptySourceError{Source: source}
}
