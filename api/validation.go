package api

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gcbaptista/recipe-search/services"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateSearchQuery checks the query length and the time bucket.
// An empty query is valid and simply matches nothing.
func ValidateSearchQuery(query services.SearchQuery, maxQueryLength int) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if maxQueryLength > 0 && utf8.RuneCountInString(query.QueryString) > maxQueryLength {
		result.AddError("q", fmt.Sprintf("Query cannot be longer than %d characters", maxQueryLength))
	}

	if query.Filters.Time != "" && !query.Filters.Time.IsValid() {
		result.AddError("time", fmt.Sprintf("Unknown time bucket '%s' (must be one of %s, %s, %s)",
			query.Filters.Time, services.TimeQuick, services.TimeMedium, services.TimeLong))
	}

	if strings.TrimSpace(query.Filters.Category) != query.Filters.Category {
		result.AddError("category", "Category cannot have leading or trailing whitespace")
	}

	return result
}

// ValidateSuggestionLimit parses the optional limit parameter. An empty value
// yields defaultLimit.
func ValidateSuggestionLimit(raw string, defaultLimit, maxLimit int) (int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	if raw == "" {
		return defaultLimit, result
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		result.AddError("limit", "Limit must be an integer")
		return 0, result
	}
	if limit < 1 || limit > maxLimit {
		result.AddError("limit", fmt.Sprintf("Limit must be between 1 and %d", maxLimit))
		return 0, result
	}
	return limit, result
}

// ValidateID validates a path identifier such as a recipe or job ID
func ValidateID(field, id string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if id == "" {
		result.AddError(field, "ID is required")
		return result
	}

	if strings.TrimSpace(id) != id {
		result.AddError(field, "ID cannot have leading or trailing whitespace")
	}

	return result
}
