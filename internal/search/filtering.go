package search

import (
	"math"
	"regexp"
	"strconv"

	"github.com/gcbaptista/recipe-search/model"
	"github.com/gcbaptista/recipe-search/services"
)

// hoursRegex matches "1 time", "2 timer" and "3timer".
var hoursRegex = regexp.MustCompile(`(\d+)\s*timer?`)

// minutesRegex matches "45 min", "10 minutter" and "5min".
var minutesRegex = regexp.MustCompile(`(\d+)\s*min`)

// ParseMinutes converts a cooking time to whole minutes.
// Numbers are rounded half up; text is scanned for the first hour and the first
// minute figure. Anything unparseable counts as 0 minutes.
func ParseMinutes(t model.CookingTime) int {
	if t.IsNumeric {
		return int(math.Floor(t.Minutes + 0.5))
	}
	if t.Text == "" {
		return 0
	}

	totalMinutes := 0
	if m := hoursRegex.FindStringSubmatch(t.Text); m != nil {
		if hours, err := strconv.Atoi(m[1]); err == nil {
			totalMinutes += hours * 60
		}
	}
	if m := minutesRegex.FindStringSubmatch(t.Text); m != nil {
		if minutes, err := strconv.Atoi(m[1]); err == nil {
			totalMinutes += minutes
		}
	}
	return totalMinutes
}

// matchesTimeBucket reports whether minutes fall into bucket.
// Unknown buckets do not filter.
func matchesTimeBucket(minutes int, bucket services.TimeBucket) bool {
	switch bucket {
	case services.TimeQuick:
		return minutes <= 30
	case services.TimeMedium:
		return minutes > 30 && minutes <= 60
	case services.TimeLong:
		return minutes > 60
	}
	return true
}

// recipeMatchesFilters checks a recipe against the category and time filters.
func recipeMatchesFilters(recipe *model.Recipe, filters services.Filters) bool {
	if filters.Category != "" && recipe.Category != filters.Category {
		return false
	}
	if filters.Time != "" && !matchesTimeBucket(ParseMinutes(recipe.Time), filters.Time) {
		return false
	}
	return true
}
