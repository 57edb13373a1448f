package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gcbaptista/recipe-search/model"
	"github.com/gcbaptista/recipe-search/services"
)

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		name string
		time model.CookingTime
		want int
	}{
		{"empty", model.CookingTime{}, 0},
		{"minutes", model.TimeText("45 min"), 45},
		{"minutes long form", model.TimeText("90 minutter"), 90},
		{"hour and minutes", model.TimeText("1 time 30 min"), 90},
		{"hours plural", model.TimeText("2 timer"), 120},
		{"no space", model.TimeText("20min"), 20},
		{"unparseable", model.TimeText("en halvtime"), 0},
		{"capitalized hour is not matched", model.TimeText("1 Time"), 0},
		{"numeric", model.TimeMinutes(40), 40},
		{"numeric rounds half up", model.TimeMinutes(12.5), 13},
		{"numeric rounds down", model.TimeMinutes(12.4), 12},
		{"numeric zero", model.TimeMinutes(0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMinutes(tt.time))
		})
	}
}

func TestMatchesTimeBucket(t *testing.T) {
	tests := []struct {
		minutes int
		bucket  services.TimeBucket
		want    bool
	}{
		{0, services.TimeQuick, true},
		{30, services.TimeQuick, true},
		{31, services.TimeQuick, false},
		{30, services.TimeMedium, false},
		{31, services.TimeMedium, true},
		{60, services.TimeMedium, true},
		{61, services.TimeMedium, false},
		{60, services.TimeLong, false},
		{61, services.TimeLong, true},
		{500, services.TimeBucket("forever"), true},
	}

	for _, tt := range tests {
		got := matchesTimeBucket(tt.minutes, tt.bucket)
		assert.Equal(t, tt.want, got, "matchesTimeBucket(%d, %q)", tt.minutes, tt.bucket)
	}
}

func TestRecipeMatchesFilters(t *testing.T) {
	recipe := &model.Recipe{ID: "1", Category: "middag", Time: model.TimeText("45 min")}

	assert.True(t, recipeMatchesFilters(recipe, services.Filters{}))
	assert.True(t, recipeMatchesFilters(recipe, services.Filters{Category: "middag"}))
	assert.False(t, recipeMatchesFilters(recipe, services.Filters{Category: "Middag"}))
	assert.True(t, recipeMatchesFilters(recipe, services.Filters{Time: services.TimeMedium}))
	assert.False(t, recipeMatchesFilters(recipe, services.Filters{Time: services.TimeQuick}))
	assert.False(t, recipeMatchesFilters(recipe, services.Filters{Time: services.TimeLong}))
	assert.False(t, recipeMatchesFilters(recipe, services.Filters{Category: "dessert", Time: services.TimeMedium}))
}
