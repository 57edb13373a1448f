package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookingTime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want CookingTime
	}{
		{"text", `{"time":"45 min"}`, TimeText("45 min")},
		{"number", `{"time":90}`, TimeMinutes(90)},
		{"fractional number", `{"time":12.5}`, TimeMinutes(12.5)},
		{"null", `{"time":null}`, CookingTime{}},
		{"missing", `{}`, CookingTime{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Recipe
			require.NoError(t, json.Unmarshal([]byte(tt.json), &r))
			assert.Equal(t, tt.want, r.Time)
		})
	}
}

func TestCookingTime_UnmarshalJSONRejectsOtherTypes(t *testing.T) {
	var r Recipe
	err := json.Unmarshal([]byte(`{"time":["45 min"]}`), &r)
	assert.Error(t, err)
}

func TestCookingTime_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Recipe{ID: "1", Title: "Laks", Category: "middag", Time: TimeMinutes(30)})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"time":30`)

	data, err = json.Marshal(Recipe{ID: "1", Title: "Laks", Category: "middag", Time: TimeText("1 time")})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"time":"1 time"`)

	data, err = json.Marshal(Recipe{ID: "1", Title: "Laks", Category: "middag"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"time"`)
}

func TestRecipe_IngredientNames(t *testing.T) {
	r := Recipe{
		Ingredients: []IngredientGroup{
			{Title: "Deig", Ingredients: []Ingredient{{Name: "Mel", Quantity: "500 g"}, {Name: "Gjær"}}},
			{Title: "Fyll", Ingredients: []Ingredient{{Name: "Ost"}}},
			{Title: "Tom"},
		},
	}
	assert.Equal(t, []string{"Mel", "Gjær", "Ost"}, r.IngredientNames())
	assert.Empty(t, Recipe{}.IngredientNames())
}
