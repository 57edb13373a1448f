package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Recipe is a single searchable document.
// ID, Title and Category are expected to be present; every other field is optional
// and treated as empty when missing.
type Recipe struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Category        string            `json:"category"`
	Keywords        []string          `json:"keywords,omitempty"`
	Description     string            `json:"description,omitempty"`
	LongDescription string            `json:"longDescription,omitempty"`
	Ingredients     []IngredientGroup `json:"ingredients,omitempty"`
	Steps           []Step            `json:"steps,omitempty"`
	Time            CookingTime       `json:"time,omitzero"`
}

// IngredientGroup is a titled list of ingredients, e.g. "Saus".
type IngredientGroup struct {
	Title       string       `json:"title,omitempty"`
	Ingredients []Ingredient `json:"ingredients"`
}

// Ingredient is a single ingredient line.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
}

// Step is a single preparation step.
type Step struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description"`
}

// IngredientNames returns every ingredient name across all groups, in order.
func (r Recipe) IngredientNames() []string {
	names := make([]string, 0)
	for _, group := range r.Ingredients {
		for _, ingredient := range group.Ingredients {
			names = append(names, ingredient.Name)
		}
	}
	return names
}

// CookingTime holds a recipe's preparation time as it was supplied:
// either free text ("45 min", "1 time 30 min") or a number of minutes.
type CookingTime struct {
	Text      string
	Minutes   float64
	IsNumeric bool
}

// TimeText returns a textual cooking time.
func TimeText(text string) CookingTime {
	return CookingTime{Text: text}
}

// TimeMinutes returns a numeric cooking time in minutes.
func TimeMinutes(minutes float64) CookingTime {
	return CookingTime{Minutes: minutes, IsNumeric: true}
}

// IsZero reports whether no time was supplied. Used by encoding/json for omitzero.
func (t CookingTime) IsZero() bool {
	if t.IsNumeric {
		return t.Minutes == 0
	}
	return t.Text == ""
}

// MarshalJSON encodes the time in the same shape it was decoded from.
func (t CookingTime) MarshalJSON() ([]byte, error) {
	if t.IsNumeric {
		return []byte(strconv.FormatFloat(t.Minutes, 'f', -1, 64)), nil
	}
	return json.Marshal(t.Text)
}

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (t *CookingTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = CookingTime{}
		return nil
	}

	if data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("failed to decode cooking time: %w", err)
		}
		*t = TimeText(text)
		return nil
	}

	var minutes float64
	if err := json.Unmarshal(data, &minutes); err != nil {
		return fmt.Errorf("cooking time must be a string or a number: %w", err)
	}
	*t = TimeMinutes(minutes)
	return nil
}

// String returns the time as display text.
func (t CookingTime) String() string {
	if t.IsNumeric {
		return strconv.FormatFloat(t.Minutes, 'f', -1, 64) + " min"
	}
	return t.Text
}
