package search

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultSuggestionLimit is used when no positive limit is given.
	DefaultSuggestionLimit = 8
	minSuggestionQueryLen  = 2
)

// Suggestions returns up to limit distinct titles, categories, keywords and
// ingredient names containing query, case-insensitively. Shorter strings come
// first, then strings starting with the query, then lexicographic order.
func (s *Service) Suggestions(query string, limit int) []string {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSuggestionQueryLen {
		return []string{}
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	queryLower := strings.ToLower(query)
	seen := make(map[string]struct{})
	suggestions := make([]string, 0)

	add := func(candidate string) {
		if !strings.Contains(strings.ToLower(candidate), queryLower) {
			return
		}
		if _, exists := seen[candidate]; exists {
			return
		}
		seen[candidate] = struct{}{}
		suggestions = append(suggestions, candidate)
	}

	recipes := s.recipeStore.All()
	for _, recipe := range recipes {
		add(recipe.Title)
	}
	for _, recipe := range recipes {
		add(recipe.Category)
	}
	for _, recipe := range recipes {
		for _, keyword := range recipe.Keywords {
			add(keyword)
		}
	}
	for _, recipe := range recipes {
		for _, name := range recipe.IngredientNames() {
			add(name)
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		lenA, lenB := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
		if lenA != lenB {
			return lenA < lenB
		}
		prefixA := strings.HasPrefix(strings.ToLower(a), queryLower)
		prefixB := strings.HasPrefix(strings.ToLower(b), queryLower)
		if prefixA != prefixB {
			return prefixA
		}
		return a < b
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}
