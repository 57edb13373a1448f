package typoutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func termsOf(matches []FuzzyMatch) []string {
	terms := make([]string, 0, len(matches))
	for _, m := range matches {
		terms = append(terms, m.Term)
	}
	return terms
}

func TestTypoFinder_FindSimilar(t *testing.T) {
	indexed := []string{"kylling", "kyllingfilet", "kyllinger", "laks", "pasta", "pesta", "tomat", "tomater"}
	finder := NewTypoFinder(indexed, 0.8)

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"exact term included", "laks", []string{"laks"}},
		{"one edit in seven passes", "kyling", []string{"kylling"}},
		{"one edit in five does not pass", "pasta", []string{"pasta"}},
		{"plural within threshold", "tomate", []string{"tomat", "tomater"}},
		{"no match", "sjokolade", []string{}},
		{"empty term", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := termsOf(finder.FindSimilar(tt.term))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypoFinder_LengthFilterKeepsBoundary(t *testing.T) {
	long := strings.Repeat("a", 100)
	// Length ratio 81/100 survives the length filter and the real similarity check.
	shorter := strings.Repeat("a", 81)
	// Length ratio 80/100 can never exceed the threshold.
	tooShort := strings.Repeat("a", 80)

	finder := NewTypoFinder([]string{shorter, tooShort}, 0.8)
	matches := finder.FindSimilar(long)

	require.Len(t, matches, 1)
	assert.Equal(t, shorter, matches[0].Term)
	assert.InDelta(t, 0.81, matches[0].Similarity, 1e-12)
}

func TestTypoFinder_CachesResults(t *testing.T) {
	finder := NewTypoFinder([]string{"kylling"}, 0.8)

	first := finder.FindSimilar("kyling")
	second := finder.FindSimilar("kyling")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, finder.Len())
}
