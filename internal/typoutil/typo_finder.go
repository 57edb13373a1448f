package typoutil

import (
	"sort"
	"sync"
)

// FuzzyMatch is an indexed term whose similarity to a query term passed the threshold.
type FuzzyMatch struct {
	Term       string
	Similarity float64
}

// TypoFinder scans a fixed set of indexed terms for fuzzy matches.
// The term set never changes after construction; a new index gets a new finder.
// This is a brute-force scan over every term, which is fine for a few thousand
// terms but grows with |terms| x len(term)^2.
type TypoFinder struct {
	indexedTerms []string
	threshold    float64

	// Cache for repeated query terms. Key: query term.
	cache   map[string][]FuzzyMatch
	cacheMu sync.RWMutex

	// Cache size limit to prevent memory bloat
	maxCacheSize int
}

// NewTypoFinder creates a finder over indexedTerms that accepts terms with
// similarity strictly greater than threshold.
func NewTypoFinder(indexedTerms []string, threshold float64) *TypoFinder {
	terms := make([]string, len(indexedTerms))
	copy(terms, indexedTerms)
	sort.Strings(terms)

	return &TypoFinder{
		indexedTerms: terms,
		threshold:    threshold,
		cache:        make(map[string][]FuzzyMatch),
		maxCacheSize: 1000, // Limit cache to 1000 entries
	}
}

// FindSimilar returns every indexed term whose similarity to term is strictly
// above the threshold, in ascending term order. The term itself is included when indexed.
func (tf *TypoFinder) FindSimilar(term string) []FuzzyMatch {
	tf.cacheMu.RLock()
	if cached, exists := tf.cache[term]; exists {
		tf.cacheMu.RUnlock()
		return cached
	}
	tf.cacheMu.RUnlock()

	matches := tf.scan(term)

	tf.cacheMu.Lock()
	if len(tf.cache) < tf.maxCacheSize {
		tf.cache[term] = matches
	}
	tf.cacheMu.Unlock()

	return matches
}

func (tf *TypoFinder) scan(term string) []FuzzyMatch {
	matches := make([]FuzzyMatch, 0)
	termLen := len([]rune(term))

	for _, indexedTerm := range tf.indexedTerms {
		// Length-based early filtering: the distance is at least the length
		// difference, so shorter/longer is an upper bound on the similarity.
		indexedTermLen := len([]rune(indexedTerm))
		shorter, longer := termLen, indexedTermLen
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		if longer > 0 && float64(shorter)/float64(longer) <= tf.threshold {
			continue
		}

		sim := Similarity(term, indexedTerm)
		if sim > tf.threshold {
			matches = append(matches, FuzzyMatch{Term: indexedTerm, Similarity: sim})
		}
	}

	return matches
}

// Len returns the number of terms the finder scans.
func (tf *TypoFinder) Len() int {
	return len(tf.indexedTerms)
}
