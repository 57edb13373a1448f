package search

import (
	"fmt"
	"math"
	"sort"

	"github.com/gcbaptista/recipe-search/index"
	"github.com/gcbaptista/recipe-search/internal/tokenizer"
	"github.com/gcbaptista/recipe-search/internal/typoutil"
	"github.com/gcbaptista/recipe-search/services"
	"github.com/gcbaptista/recipe-search/store"
)

const (
	// MaxResults caps the number of hits a query returns.
	MaxResults = 20
	// MinScore is the relevance floor; hits must score strictly above it.
	MinScore = 5.0

	// FuzzyThreshold is the similarity a term must strictly exceed to count as a fuzzy match.
	FuzzyThreshold = 0.8
	fuzzyWeight    = 0.3
	minFuzzyLength = 4

	multiTermBonus  = 3.0
	titleBonus      = 15.0
	categoryBonus   = 10.0
	keywordsBonus   = 8.0
	stepsOnlyFactor = 0.5
)

// Service implements the search logic over one immutable index.
// It fulfills the services.Searcher and services.Suggester interfaces
// through the engine.
type Service struct {
	invertedIndex *index.InvertedIndex
	recipeStore   *store.RecipeStore
	typoFinder    *typoutil.TypoFinder
}

// NewService creates a new search Service.
func NewService(invIndex *index.InvertedIndex, recipeStore *store.RecipeStore) (*Service, error) {
	if invIndex == nil {
		return nil, fmt.Errorf("inverted index cannot be nil")
	}
	if recipeStore == nil {
		return nil, fmt.Errorf("recipe store cannot be nil")
	}

	return &Service{
		invertedIndex: invIndex,
		recipeStore:   recipeStore,
		typoFinder:    typoutil.NewTypoFinder(invIndex.Terms(), FuzzyThreshold),
	}, nil
}

// Search ranks recipes against query. An empty query or one without usable
// tokens returns an empty slice.
func (s *Service) Search(query string, filters services.Filters) []services.HitResult {
	queryTokens := tokenizer.Tokenize(query)
	if len(queryTokens) == 0 {
		return []services.HitResult{}
	}

	candidates := make(map[string]*candidateHit)
	// Filter outcome per recipe ID, so each recipe is checked once per query.
	passesFilters := make(map[string]bool)

	candidateFor := func(recipeID string) *candidateHit {
		if hit, ok := candidates[recipeID]; ok {
			return hit
		}
		if passed, checked := passesFilters[recipeID]; checked && !passed {
			return nil
		}

		recipe, found := s.recipeStore.Get(recipeID)
		if !found {
			// Index and store come from the same build; a miss means stale state.
			passesFilters[recipeID] = false
			return nil
		}
		if !recipeMatchesFilters(recipe, filters) {
			passesFilters[recipeID] = false
			return nil
		}
		passesFilters[recipeID] = true

		hit := &candidateHit{recipe: recipe}
		candidates[recipeID] = hit
		return hit
	}

	for _, queryToken := range queryTokens {
		// 1. Exact matches score the full field weight.
		if postings, found := s.invertedIndex.Lookup(queryToken); found {
			for recipeID, entry := range postings {
				hit := candidateFor(recipeID)
				if hit == nil {
					continue
				}
				hit.score += entry.FieldScore()
				hit.addTerm(queryToken)
				hit.addFields(entry.Fields)
			}
		}

		// 2. Fuzzy matches score a fraction of it. The scan includes the
		// token itself, so exact hits of long tokens are counted here as well.
		if len(queryToken) < minFuzzyLength {
			continue
		}
		for _, match := range s.typoFinder.FindSimilar(queryToken) {
			postings, _ := s.invertedIndex.Lookup(match.Term)
			for recipeID, entry := range postings {
				hit := candidateFor(recipeID)
				if hit == nil {
					continue
				}
				hit.score += fuzzyScore(entry, match.Similarity)
				hit.addTerm(queryToken)
				hit.addFields(entry.Fields)
			}
		}
	}

	hits := make([]services.HitResult, 0, len(candidates))
	for _, candidate := range candidates {
		applyBonuses(candidate)
		if candidate.score <= MinScore {
			continue
		}
		hits = append(hits, services.HitResult{
			Recipe:        candidate.recipe,
			Score:         candidate.score,
			MatchedTerms:  candidate.matchedTerms,
			MatchedFields: candidate.matchedFields,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		if hits[i].Recipe.Title != hits[j].Recipe.Title {
			return hits[i].Recipe.Title < hits[j].Recipe.Title
		}
		return hits[i].Recipe.ID < hits[j].Recipe.ID
	})

	if len(hits) > MaxResults {
		hits = hits[:MaxResults]
	}
	return hits
}

// fuzzyScore is floor(sum(weight * 0.3) * similarity) over the entry's fields.
func fuzzyScore(entry *index.PostingEntry, similarity float64) float64 {
	fieldScore := 0.0
	for _, field := range entry.Fields {
		fieldScore += field.Weight() * fuzzyWeight
	}
	return math.Floor(fieldScore * similarity)
}

// applyBonuses adds the per-document bonuses once all tokens were scored.
func applyBonuses(candidate *candidateHit) {
	if len(candidate.matchedTerms) > 1 {
		candidate.score += float64(len(candidate.matchedTerms)) * multiTermBonus
	}
	if candidate.hasField(index.FieldTitle) {
		candidate.score += titleBonus
	}
	if candidate.hasField(index.FieldCategory) {
		candidate.score += categoryBonus
	}
	if candidate.hasField(index.FieldKeywords) {
		candidate.score += keywordsBonus
	}
	if candidate.onlyStepsMatched() {
		candidate.score *= stepsOnlyFactor
	}
}

// Stats returns the size of the underlying index.
func (s *Service) Stats() index.Stats {
	return s.invertedIndex.Stats()
}
