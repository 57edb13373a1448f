package search

import (
	"github.com/gcbaptista/recipe-search/index"
	"github.com/gcbaptista/recipe-search/model"
)

// candidateHit represents a recipe candidate during search processing
type candidateHit struct {
	recipe        *model.Recipe
	score         float64
	matchedTerms  []string      // Query tokens, first-match order, no duplicates
	matchedFields []index.Field // Field tags, first-match order, no duplicates
}

func (c *candidateHit) addTerm(term string) {
	for _, t := range c.matchedTerms {
		if t == term {
			return
		}
	}
	c.matchedTerms = append(c.matchedTerms, term)
}

func (c *candidateHit) addFields(fields []index.Field) {
	for _, field := range fields {
		if !c.hasField(field) {
			c.matchedFields = append(c.matchedFields, field)
		}
	}
}

func (c *candidateHit) hasField(field index.Field) bool {
	for _, f := range c.matchedFields {
		if f == field {
			return true
		}
	}
	return false
}

// onlyStepsMatched reports whether every match came from preparation steps.
func (c *candidateHit) onlyStepsMatched() bool {
	return len(c.matchedFields) == 1 && c.matchedFields[0] == index.FieldSteps
}
