// Package loader reads recipe collections from JSON files.
package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/recipe-search/internal/errors"
	"github.com/gcbaptista/recipe-search/internal/logger"
	"github.com/gcbaptista/recipe-search/model"
)

const maxConcurrentReads = 4

// FileSource loads recipes from JSON files. A path naming a directory
// contributes every *.json file directly inside it, in name order.
// Each file holds either a JSON array of recipes or an object with a
// "recipes" array.
// It implements the services.RecipeSource interface.
type FileSource struct {
	Paths  []string
	logger *slog.Logger
}

// NewFileSource creates a FileSource over paths.
func NewFileSource(paths ...string) *FileSource {
	return &FileSource{
		Paths:  paths,
		logger: logger.WithComponent("loader"),
	}
}

// LoadRecipes reads all files concurrently and concatenates their recipes in
// path order. Recipes without an ID are skipped and repeated IDs keep their
// first occurrence.
func (s *FileSource) LoadRecipes(ctx context.Context) ([]model.Recipe, error) {
	files, err := s.expandPaths()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.NewEmptySourceError(strings.Join(s.Paths, ", "))
	}

	perFile := make([][]model.Recipe, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			recipes, err := readRecipeFile(file)
			if err != nil {
				return err
			}
			perFile[i] = recipes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recipes := s.merge(files, perFile)
	if len(recipes) == 0 {
		return nil, errors.NewEmptySourceError(strings.Join(s.Paths, ", "))
	}
	s.logger.Info("recipes loaded", "files", len(files), "recipes", len(recipes))
	return recipes, nil
}

func (s *FileSource) expandPaths() ([]string, error) {
	var files []string
	for _, path := range s.Paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat recipe path '%s': %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(path, "*.json"))
		if err != nil {
			return nil, fmt.Errorf("failed to list recipe directory '%s': %w", path, err)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return files, nil
}

func (s *FileSource) merge(files []string, perFile [][]model.Recipe) []model.Recipe {
	seen := make(map[string]string)
	var recipes []model.Recipe
	for i, fileRecipes := range perFile {
		for _, recipe := range fileRecipes {
			if strings.TrimSpace(recipe.ID) == "" {
				s.logger.Warn("recipe without id skipped", "file", files[i], "title", recipe.Title)
				continue
			}
			if firstFile, exists := seen[recipe.ID]; exists {
				s.logger.Warn("duplicate recipe id skipped", "file", files[i], "recipe_id", recipe.ID, "first_seen_in", firstFile)
				continue
			}
			seen[recipe.ID] = files[i]
			recipes = append(recipes, recipe)
		}
	}
	return recipes
}

type recipeFile struct {
	Recipes []model.Recipe `json:"recipes"`
}

func readRecipeFile(path string) ([]model.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file '%s': %w", path, err)
	}
	recipes, err := DecodeRecipes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode recipe file '%s': %w", path, err)
	}
	return recipes, nil
}

// DecodeRecipes parses a JSON array of recipes or a {"recipes": [...]} object.
func DecodeRecipes(data []byte) ([]model.Recipe, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.NewValidationError("", "empty recipe document")
	}

	switch trimmed[0] {
	case '[':
		var recipes []model.Recipe
		if err := json.Unmarshal(trimmed, &recipes); err != nil {
			return nil, err
		}
		return recipes, nil
	case '{':
		var wrapper recipeFile
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, err
		}
		return wrapper.Recipes, nil
	default:
		return nil, errors.NewValidationError("", "recipe document must be a JSON array or object")
	}
}
