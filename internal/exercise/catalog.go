// Package exercise serves the exercise catalog by difficulty.
package exercise

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/wellnest/internal/store"
)

// Difficulty levels, which are also the category names.
const (
	Beginner     = "beginner"
	Intermediate = "intermediate"
	Advanced     = "advanced"
)

// Levels lists the difficulties in display order.
var Levels = []string{Beginner, Intermediate, Advanced}

// ErrUnknownCategory is returned by List for a name with no category.
var ErrUnknownCategory = errors.New("unknown exercise category")

// Catalog reads exercises from a repo, seeding it on first use.
type Catalog struct {
	repo store.ExerciseRepo
}

func NewCatalog(repo store.ExerciseRepo) *Catalog {
	return &Catalog{repo: repo}
}

// Seed fills an empty catalog with the default exercises.
func (c *Catalog) Seed(ctx context.Context) error {
	if _, err := c.repo.SeedDefaults(ctx, DefaultSeed); err != nil {
		return fmt.Errorf("seed exercises: %w", err)
	}
	return nil
}

// Categories returns every category.
func (c *Catalog) Categories(ctx context.Context) ([]store.ExerciseCategory, error) {
	if err := c.Seed(ctx); err != nil {
		return nil, err
	}
	return c.repo.Categories(ctx)
}

// List returns the category named level and its exercises in creation
// order.
func (c *Catalog) List(ctx context.Context, level string) (store.ExerciseCategory, []store.Exercise, error) {
	if err := c.Seed(ctx); err != nil {
		return store.ExerciseCategory{}, nil, err
	}

	name := strings.ToLower(strings.TrimSpace(level))
	cat, err := c.repo.CategoryByName(ctx, name)
	if err != nil {
		return store.ExerciseCategory{}, nil, err
	}
	if cat == nil {
		return store.ExerciseCategory{}, nil, fmt.Errorf("%w: %q", ErrUnknownCategory, level)
	}

	exs, err := c.repo.ExercisesByCategory(ctx, cat.ID)
	if err != nil {
		return *cat, nil, err
	}
	return *cat, exs, nil
}
