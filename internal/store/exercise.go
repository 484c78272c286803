package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Exercises implements ExerciseRepo over exercise_categories and exercises.
type Exercises struct {
	db *sql.DB
	b  *entsql.DialectBuilder
}

func (r *Exercises) Categories(ctx context.Context) ([]ExerciseCategory, error) {
	query, args := r.b.Select("id", "name", "description").
		From(r.b.Table(tableCategories)).
		OrderBy("id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var cats []ExerciseCategory
	for rows.Next() {
		var c ExerciseCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *Exercises) CategoryByName(ctx context.Context, name string) (*ExerciseCategory, error) {
	query, args := r.b.Select("id", "name", "description").
		From(r.b.Table(tableCategories)).
		Where(entsql.EQ("name", name)).
		Query()

	var c ExerciseCategory
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Description)
	switch {
	case err == sql.ErrNoRows:
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("get category %q: %w", name, err)
	}
	return &c, nil
}

// ExercisesByCategory lists a category's exercises in creation order.
func (r *Exercises) ExercisesByCategory(ctx context.Context, categoryID int) ([]Exercise, error) {
	query, args := r.b.Select("id", "category_id", "title", "description", "duration_minutes", "benefits", "created_at").
		From(r.b.Table(tableExercises)).
		Where(entsql.EQ("category_id", categoryID)).
		OrderBy("created_at", "id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer rows.Close()

	var out []Exercise
	for rows.Next() {
		var (
			e        Exercise
			benefits string
			ms       int64
		)
		if err := rows.Scan(&e.ID, &e.CategoryID, &e.Title, &e.Description, &e.DurationMinutes, &benefits, &ms); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		if err := json.Unmarshal([]byte(benefits), &e.Benefits); err != nil {
			return nil, fmt.Errorf("decode benefits for exercise %d: %w", e.ID, err)
		}
		e.CreatedAt = time.UnixMilli(ms).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Exercises) SeedDefaults(ctx context.Context, seed []CategorySeed) (bool, error) {
	var n int
	query, args := r.b.Select(entsql.Count("*")).From(r.b.Table(tableCategories)).Query()
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("count categories: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	base := time.Now()
	exerciseID := 0
	for ci, s := range seed {
		catID := s.Category.ID
		if catID == 0 {
			catID = ci + 1
		}
		query, args := r.b.Insert(tableCategories).
			Columns("id", "name", "description").
			Values(catID, s.Category.Name, s.Category.Description).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return false, fmt.Errorf("insert category %q: %w", s.Category.Name, err)
		}

		for _, e := range s.Exercises {
			exerciseID++
			benefits, err := json.Marshal(nonNil(e.Benefits))
			if err != nil {
				return false, fmt.Errorf("encode benefits: %w", err)
			}
			// Offset timestamps so creation order is the seed order.
			created := base.Add(time.Duration(exerciseID) * time.Millisecond)
			query, args := r.b.Insert(tableExercises).
				Columns("id", "category_id", "title", "description", "duration_minutes", "benefits", "created_at").
				Values(exerciseID, catID, e.Title, e.Description, e.DurationMinutes, string(benefits), created.UnixMilli()).
				Query()
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return false, fmt.Errorf("insert exercise %q: %w", e.Title, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed: %w", err)
	}
	return true, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
