package cache

import (
	"context"
	"strings"

	"github.com/theirongolddev/liftlog/internal/model"
)

// ExerciseSource is the part of the store the catalog reads from.
type ExerciseSource interface {
	Exercises(ctx context.Context) ([]model.Exercise, error)
}

// Catalog is the in-memory exercise list. It is only ever replaced
// wholesale by FetchAll.
type Catalog struct {
	src       ExerciseSource
	exercises []model.Exercise
	byID      map[int64]int
	loaded    bool
}

// NewCatalog returns an empty catalog reading from src.
func NewCatalog(src ExerciseSource) *Catalog {
	return &Catalog{src: src, byID: map[int64]int{}}
}

// FetchAll replaces the cached list with the store's contents. On error
// the previous list is kept.
func (c *Catalog) FetchAll(ctx context.Context) error {
	list, err := c.src.Exercises(ctx)
	if err != nil {
		return err
	}
	idx := make(map[int64]int, len(list))
	for i, e := range list {
		idx[e.ID] = i
	}
	c.exercises = list
	c.byID = idx
	c.loaded = true
	return nil
}

// Loaded reports whether FetchAll has succeeded at least once.
func (c *Catalog) Loaded() bool { return c.loaded }

// All returns a copy of the catalog in store order.
func (c *Catalog) All() []model.Exercise {
	out := make([]model.Exercise, len(c.exercises))
	copy(out, c.exercises)
	return out
}

// Len returns the number of exercises.
func (c *Catalog) Len() int { return len(c.exercises) }

// ByID looks up an exercise.
func (c *Catalog) ByID(id int64) (model.Exercise, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Exercise{}, false
	}
	return c.exercises[i], true
}

// Name returns the exercise's name, or UnknownExerciseName when it has
// been deleted.
func (c *Catalog) Name(id int64) string {
	if e, ok := c.ByID(id); ok {
		return e.Name
	}
	return model.UnknownExerciseName
}

// Search returns up to limit exercises whose name contains query,
// ignoring case, in catalog order. An empty query matches everything;
// limit <= 0 means no limit.
func (c *Catalog) Search(query string, limit int) []model.Exercise {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []model.Exercise
	for _, e := range c.exercises {
		if q != "" && !strings.Contains(strings.ToLower(e.Name), q) {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Reset empties the catalog.
func (c *Catalog) Reset() {
	c.exercises = nil
	c.byID = map[int64]int{}
	c.loaded = false
}
