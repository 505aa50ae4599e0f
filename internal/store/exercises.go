package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/theirongolddev/liftlog/internal/model"
)

// Exercises returns the whole catalog in insertion order.
func (g *Gateway) Exercises(ctx context.Context) ([]model.Exercise, error) {
	rows, err := g.query(ctx, "SELECT id, name FROM exercises ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	exercises := []model.Exercise{}
	for rows.Next() {
		var e model.Exercise
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// ExerciseByID returns one exercise or ErrNotFound.
func (g *Gateway) ExerciseByID(ctx context.Context, id int64) (model.Exercise, error) {
	row, err := g.queryRow(ctx, "SELECT id, name FROM exercises WHERE id = ?", id)
	if err != nil {
		return model.Exercise{}, err
	}

	var e model.Exercise
	if err := row.Scan(&e.ID, &e.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Exercise{}, ErrNotFound
		}
		return model.Exercise{}, err
	}
	return e, nil
}

// AddExercise inserts an exercise and returns its generated id.
func (g *Gateway) AddExercise(ctx context.Context, name string) (int64, error) {
	res, err := g.exec(ctx, "INSERT INTO exercises (name) VALUES (?)", name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// EditExercise renames an exercise.
func (g *Gateway) EditExercise(ctx context.Context, id int64, name string) error {
	_, err := g.exec(ctx, "UPDATE exercises SET name = ? WHERE id = ?", name, id)
	return err
}

// DeleteExercise removes an exercise. Logs referencing it are kept.
func (g *Gateway) DeleteExercise(ctx context.Context, id int64) error {
	_, err := g.exec(ctx, "DELETE FROM exercises WHERE id = ?", id)
	return err
}
