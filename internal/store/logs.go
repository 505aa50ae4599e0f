package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/theirongolddev/liftlog/internal/model"
)

const logColumns = "id, exerciseId, date, weight, reps"

func scanLog(s scanner) (model.ExerciseLog, error) {
	var l model.ExerciseLog
	var ms int64
	if err := s.Scan(&l.ID, &l.ExerciseID, &ms, &l.Weight, &l.Reps); err != nil {
		return model.ExerciseLog{}, err
	}
	l.Date = model.FromMillis(ms)
	return l, nil
}

// LogsByDate returns every set whose timestamp falls within day's
// calendar day, in insertion order. An empty day yields an empty,
// non-nil slice.
func (g *Gateway) LogsByDate(ctx context.Context, day time.Time) ([]model.ExerciseLog, error) {
	start, end := model.DayBounds(day)

	rows, err := g.query(ctx,
		"SELECT "+logColumns+" FROM workouts WHERE date >= ? AND date <= ? ORDER BY id",
		model.ToMillis(start), model.ToMillis(end),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	logs := []model.ExerciseLog{}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// ExerciseLogByID returns one set or ErrNotFound.
func (g *Gateway) ExerciseLogByID(ctx context.Context, id int64) (model.ExerciseLog, error) {
	row, err := g.queryRow(ctx, "SELECT "+logColumns+" FROM workouts WHERE id = ?", id)
	if err != nil {
		return model.ExerciseLog{}, err
	}
	l, err := scanLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ExerciseLog{}, ErrNotFound
	}
	return l, err
}

// LatestLogForExercise returns the most recent set for an exercise or ErrNotFound.
func (g *Gateway) LatestLogForExercise(ctx context.Context, exerciseID int64) (model.ExerciseLog, error) {
	row, err := g.queryRow(ctx,
		"SELECT "+logColumns+" FROM workouts WHERE exerciseId = ? ORDER BY date DESC, id DESC LIMIT 1",
		exerciseID,
	)
	if err != nil {
		return model.ExerciseLog{}, err
	}
	l, err := scanLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ExerciseLog{}, ErrNotFound
	}
	return l, err
}

// AddExerciseLog inserts a set and returns its generated id.
func (g *Gateway) AddExerciseLog(ctx context.Context, l model.NewExerciseLog) (int64, error) {
	res, err := g.exec(ctx,
		"INSERT INTO workouts (date, exerciseId, weight, reps) VALUES (?, ?, ?, ?)",
		model.ToMillis(l.Date), l.ExerciseID, l.Weight, l.Reps,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// EditExerciseLog updates the weight and reps of a set.
func (g *Gateway) EditExerciseLog(ctx context.Context, id int64, weight float64, reps int) error {
	_, err := g.exec(ctx, "UPDATE workouts SET weight = ?, reps = ? WHERE id = ?", weight, reps, id)
	return err
}

// DeleteExerciseLog removes a set.
func (g *Gateway) DeleteExerciseLog(ctx context.Context, id int64) error {
	_, err := g.exec(ctx, "DELETE FROM workouts WHERE id = ?", id)
	return err
}
