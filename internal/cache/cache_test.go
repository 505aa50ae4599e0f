package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/liftlog/internal/model"
)

type fakeLogs struct {
	byDay map[model.DayKey][]model.ExerciseLog
	calls int
	err   error
}

func (f *fakeLogs) LogsByDate(_ context.Context, day time.Time) ([]model.ExerciseLog, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.ExerciseLog{}, f.byDay[model.DayOf(day)]...), nil
}

func (f *fakeLogs) put(l model.ExerciseLog) {
	if f.byDay == nil {
		f.byDay = map[model.DayKey][]model.ExerciseLog{}
	}
	f.byDay[l.Day()] = append(f.byDay[l.Day()], l)
}

var june10 = time.Date(2024, 6, 10, 10, 0, 0, 0, time.Local)

func TestFetchSkipsEmptyDayUnlessForced(t *testing.T) {
	ctx := context.Background()
	c := NewLogCache(&fakeLogs{})

	wrote, err := c.Fetch(ctx, june10, false)
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.False(t, c.Has(june10))

	wrote, err = c.Fetch(ctx, june10, true)
	require.NoError(t, err)
	assert.True(t, wrote)

	logs, ok := c.Lookup("2024-06-10")
	require.True(t, ok)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)
}

func TestFetchCachesEmptyDayWhenConfigured(t *testing.T) {
	ctx := context.Background()
	src := &fakeLogs{}
	c := NewLogCache(src, CacheEmptyDays(true))

	_, err := c.Fetch(ctx, june10, false)
	require.NoError(t, err)
	assert.True(t, c.Has(june10))

	_, err = c.Fetch(ctx, june10, false)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
}

func TestNonForcedFetchIgnoresStoreChanges(t *testing.T) {
	ctx := context.Background()
	src := &fakeLogs{}
	src.put(model.ExerciseLog{ID: 1, ExerciseID: 1, Date: june10, Weight: 80, Reps: 5})
	c := NewLogCache(src)

	_, err := c.Fetch(ctx, june10, false)
	require.NoError(t, err)

	src.put(model.ExerciseLog{ID: 2, ExerciseID: 1, Date: june10, Weight: 85, Reps: 3})

	wrote, err := c.Fetch(ctx, june10.Add(time.Hour), false)
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.Equal(t, 1, src.calls)

	logs, _ := c.Get(june10)
	assert.Len(t, logs, 1)

	_, err = c.Fetch(ctx, june10, true)
	require.NoError(t, err)
	logs, _ = c.Get(june10)
	require.Len(t, logs, 2)
	assert.Equal(t, int64(1), logs[0].ID)
	assert.Equal(t, int64(2), logs[1].ID)
}

func TestForcedFetchOverwritesWithCurrentCount(t *testing.T) {
	ctx := context.Background()
	src := &fakeLogs{}
	for i := 1; i <= 3; i++ {
		src.put(model.ExerciseLog{ID: int64(i), ExerciseID: 1, Date: june10, Weight: 60, Reps: 10})
	}
	c := NewLogCache(src)
	_, err := c.Fetch(ctx, june10, true)
	require.NoError(t, err)

	src.byDay["2024-06-10"] = src.byDay["2024-06-10"][:1]
	_, err = c.Fetch(ctx, june10, true)
	require.NoError(t, err)

	logs, ok := c.Get(june10)
	require.True(t, ok)
	assert.Len(t, logs, 1)
}

func TestFetchErrorLeavesCacheUnchanged(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk on fire")
	src := &fakeLogs{}
	src.put(model.ExerciseLog{ID: 1, Date: june10, Weight: 50, Reps: 5})
	c := NewLogCache(src)
	_, err := c.Fetch(ctx, june10, true)
	require.NoError(t, err)

	src.err = boom
	_, err = c.Fetch(ctx, june10, true)
	assert.ErrorIs(t, err, boom)

	logs, ok := c.Get(june10)
	require.True(t, ok)
	assert.Len(t, logs, 1)
}

func TestKeysDaysWithLogsAndReset(t *testing.T) {
	ctx := context.Background()
	src := &fakeLogs{}
	june11 := june10.AddDate(0, 0, 1)
	src.put(model.ExerciseLog{ID: 1, Date: june11, Weight: 50, Reps: 5})
	c := NewLogCache(src)

	_, err := c.Fetch(ctx, june11, false)
	require.NoError(t, err)
	_, err = c.Fetch(ctx, june10, true)
	require.NoError(t, err)

	assert.Equal(t, []model.DayKey{"2024-06-10", "2024-06-11"}, c.Keys())
	assert.Equal(t, map[model.DayKey]bool{"2024-06-11": true}, c.DaysWithLogs())
	assert.Equal(t, 2, c.Len())

	c.Reset()
	assert.Zero(t, c.Len())
	assert.False(t, c.Has(june11))
}

type fakeExercises struct {
	list []model.Exercise
	err  error
}

func (f *fakeExercises) Exercises(context.Context) ([]model.Exercise, error) {
	return append([]model.Exercise{}, f.list...), f.err
}

func TestCatalogFetchAllReplacesList(t *testing.T) {
	ctx := context.Background()
	src := &fakeExercises{list: []model.Exercise{{ID: 1, Name: "Bench Press"}}}
	c := NewCatalog(src)
	assert.False(t, c.Loaded())

	require.NoError(t, c.FetchAll(ctx))
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "Bench Press", c.All()[0].Name)

	src.list = []model.Exercise{{ID: 2, Name: "Squat"}}
	require.NoError(t, c.FetchAll(ctx))
	_, ok := c.ByID(1)
	assert.False(t, ok)
	e, ok := c.ByID(2)
	require.True(t, ok)
	assert.Equal(t, "Squat", e.Name)

	src.err = errors.New("locked")
	assert.Error(t, c.FetchAll(ctx))
	assert.Equal(t, 1, c.Len())
}

func TestCatalogNameFallsBackToUnknown(t *testing.T) {
	c := NewCatalog(&fakeExercises{list: []model.Exercise{{ID: 4, Name: "Row"}}})
	require.NoError(t, c.FetchAll(context.Background()))

	assert.Equal(t, "Row", c.Name(4))
	assert.Equal(t, model.UnknownExerciseName, c.Name(99))
}

func TestCatalogSearch(t *testing.T) {
	c := NewCatalog(&fakeExercises{list: []model.Exercise{
		{ID: 1, Name: "Bench Press"},
		{ID: 2, Name: "Incline Bench Press"},
		{ID: 3, Name: "Squat"},
		{ID: 4, Name: "Overhead Press"},
		{ID: 5, Name: "Leg Press"},
	}})
	require.NoError(t, c.FetchAll(context.Background()))

	got := c.Search("PRESS", 3)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{1, 2, 4}, []int64{got[0].ID, got[1].ID, got[2].ID})

	assert.Len(t, c.Search("", 0), 5)
	assert.Len(t, c.Search("  bench ", 0), 2)
	assert.Empty(t, c.Search("curl", 3))
}
