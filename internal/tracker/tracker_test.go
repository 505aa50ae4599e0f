package tracker

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/liftlog/internal/model"
	"github.com/theirongolddev/liftlog/internal/store"
)

var june10 = time.Date(2024, 6, 10, 10, 0, 0, 0, time.Local)

func fixedNow() time.Time { return june10 }

func newTestTracker(t *testing.T, opts Options) (*Tracker, *store.Gateway) {
	t.Helper()
	g, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "workouts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })

	if opts.Now == nil {
		opts.Now = fixedNow
	}
	tr := New(g, opts)
	require.NoError(t, tr.Start(context.Background()))
	return tr, g
}

func TestStartRequiresReadyStore(t *testing.T) {
	g := store.New(filepath.Join(t.TempDir(), "workouts.db"))
	tr := New(g, Options{Now: fixedNow})

	err := tr.Start(context.Background())
	assert.ErrorIs(t, err, store.ErrNotInitialized)

	require.NoError(t, g.Init(context.Background()))
	defer func() { _ = g.Close() }()
	assert.NoError(t, tr.Start(context.Background()))
}

func TestStartReportsInitFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	g := store.New(filepath.Join(blocker, "workouts.db"))
	initErr := g.Init(context.Background())
	require.Error(t, initErr)

	tr := New(g, Options{Now: fixedNow})
	assert.Equal(t, initErr, tr.Start(context.Background()))
}

func TestStartCachesToday(t *testing.T) {
	tr, _ := newTestTracker(t, Options{})

	assert.True(t, tr.Fetched(june10), "today is force-fetched even when empty")
	assert.False(t, tr.Fetched(june10.AddDate(0, 0, 1)), "empty non-forced days stay unfetched")
	assert.True(t, tr.IsToday())
	assert.Equal(t, model.StartOfDay(june10), tr.Selected())
	assert.Equal(t, "2024-06-10", tr.Week().Key().String())
}

func TestCacheEmptyDaysOption(t *testing.T) {
	tr, _ := newTestTracker(t, Options{CacheEmptyDays: true})
	for _, d := range tr.Week().Days() {
		assert.True(t, tr.Fetched(d), "day %s", model.DayOf(d))
	}
}

func TestAddExerciseAppearsInCatalog(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t, Options{})

	id, err := tr.AddExercise(ctx, "Bench Press")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, id, int64(1))

	all := tr.Exercises()
	require.Len(t, all, 1)
	assert.Equal(t, "Bench Press", all[0].Name)
	assert.Equal(t, id, all[0].ID)

	require.NoError(t, tr.EditExercise(ctx, id, "Flat Bench"))
	assert.Equal(t, "Flat Bench", tr.ExerciseName(id))
	assert.Len(t, tr.SearchExercises("bench", 3), 1)

	require.NoError(t, tr.DeleteExercise(ctx, id))
	assert.Empty(t, tr.Exercises())
	assert.Equal(t, model.UnknownExerciseName, tr.ExerciseName(id))
}

func TestLogMutationsRefreshTheirDay(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t, Options{})

	exID, err := tr.AddExercise(ctx, "Squat")
	require.NoError(t, err)

	id, day, err := tr.AddExerciseLog(ctx, model.NewExerciseLog{ExerciseID: exID, Date: june10, Weight: 80, Reps: 5})
	require.NoError(t, err)
	assert.Equal(t, model.DayKey("2024-06-10"), day)

	logs := tr.LogsForSelected()
	require.Len(t, logs, 1)
	assert.InDelta(t, 80, logs[0].Weight, 1e-9)
	assert.Equal(t, 5, logs[0].Reps)
	assert.True(t, tr.DaysWithLogs()["2024-06-10"])

	day, err = tr.EditExerciseLog(ctx, id, 82.5, 4)
	require.NoError(t, err)
	assert.Equal(t, model.DayKey("2024-06-10"), day)
	logs = tr.LogsFor(june10)
	require.Len(t, logs, 1)
	assert.InDelta(t, 82.5, logs[0].Weight, 1e-9)
	assert.Equal(t, 4, logs[0].Reps)

	_, err = tr.DeleteExerciseLog(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, tr.LogsFor(june10))
	assert.True(t, tr.Fetched(june10))
	assert.False(t, tr.DaysWithLogs()["2024-06-10"])
}

func TestAddLogOnAnotherDayRefreshesThatDay(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t, Options{})

	past := june10.AddDate(0, 0, -30)
	_, day, err := tr.AddExerciseLog(ctx, model.NewExerciseLog{ExerciseID: 1, Date: past, Weight: 40, Reps: 10})
	require.NoError(t, err)
	assert.Equal(t, model.DayOf(past), day)
	assert.Len(t, tr.LogsFor(past), 1)
	assert.Empty(t, tr.LogsForSelected())
}

func TestEditMissingLog(t *testing.T) {
	tr, _ := newTestTracker(t, Options{})
	_, err := tr.EditExerciseLog(context.Background(), 42, 10, 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = tr.DeleteExerciseLog(context.Background(), 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeletedExerciseLogsShowUnknown(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t, Options{})

	exID, err := tr.AddExercise(ctx, "Row")
	require.NoError(t, err)
	_, _, err = tr.AddExerciseLog(ctx, model.NewExerciseLog{ExerciseID: exID, Date: june10, Weight: 50, Reps: 8})
	require.NoError(t, err)
	require.NoError(t, tr.DeleteExercise(ctx, exID))

	logs := tr.LogsForSelected()
	require.Len(t, logs, 1)
	assert.Equal(t, model.UnknownExerciseName, tr.ExerciseName(logs[0].ExerciseID))
}

func TestNavigation(t *testing.T) {
	ctx := context.Background()
	tr, g := newTestTracker(t, Options{})

	// A set written behind the tracker's back on a day it has not seen.
	nextWeek := june10.AddDate(0, 0, 8)
	_, err := g.AddExerciseLog(ctx, model.NewExerciseLog{ExerciseID: 1, Date: nextWeek, Weight: 30, Reps: 12})
	require.NoError(t, err)

	require.NoError(t, tr.ShiftDay(ctx, -1))
	assert.Equal(t, "2024-06-09", model.DayOf(tr.Selected()).String())
	assert.Equal(t, "2024-06-03", tr.Week().Key().String())
	assert.False(t, tr.IsToday())

	require.NoError(t, tr.GoToday(ctx))
	assert.True(t, tr.IsToday())

	require.NoError(t, tr.PageWeek(ctx, +1))
	assert.Equal(t, "2024-06-17", tr.Week().Key().String())
	assert.Equal(t, "2024-06-17", model.DayOf(tr.Selected()).String(), "selection keeps its weekday")
	assert.Len(t, tr.LogsFor(nextWeek), 1, "paging fetches the new week")

	require.NoError(t, tr.SelectDate(ctx, june10.AddDate(0, 0, -400)))
	assert.Equal(t, model.DayOf(june10.AddDate(0, 0, -400)), model.DayOf(tr.Selected()))
	assert.Equal(t, model.StartOfDay(june10), model.StartOfDay(tr.Base()))
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t, Options{})
	_, err := tr.AddExercise(ctx, "Curl")
	require.NoError(t, err)

	later := june10.AddDate(0, 1, 0)
	tr.Reset(later)
	assert.Empty(t, tr.Exercises())
	assert.False(t, tr.Fetched(june10))
	assert.Equal(t, model.DayOf(later), model.DayOf(tr.Selected()))

	require.NoError(t, tr.Start(ctx))
	assert.Len(t, tr.Exercises(), 1)
	assert.True(t, tr.Fetched(later))
}

func TestLatestLog(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t, Options{})

	_, _, err := tr.AddExerciseLog(ctx, model.NewExerciseLog{ExerciseID: 7, Date: june10.AddDate(0, 0, -2), Weight: 70, Reps: 6})
	require.NoError(t, err)
	_, _, err = tr.AddExerciseLog(ctx, model.NewExerciseLog{ExerciseID: 7, Date: june10, Weight: 72.5, Reps: 5})
	require.NoError(t, err)

	l, err := tr.LatestLog(ctx, 7)
	require.NoError(t, err)
	assert.InDelta(t, 72.5, l.Weight, 1e-9)

	_, err = tr.LatestLog(ctx, 8)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	ctx := context.Background()
	tr, g := newTestTracker(t, Options{})

	_, err := g.AddExercise(ctx, "Dip")
	require.NoError(t, err)
	_, err = g.AddExerciseLog(ctx, model.NewExerciseLog{ExerciseID: 1, Date: june10, Weight: 0, Reps: 10})
	require.NoError(t, err)

	assert.Empty(t, tr.LogsForSelected())
	assert.Empty(t, tr.Exercises())

	require.NoError(t, tr.Reload(ctx))
	assert.Len(t, tr.LogsForSelected(), 1)
	assert.Len(t, tr.Exercises(), 1)
}

// countingStore records how often each day is queried.
type countingStore struct {
	*store.Gateway
	queries map[model.DayKey]int
}

func (s *countingStore) LogsByDate(ctx context.Context, day time.Time) ([]model.ExerciseLog, error) {
	s.queries[model.DayOf(day)]++
	return s.Gateway.LogsByDate(ctx, day)
}

func TestSelectDateInNewWeekQueriesEachDayOnce(t *testing.T) {
	ctx := context.Background()
	g, err := store.Open(ctx, filepath.Join(t.TempDir(), "workouts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })

	cs := &countingStore{Gateway: g, queries: map[model.DayKey]int{}}
	tr := New(cs, Options{Now: fixedNow})
	require.NoError(t, tr.Start(ctx))
	clear(cs.queries)

	require.NoError(t, tr.SelectDate(ctx, time.Date(2024, 6, 26, 0, 0, 0, 0, time.Local)))
	assert.Len(t, cs.queries, 7)
	for k, n := range cs.queries {
		assert.Equal(t, 1, n, "day %s queried %d times", k, n)
	}

	// Within the same week an unfetched empty day is queried once more.
	clear(cs.queries)
	require.NoError(t, tr.ShiftDay(ctx, 1))
	assert.Equal(t, map[model.DayKey]int{"2024-06-27": 1}, cs.queries)
}

func TestSelectDateUsesBaseLocation(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t, Options{})

	utc := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)
	require.NoError(t, tr.SelectDate(ctx, utc))
	assert.Equal(t, time.Local, tr.Selected().Location())
	assert.Equal(t, model.DayOf(utc.In(time.Local)), model.DayOf(tr.Selected()))

	require.NoError(t, tr.SelectDate(ctx, utc.In(time.Local)))
	assert.Equal(t, model.DayOf(utc.In(time.Local)), model.DayOf(tr.Selected()))
	assert.True(t, tr.Week().Contains(utc))
}
