// Package tracker owns the workout tracker's state: the store handle,
// the log and catalog caches, the week windows and the selected date.
// Every mutation resynchronizes the cache it affects before returning.
package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/theirongolddev/liftlog/internal/cache"
	"github.com/theirongolddev/liftlog/internal/model"
	"github.com/theirongolddev/liftlog/internal/store"
	"github.com/theirongolddev/liftlog/internal/week"
)

// Store is the storage surface the tracker needs. *store.Gateway
// implements it.
type Store interface {
	Ready() bool
	InitErr() error

	LogsByDate(ctx context.Context, day time.Time) ([]model.ExerciseLog, error)
	ExerciseLogByID(ctx context.Context, id int64) (model.ExerciseLog, error)
	LatestLogForExercise(ctx context.Context, exerciseID int64) (model.ExerciseLog, error)
	AddExerciseLog(ctx context.Context, l model.NewExerciseLog) (int64, error)
	EditExerciseLog(ctx context.Context, id int64, weight float64, reps int) error
	DeleteExerciseLog(ctx context.Context, id int64) error

	Exercises(ctx context.Context) ([]model.Exercise, error)
	ExerciseByID(ctx context.Context, id int64) (model.Exercise, error)
	AddExercise(ctx context.Context, name string) (int64, error)
	EditExercise(ctx context.Context, id int64, name string) error
	DeleteExercise(ctx context.Context, id int64) error
}

var _ Store = (*store.Gateway)(nil)

// Options configures a Tracker.
type Options struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// CacheEmptyDays stores empty results of non-forced fetches.
	CacheEmptyDays bool
}

// Tracker serializes all access to the caches so UI commands may call it
// from any goroutine.
type Tracker struct {
	mu sync.Mutex

	store    Store
	now      func() time.Time
	logOpts  []cache.LogCacheOption
	logs     *cache.LogCache
	catalog  *cache.Catalog
	weeks    *week.Manager
	selected time.Time
}

// New builds a tracker around today. Call Start once the store is ready.
func New(s Store, opts Options) *Tracker {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	t := &Tracker{
		store:   s,
		now:     now,
		logOpts: []cache.LogCacheOption{cache.CacheEmptyDays(opts.CacheEmptyDays)},
		catalog: cache.NewCatalog(s),
	}
	t.resetLocked(now())
	return t
}

func (t *Tracker) resetLocked(now time.Time) {
	t.logs = cache.NewLogCache(t.store, t.logOpts...)
	t.catalog.Reset()
	t.weeks = week.NewManager(now, t.logs)
	t.selected = model.StartOfDay(now)
}

// Start loads the catalog, force-fetches today and fetches the visible
// week. It returns store.ErrNotInitialized, or the recorded init error,
// while the store is not ready.
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.store.Ready() {
		if err := t.store.InitErr(); err != nil {
			return err
		}
		return store.ErrNotInitialized
	}

	if err := t.catalog.FetchAll(ctx); err != nil {
		return err
	}
	if _, err := t.logs.Fetch(ctx, t.weeks.Base(), true); err != nil {
		return err
	}
	if err := t.weeks.Refresh(ctx); err != nil {
		return err
	}
	slog.Debug("tracker started", "base", model.DayOf(t.weeks.Base()), "exercises", t.catalog.Len())
	return nil
}

// Reset drops every cached day, the catalog and the week windows, and
// rebuilds them around now. Start must be called again afterwards.
func (t *Tracker) Reset(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked(now)
	slog.Debug("tracker reset", "base", model.DayOf(now))
}

// Selected returns the selected day at local midnight.
func (t *Tracker) Selected() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selected
}

// Base returns the day the tracker was built around.
func (t *Tracker) Base() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.weeks.Base()
}

// IsToday reports whether the selected day is the current day.
func (t *Tracker) IsToday() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return model.SameDay(t.selected, t.now())
}

// Week returns the window in view.
func (t *Tracker) Week() week.Window {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.weeks.Viewport()
}

// SelectDate selects date's day and brings its week into view.
func (t *Tracker) SelectDate(ctx context.Context, date time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selectLocked(ctx, date)
}

func (t *Tracker) selectLocked(ctx context.Context, date time.Time) error {
	t.selected = model.StartOfDay(date.In(t.weeks.Base().Location()))
	if !t.weeks.Viewport().Contains(t.selected) {
		// JumpTo fetches every day of the new week.
		return t.weeks.JumpTo(ctx, t.selected)
	}
	_, err := t.logs.Fetch(ctx, t.selected, false)
	return err
}

// ShiftDay moves the selection n days.
func (t *Tracker) ShiftDay(ctx context.Context, n int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selectLocked(ctx, t.selected.AddDate(0, 0, n))
}

// GoToday selects the current day.
func (t *Tracker) GoToday(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selectLocked(ctx, t.now())
}

// PageWeek shows the previous (dir < 0) or next (dir > 0) week. The
// selection moves to the same weekday of the new week.
func (t *Tracker) PageWeek(ctx context.Context, dir int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.weeks.PageWeek(ctx, dir); err != nil {
		return err
	}
	offset := (int(t.selected.Weekday()) + 6) % 7
	t.selected = t.weeks.Viewport().Days()[offset]
	return nil
}

// LogsForSelected returns the cached sets on the selected day.
func (t *Tracker) LogsForSelected() []model.ExerciseLog {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.logsForLocked(t.selected)
}

// LogsFor returns the cached sets on date's day. An unfetched day reads
// as empty.
func (t *Tracker) LogsFor(date time.Time) []model.ExerciseLog {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.logsForLocked(date)
}

func (t *Tracker) logsForLocked(date time.Time) []model.ExerciseLog {
	cached, _ := t.logs.Get(date)
	out := make([]model.ExerciseLog, 0, len(cached))
	for _, l := range cached {
		if model.SameDay(date, l.Date) {
			out = append(out, l)
		}
	}
	return out
}

// Fetched reports whether date's day is in the log cache.
func (t *Tracker) Fetched(date time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.logs.Has(date)
}

// DaysWithLogs returns the cached days that hold at least one set.
func (t *Tracker) DaysWithLogs() map[model.DayKey]bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.logs.DaysWithLogs()
}

// Exercises returns the cached catalog.
func (t *Tracker) Exercises() []model.Exercise {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.catalog.All()
}

// ExerciseName returns the exercise's name or UnknownExerciseName.
func (t *Tracker) ExerciseName(id int64) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.catalog.Name(id)
}

// SearchExercises matches names case-insensitively; limit <= 0 returns all.
func (t *Tracker) SearchExercises(query string, limit int) []model.Exercise {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.catalog.Search(query, limit)
}

// Reload reloads the catalog and force-fetches the selected day, picking
// up changes made by another process.
func (t *Tracker) Reload(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.catalog.FetchAll(ctx); err != nil {
		return err
	}
	return t.refetchLocked(ctx, t.selected)
}

// ExerciseByID reads one exercise from the store.
func (t *Tracker) ExerciseByID(ctx context.Context, id int64) (model.Exercise, error) {
	return t.store.ExerciseByID(ctx, id)
}

// LatestLog returns the most recent set logged for an exercise.
func (t *Tracker) LatestLog(ctx context.Context, exerciseID int64) (model.ExerciseLog, error) {
	return t.store.LatestLogForExercise(ctx, exerciseID)
}

// AddExerciseLog stores a set and refreshes its day in the cache. It
// returns the new id and the day that changed.
func (t *Tracker) AddExerciseLog(ctx context.Context, l model.NewExerciseLog) (int64, model.DayKey, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id, err := t.store.AddExerciseLog(ctx, l)
	if err != nil {
		slog.Error("adding set failed", "exercise", l.ExerciseID, "err", err)
		return 0, "", err
	}
	slog.Debug("added set", "id", id, "exercise", l.ExerciseID, "weight", l.Weight, "reps", l.Reps, "day", model.DayOf(l.Date))
	return id, model.DayOf(l.Date), t.refetchLocked(ctx, l.Date)
}

// EditExerciseLog changes a set's weight and reps and refreshes its day.
func (t *Tracker) EditExerciseLog(ctx context.Context, id int64, weight float64, reps int) (model.DayKey, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	existing, err := t.store.ExerciseLogByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := t.store.EditExerciseLog(ctx, id, weight, reps); err != nil {
		slog.Error("editing set failed", "id", id, "err", err)
		return "", err
	}
	slog.Debug("edited set", "id", id, "weight", weight, "reps", reps)
	return existing.Day(), t.refetchLocked(ctx, existing.Date)
}

// DeleteExerciseLog removes a set and refreshes its day.
func (t *Tracker) DeleteExerciseLog(ctx context.Context, id int64) (model.DayKey, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	existing, err := t.store.ExerciseLogByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := t.store.DeleteExerciseLog(ctx, id); err != nil {
		slog.Error("deleting set failed", "id", id, "err", err)
		return "", err
	}
	slog.Debug("deleted set", "id", id)
	return existing.Day(), t.refetchLocked(ctx, existing.Date)
}

func (t *Tracker) refetchLocked(ctx context.Context, date time.Time) error {
	_, err := t.logs.Fetch(ctx, date, true)
	return err
}

// AddExercise creates an exercise and reloads the catalog.
func (t *Tracker) AddExercise(ctx context.Context, name string) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id, err := t.store.AddExercise(ctx, name)
	if err != nil {
		slog.Error("adding exercise failed", "name", name, "err", err)
		return 0, err
	}
	slog.Debug("added exercise", "id", id, "name", name)
	return id, t.catalog.FetchAll(ctx)
}

// EditExercise renames an exercise and reloads the catalog.
func (t *Tracker) EditExercise(ctx context.Context, id int64, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.EditExercise(ctx, id, name); err != nil {
		slog.Error("renaming exercise failed", "id", id, "err", err)
		return err
	}
	slog.Debug("renamed exercise", "id", id, "name", name)
	return t.catalog.FetchAll(ctx)
}

// DeleteExercise removes an exercise and reloads the catalog. Sets
// referring to it stay and show as UnknownExerciseName.
func (t *Tracker) DeleteExercise(ctx context.Context, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.DeleteExercise(ctx, id); err != nil {
		slog.Error("deleting exercise failed", "id", id, "err", err)
		return err
	}
	slog.Debug("deleted exercise", "id", id)
	return t.catalog.FetchAll(ctx)
}
