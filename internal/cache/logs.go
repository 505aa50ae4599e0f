// Package cache holds the in-memory views of the store: logged sets by
// calendar day and the exercise catalog.
package cache

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/theirongolddev/liftlog/internal/model"
)

// LogSource is the part of the store the log cache reads from.
type LogSource interface {
	LogsByDate(ctx context.Context, day time.Time) ([]model.ExerciseLog, error)
}

// LogCache maps a calendar day to the sets logged on it. A missing key
// means the day has not been fetched, not that it has no sets.
//
// LogCache is not safe for concurrent use.
type LogCache struct {
	src       LogSource
	days      map[model.DayKey][]model.ExerciseLog
	keepEmpty bool
}

// LogCacheOption configures a LogCache.
type LogCacheOption func(*LogCache)

// CacheEmptyDays makes a non-forced fetch that finds nothing store an
// empty entry, so the day is not queried again.
func CacheEmptyDays(on bool) LogCacheOption {
	return func(c *LogCache) { c.keepEmpty = on }
}

// NewLogCache returns an empty cache reading from src.
func NewLogCache(src LogSource, opts ...LogCacheOption) *LogCache {
	c := &LogCache{
		src:  src,
		days: make(map[model.DayKey][]model.ExerciseLog),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Fetch loads date's day from the store when it is not cached yet or
// force is set. An empty result from a non-forced fetch leaves the cache
// untouched unless CacheEmptyDays is on. It reports whether the entry
// was written.
func (c *LogCache) Fetch(ctx context.Context, date time.Time, force bool) (bool, error) {
	key := model.DayOf(date)
	if _, ok := c.days[key]; ok && !force {
		return false, nil
	}

	logs, err := c.src.LogsByDate(ctx, date)
	if err != nil {
		return false, err
	}

	if len(logs) == 0 && !force && !c.keepEmpty {
		slog.Debug("skipping empty day", "day", key)
		return false, nil
	}

	if logs == nil {
		logs = []model.ExerciseLog{}
	}
	c.days[key] = logs
	slog.Debug("cached day", "day", key, "sets", len(logs), "forced", force)
	return true, nil
}

// Get returns the cached sets for date's day and whether the day is cached.
func (c *LogCache) Get(date time.Time) ([]model.ExerciseLog, bool) {
	logs, ok := c.days[model.DayOf(date)]
	return logs, ok
}

// Lookup is Get by key.
func (c *LogCache) Lookup(key model.DayKey) ([]model.ExerciseLog, bool) {
	logs, ok := c.days[key]
	return logs, ok
}

// Has reports whether date's day has been fetched.
func (c *LogCache) Has(date time.Time) bool {
	_, ok := c.days[model.DayOf(date)]
	return ok
}

// Keys returns the cached day keys in ascending order.
func (c *LogCache) Keys() []model.DayKey {
	keys := make([]model.DayKey, 0, len(c.days))
	for k := range c.days {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// DaysWithLogs returns the set of cached days holding at least one set.
func (c *LogCache) DaysWithLogs() map[model.DayKey]bool {
	out := make(map[model.DayKey]bool)
	for k, logs := range c.days {
		if len(logs) > 0 {
			out[k] = true
		}
	}
	return out
}

// Len returns the number of cached days.
func (c *LogCache) Len() int {
	return len(c.days)
}

// Reset drops every cached day.
func (c *LogCache) Reset() {
	c.days = make(map[model.DayKey][]model.ExerciseLog)
}
