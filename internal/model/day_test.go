package model

import (
	"testing"
	"time"
)

func TestDayOfSameCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	morning := time.Date(2024, 6, 10, 0, 0, 0, 0, loc)
	night := time.Date(2024, 6, 10, 23, 59, 59, int(999*time.Millisecond), loc)

	if DayOf(morning) != DayOf(night) {
		t.Fatalf("DayOf(%v) = %s, DayOf(%v) = %s, want equal", morning, DayOf(morning), night, DayOf(night))
	}
	if got := DayOf(morning); got != "2024-06-10" {
		t.Fatalf("DayOf = %s, want 2024-06-10", got)
	}

	next := night.Add(time.Millisecond)
	if DayOf(next) == DayOf(night) {
		t.Fatalf("DayOf(%v) should differ from the previous day", next)
	}
}

func TestDayBounds(t *testing.T) {
	at := time.Date(2024, 6, 10, 10, 30, 0, 0, time.Local)
	start, end := DayBounds(at)

	if !start.Equal(time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("start = %v, want local midnight", start)
	}
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 || end.Nanosecond() != int(999*time.Millisecond) {
		t.Fatalf("end = %v, want last millisecond of the day", end)
	}
	if DayOf(end) != DayOf(at) {
		t.Fatalf("end %v is not on %s", end, DayOf(at))
	}
	if DayOf(end.Add(time.Millisecond)) == DayOf(at) {
		t.Fatalf("end + 1ms should be the next day")
	}
}

func TestDayKeyTime(t *testing.T) {
	k := DayKey("2024-02-29")
	got, err := k.Time()
	if err != nil {
		t.Fatalf("Time() error: %v", err)
	}
	if DayOf(got) != k {
		t.Fatalf("DayOf(Time()) = %s, want %s", DayOf(got), k)
	}

	if _, err := DayKey("not-a-day").Time(); err == nil {
		t.Fatal("expected parse error for malformed key")
	}
}

func TestMillisRoundTrip(t *testing.T) {
	at := time.Date(2024, 6, 10, 10, 0, 0, int(123*time.Millisecond), time.Local)
	back := FromMillis(ToMillis(at))
	if !back.Equal(at) {
		t.Fatalf("FromMillis(ToMillis(%v)) = %v", at, back)
	}
}

func TestAtClock(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.Local)
	clock := time.Date(2024, 6, 10, 18, 45, 12, 999, time.Local)

	got := AtClock(day, clock)
	want := time.Date(2024, 6, 3, 18, 45, 12, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("AtClock = %v, want %v", got, want)
	}
	if DayOf(got) != DayOf(day) {
		t.Fatalf("AtClock moved the set to %s", DayOf(got))
	}
}
