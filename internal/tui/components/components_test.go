package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/liftlog/internal/model"
	"github.com/theirongolddev/liftlog/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, total := range []int{7, 40, 81, 100} {
		widths := LayoutRow(total, 7)
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != total {
			t.Errorf("LayoutRow(%d, 7) sums to %d", total, sum)
		}
		if widths[0] < widths[6] {
			t.Errorf("LayoutRow(%d, 7) = %v, remainder should go first", total, widths)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func testWeek() [7]time.Time {
	var days [7]time.Time
	for i := range days {
		days[i] = time.Date(2024, 6, 10+i, 0, 0, 0, 0, time.Local)
	}
	return days
}

func TestRenderWeekBarShape(t *testing.T) {
	theme.SetActive("flexoki-dark")
	days := testWeek()

	out := RenderWeekBar(days, days[2], days[0], map[model.DayKey]bool{"2024-06-14": true}, 70)
	lines := strings.Split(out, "\n")
	if len(lines) != WeekBarHeight {
		t.Fatalf("got %d lines, want %d", len(lines), WeekBarHeight)
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w != 70 {
			t.Errorf("line %d width = %d, want 70", i, w)
		}
	}
	if !strings.Contains(lines[1], "(10)") {
		t.Errorf("base day should be ringed: %q", lines[1])
	}
	if strings.Count(lines[2], "•") != 1 {
		t.Errorf("want exactly one dot: %q", lines[2])
	}
}

func TestWeekBarDayAtX(t *testing.T) {
	width := 72 // 11,11,10,10,10,10,10
	tests := []struct{ x, want int }{
		{0, 0}, {10, 0}, {11, 1}, {22, 2}, {31, 2}, {32, 3}, {71, 6}, {72, -1}, {-1, -1},
	}
	for _, tt := range tests {
		if got := WeekBarDayAtX(tt.x, width); got != tt.want {
			t.Errorf("WeekBarDayAtX(%d) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestTabVisualWidthMatchesRender(t *testing.T) {
	theme.SetActive("flexoki-dark")
	want := []string{
		" Logs   Exercises[2] ",
		" Logs[1]   Exercises ",
	}
	for active := range Tabs {
		plain := stripANSI(RenderTabBar(active, 80))
		if !strings.HasPrefix(plain, want[active]) {
			t.Errorf("active=%d bar = %q, want prefix %q", active, plain, want[active])
		}
		sum := len(Tabs) - 1
		for i, tab := range Tabs {
			sum += TabVisualWidth(tab, i == active)
		}
		if sum != len(want[active]) {
			t.Errorf("active=%d visual widths sum to %d, want %d", active, sum, len(want[active]))
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if TabIdxByKey('2') != 1 {
		t.Error("'2' should select Exercises")
	}
	if TabIdxByKey('z') != -1 {
		t.Error("unknown key should return -1")
	}
}

func TestStatusBarFillsWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")
	bar := RenderStatusBar(60, "[?]help  [q]uit", "Saved", false)
	if w := lipgloss.Width(bar); w != 60 {
		t.Errorf("status bar width = %d, want 60", w)
	}
	narrow := RenderStatusBar(10, "[?]help  [q]uit", "Deleted", true)
	if !strings.Contains(stripANSI(narrow), "Deleted") {
		t.Errorf("status should survive a narrow bar: %q", stripANSI(narrow))
	}
}

func TestContentCardWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")
	card := ContentCard("Sets", "Squat  80 kg × 5", 40)
	for i, l := range strings.Split(card, "\n") {
		if w := lipgloss.Width(l); w != 40 {
			t.Errorf("card line %d width = %d, want 40", i, w)
		}
	}
}

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc:
			if r == 'm' {
				inEsc = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
