package habit

import (
	"sort"
	"time"
)

// dayLayout is the wire and storage format for calendar days.
const dayLayout = "2006-01-02"

// Day formats a time as its UTC calendar day.
func Day(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// ParseDay parses a YYYY-MM-DD string as a UTC calendar day.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(dayLayout, s, time.UTC)
}

// midnight truncates a time to its UTC calendar day.
func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// weekStart returns the Monday 00:00 UTC of the ISO week containing t.
func weekStart(t time.Time) time.Time {
	t = midnight(t)
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return t.AddDate(0, 0, -offset)
}

// ComputeStreakState derives the streak for a cadence from raw completion
// dates. today anchors streak currency; dates may arrive in any order and
// may contain duplicates or unparseable strings (ignored). The result is a
// pure function of its inputs.
func ComputeStreakState(c Cadence, dates []string, today time.Time) StreakState {
	days := parseDays(dates)
	if len(days) == 0 {
		return StreakState{}
	}

	st := StreakState{LastCompleted: Day(days[len(days)-1])}
	if c.Kind == CadenceWeekly {
		st.Current, st.Longest = weeklyStreak(days, weeklyTarget(c), today)
	} else {
		st.Current, st.Longest = dailyStreak(days, today)
	}
	return st
}

// parseDays converts, dedupes, and sorts completion dates ascending.
func parseDays(dates []string) []time.Time {
	seen := make(map[string]bool, len(dates))
	var days []time.Time
	for _, d := range dates {
		if seen[d] {
			continue
		}
		t, err := ParseDay(d)
		if err != nil {
			continue
		}
		seen[d] = true
		days = append(days, t)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// dailyStreak walks the sorted days, measuring runs of consecutive calendar
// days. The trailing run only counts as current when it reaches today or
// yesterday: a day-old gap breaks the streak.
func dailyStreak(days []time.Time, today time.Time) (current, longest int) {
	run := 0
	var prev time.Time
	for i, d := range days {
		if i > 0 && d.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = d
	}

	last := days[len(days)-1]
	if gap := midnight(today).Sub(last); gap <= 24*time.Hour {
		current = run
	}
	return current, longest
}

// weeklyStreak measures runs of consecutive qualifying ISO weeks. A week
// qualifies when it holds at least target completions. The trailing run is
// current only when it reaches the current or the previous week — the
// current week may still be in progress, but an older gap breaks it.
func weeklyStreak(days []time.Time, target int, today time.Time) (current, longest int) {
	if target < 1 {
		target = 1
	}

	perWeek := make(map[time.Time]int)
	for _, d := range days {
		perWeek[weekStart(d)]++
	}

	var weeks []time.Time
	for w, n := range perWeek {
		if n >= target {
			weeks = append(weeks, w)
		}
	}
	if len(weeks) == 0 {
		return 0, 0
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })

	run := 0
	var prev time.Time
	for i, w := range weeks {
		if i > 0 && w.Sub(prev) == 7*24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = w
	}

	last := weeks[len(weeks)-1]
	if gap := weekStart(today).Sub(last); gap <= 7*24*time.Hour {
		current = run
	}
	return current, longest
}
