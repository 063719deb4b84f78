package habit

import (
	"math"
	"sort"
)

// DefaultWindowDays is the trailing window used when a caller asks for
// progress or analytics without one.
const DefaultWindowDays = 30

// maxWindowDays caps caller-supplied windows; a year is plenty for a
// day-by-day report.
const maxWindowDays = 365

func clampWindow(days, fallback int) int {
	if days <= 0 {
		return fallback
	}
	if days > maxWindowDays {
		return maxWindowDays
	}
	return days
}

// Progress returns a day-by-day view of one habit over the trailing window
// ending today, together with its recomputed streak.
func (s *Store) Progress(habitID string, windowDays int) (*ProgressReport, error) {
	h, err := s.GetHabit(habitID)
	if err != nil {
		return nil, err
	}
	windowDays = clampWindow(windowDays, DefaultWindowDays)

	today := midnight(s.now())
	start := today.AddDate(0, 0, -(windowDays - 1))

	entries, err := s.Completions(habitID, Day(start), Day(today))
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]Completion, len(entries))
	for _, c := range entries {
		byDate[c.Date] = c
	}

	report := &ProgressReport{
		Habit:      *h,
		WindowDays: windowDays,
		Days:       make([]DayProgress, 0, windowDays),
	}
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		day := DayProgress{Date: Day(d)}
		if c, ok := byDate[day.Date]; ok {
			day.Completed = true
			day.Note = c.Note
			report.CompletedDays++
		}
		report.Days = append(report.Days, day)
	}
	report.CompletionRate = percent(report.CompletedDays, windowDays)

	dates, err := s.completionDates(habitID)
	if err != nil {
		return nil, err
	}
	report.Streak = ComputeStreakState(h.Cadence, dates, s.now())

	return report, nil
}

// Analytics aggregates across all active habits. Everything here is derived
// on demand from the habits and completions tables; nothing is cached.
func (s *Store) Analytics(windowDays int) (*AnalyticsSnapshot, error) {
	windowDays = clampWindow(windowDays, 7)

	habits, err := s.ListHabits(FilterActive)
	if err != nil {
		return nil, err
	}

	snap := &AnalyticsSnapshot{
		TotalHabits: len(habits),
		WindowDays:  windowDays,
	}
	if len(habits) == 0 {
		return snap, nil
	}

	today := midnight(s.now())
	windowStart := Day(today.AddDate(0, 0, -(windowDays - 1)))
	todayStr := Day(today)

	snap.Categories = make(map[string]int)
	streakSum := 0
	windowCompleted := 0

	for _, h := range habits {
		snap.TotalCompletions += h.TotalCompletions
		streakSum += h.Streak.Current
		if h.Category != "" {
			snap.Categories[h.Category]++
		}

		entries, err := s.Completions(h.ID, windowStart, todayStr)
		if err != nil {
			return nil, err
		}
		windowCompleted += len(entries)
		for _, c := range entries {
			if c.Date == todayStr {
				snap.TodayCompleted++
			}
		}
	}

	snap.AverageStreak = round1(float64(streakSum) / float64(len(habits)))
	snap.TodayRate = percent(snap.TodayCompleted, len(habits))
	snap.WindowRate = percent(windowCompleted, len(habits)*windowDays)

	sorted := make([]HabitWithStreak, len(habits))
	copy(sorted, habits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Streak.Current > sorted[j].Streak.Current
	})
	for i, h := range sorted {
		if i == 5 {
			break
		}
		snap.TopStreaks = append(snap.TopStreaks, TopStreak{
			HabitID: h.ID,
			Name:    h.Name,
			Current: h.Streak.Current,
		})
	}

	return snap, nil
}

// percent returns n/total as a percentage with one decimal place.
func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(n) / float64(total) * 100)
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
