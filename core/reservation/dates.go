package reservation

import "time"

// DefaultStartDateCount is the number of start dates offered to online reservations.
const DefaultStartDateCount = 6

// StartWindow is a candidate session: only Start is persisted.
type StartWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NextStartDates returns the first day of each of the `count` months following today's month.
// The current month is always skipped, even when its first day is still ahead.
func NextStartDates(today time.Time, count int) []time.Time {
	dates := make([]time.Time, 0, count)
	y, m, _ := today.Date()
	for i := 1; i <= count; i++ {
		dates = append(dates, time.Date(y, m+time.Month(i), 1, 0, 0, 0, 0, today.Location()))
	}
	return dates
}

// StartWindows pairs each start date with its end date, durationMonths later.
func StartWindows(today time.Time, count, durationMonths int) []StartWindow {
	starts := NextStartDates(today, count)
	windows := make([]StartWindow, 0, len(starts))
	for _, s := range starts {
		windows = append(windows, StartWindow{Start: s, End: s.AddDate(0, durationMonths, 0)})
	}
	return windows
}
