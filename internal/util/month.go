package util

import "time"

// PreviousMonth returns the year and month for the previous month
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// MonthBounds returns the first and last day of the given month at midnight UTC
func MonthBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// MonthKey formats t as "YYYY-MM"
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// DayOf discards the time-of-day component, keeping the calendar date in UTC
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the number of whole calendar days from now until t.
// Negative when t is in the past.
func DaysUntil(now, t time.Time) int {
	return int(DayOf(t).Sub(DayOf(now)).Hours() / 24)
}
