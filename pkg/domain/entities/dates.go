package entities

import "time"

// DateLayout is the calendar-day format used on every input and output sheet
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC of its calendar day
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a calendar day by n days
func AddDays(day time.Time, n int) time.Time {
	return day.AddDate(0, 0, n)
}

// MaxDate returns the later of two days
func MaxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
