// Package calendar provides working-day date arithmetic. A working day is
// Monday through Friday; there is no holiday calendar.
package calendar

import "time"

// IsWorkingDay reports whether d falls on a Monday through Friday.
func IsWorkingDay(d time.Time) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// AddWorkingDays returns the date of the nth working day strictly after
// start. Offset 0 is start itself and is never counted, so n <= 0 returns
// start unchanged.
func AddWorkingDays(start time.Time, n int) time.Time {
	if n <= 0 {
		return start
	}
	d := start
	remaining := n
	for remaining > 0 {
		d = d.AddDate(0, 0, 1)
		if IsWorkingDay(d) {
			remaining--
		}
	}
	return d
}

// WorkingDayDiff counts working days strictly after start up to and
// including end. Returns 0 if end is not after start.
func WorkingDayDiff(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	count := 0
	for d := start.AddDate(0, 0, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d) {
			count++
		}
	}
	return count
}
