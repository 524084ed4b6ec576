package dateonly

import "time"

// IsBusinessDay reports whether d falls Monday through Friday.
// Holidays are not modeled.
func IsBusinessDay(d Date) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// AddCalendarDays shifts d by n calendar days; n may be negative.
func AddCalendarDays(d Date, n int) Date {
	if n == 0 {
		return d
	}
	return fromDayNumber(d.dayNumber() + n)
}

// NextBusinessDay returns the first business day strictly after d.
func NextBusinessDay(d Date) Date {
	next := AddCalendarDays(d, 1)
	for !IsBusinessDay(next) {
		next = AddCalendarDays(next, 1)
	}
	return next
}

// PreviousBusinessDay returns the last business day strictly before d.
func PreviousBusinessDay(d Date) Date {
	prev := AddCalendarDays(d, -1)
	for !IsBusinessDay(prev) {
		prev = AddCalendarDays(prev, -1)
	}
	return prev
}

// EnsureBusinessDay snaps d forward to a business day. It is the identity on
// business days.
func EnsureBusinessDay(d Date) Date {
	if IsBusinessDay(d) {
		return d
	}
	return NextBusinessDay(d)
}

// AddBusinessDays walks forward from d until n business days have been
// consumed. For n <= 0 it returns d unchanged, even when d is a weekend.
func AddBusinessDays(d Date, n int) Date {
	if n <= 0 {
		return d
	}
	cur := d
	for n > 0 {
		cur = AddCalendarDays(cur, 1)
		if IsBusinessDay(cur) {
			n--
		}
	}
	return cur
}

// SubtractBusinessDays walks backward from d until n business days have been
// consumed. For n <= 0 it returns d unchanged.
func SubtractBusinessDays(d Date, n int) Date {
	if n <= 0 {
		return d
	}
	cur := d
	for n > 0 {
		cur = AddCalendarDays(cur, -1)
		if IsBusinessDay(cur) {
			n--
		}
	}
	return cur
}

// BusinessDaysBetween counts business days in [start, end], inclusive.
// It returns 0 when start is after end.
func BusinessDaysBetween(start, end Date) int {
	if start.After(end) {
		return 0
	}
	total := end.Sub(start) + 1
	weeks := total / 7
	count := weeks * 5
	cur := AddCalendarDays(start, weeks*7)
	for !cur.After(end) {
		if IsBusinessDay(cur) {
			count++
		}
		cur = AddCalendarDays(cur, 1)
	}
	return count
}

// CalendarDaysBetween counts calendar days in [start, end], inclusive.
// It returns 0 when start is after end.
func CalendarDaysBetween(start, end Date) int {
	if start.After(end) {
		return 0
	}
	return end.Sub(start) + 1
}
