// Package clock supplies "today" for callers that default an anchor date.
// The date engine itself never reads a clock.
package clock

import (
	"time"

	"github.com/sitecrew/gantt/internal/dateonly"
)

type Clock interface {
	Today() dateonly.Date
}

// System reads the wall clock in Location, or the local zone when nil.
type System struct {
	Location *time.Location
}

func (s System) Today() dateonly.Date {
	now := time.Now()
	if s.Location != nil {
		now = now.In(s.Location)
	}
	return dateonly.FromTime(now)
}

// Fixed always returns the same date.
type Fixed dateonly.Date

func (f Fixed) Today() dateonly.Date { return dateonly.Date(f) }
