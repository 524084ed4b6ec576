// Package schedule shifts task schedules onto new anchor dates and re-derives
// dependent task dates from their predecessors.
//
// Everything here is a pure function over task snapshots: inputs are never
// mutated, no clock is read, and the same inputs always give the same output.
package schedule

import (
	"errors"
	"fmt"

	"github.com/sitecrew/gantt/internal/dateonly"
	"github.com/sitecrew/gantt/internal/domain"
)

var ErrEmptySchedule = errors.New("schedule has no tasks")

// Options controls optional copy behavior.
type Options struct {
	// StripResources clears assignee text on every shifted task.
	StripResources bool
	// HonorRelationships applies SS/FF/SF rules during re-derivation.
	// When false every predecessor is treated as finish-to-start.
	HonorRelationships bool
}

// ShiftResult is the output of the uniform shift pass.
type ShiftResult struct {
	Tasks     []domain.ScheduleTask
	ShiftDays int
	Earliest  dateonly.Date
}

// EarliestStart returns the minimum start date across tasks. Every task must
// carry both dates; a zero date fails with dateonly.ErrInvalidDate.
func EarliestStart(tasks []domain.ScheduleTask) (dateonly.Date, error) {
	if len(tasks) == 0 {
		return dateonly.Date{}, ErrEmptySchedule
	}
	var earliest dateonly.Date
	for i, t := range tasks {
		if t.StartDate.IsZero() || t.EndDate.IsZero() {
			return dateonly.Date{}, fmt.Errorf("%w: task %s has no start/end date", dateonly.ErrInvalidDate, t.ID)
		}
		if i == 0 || t.StartDate.Before(earliest) {
			earliest = t.StartDate
		}
	}
	return earliest, nil
}

// ComputeShift returns the signed calendar-day offset that moves the earliest
// task start onto anchor.
func ComputeShift(tasks []domain.ScheduleTask, anchor dateonly.Date) (int, error) {
	earliest, err := EarliestStart(tasks)
	if err != nil {
		return 0, err
	}
	return anchor.Sub(earliest), nil
}

// Shift moves every task by the offset between the earliest start and anchor,
// snapping both ends forward to business days. An end that snaps before its
// start is collapsed onto the start. A zero offset copies dates unchanged.
func Shift(tasks []domain.ScheduleTask, anchor dateonly.Date, opts Options) (ShiftResult, error) {
	if anchor.IsZero() {
		return ShiftResult{}, fmt.Errorf("%w: anchor date is required", dateonly.ErrInvalidDate)
	}
	earliest, err := EarliestStart(tasks)
	if err != nil {
		return ShiftResult{}, err
	}
	days := anchor.Sub(earliest)

	out := domain.CloneTasks(tasks)
	for i := range out {
		if days != 0 {
			start := dateonly.EnsureBusinessDay(dateonly.AddCalendarDays(out[i].StartDate, days))
			end := dateonly.EnsureBusinessDay(dateonly.AddCalendarDays(out[i].EndDate, days))
			out[i].SetDates(start, end)
		}
		if opts.StripResources {
			out[i].Resources = ""
		}
	}
	return ShiftResult{Tasks: out, ShiftDays: days, Earliest: earliest}, nil
}
