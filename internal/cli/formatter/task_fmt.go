package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sitecrew/gantt/internal/dateonly"
	"github.com/sitecrew/gantt/internal/domain"
)

// TaskLabel indents a task name by its hierarchy depth.
func TaskLabel(t domain.ScheduleTask) string {
	depth := domain.HierarchyDepth(t.HierarchyNumber)
	indent := strings.Repeat("  ", max(0, depth-1))
	if depth == 1 {
		return indent + Bold(t.Name)
	}
	return indent + t.Name
}

// FormatTaskList renders a schedule as a table in the given task order.
func FormatTaskList(tasks []domain.ScheduleTask) string {
	headers := []string{"#", "TASK", "START", "END", "DAYS", "PRED", "PROGRESS", "RESOURCES"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		key := t.HierarchyNumber
		if key == "" {
			key = Dim("--")
		}
		rows = append(rows, []string{
			key,
			TaskLabel(t),
			DateCell(t.StartDate),
			DateCell(t.EndDate),
			fmt.Sprintf("%d", t.Duration),
			Dim(t.Predecessor),
			RenderProgress(t.Progress, 10),
			Dim(t.Resources),
		})
	}
	return RenderTable(headers, rows)
}

// RenderTimeline draws one bar per task across the schedule's date range,
// squeezed to fit width columns.
func RenderTimeline(tasks []domain.ScheduleTask, width int) string {
	if len(tasks) == 0 {
		return ""
	}
	first, last := tasks[0].StartDate, tasks[0].EndDate
	for _, t := range tasks[1:] {
		if t.StartDate.Before(first) {
			first = t.StartDate
		}
		if t.EndDate.After(last) {
			last = t.EndDate
		}
	}
	span := dateonly.CalendarDaysBetween(first, last)
	width = max(10, width)
	perCol := (span + width - 1) / width
	cols := (span + perCol - 1) / perCol

	labels := make([]string, len(tasks))
	labelWidth := 0
	for i, t := range tasks {
		labels[i] = TaskLabel(t)
		labelWidth = max(labelWidth, lipgloss.Width(labels[i]))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s\n", strings.Repeat(" ", labelWidth+colGap),
		Dim(fmt.Sprintf("%s .. %s", first, last)))
	for i, t := range tasks {
		from := t.StartDate.Sub(first) / perCol
		to := t.EndDate.Sub(first) / perCol
		bar := strings.Repeat(" ", from) +
			ProgressStyle(t.Progress).Render(strings.Repeat(filledBlock, to-from+1)) +
			strings.Repeat(" ", max(0, cols-to-1))
		pad := labelWidth - lipgloss.Width(labels[i]) + colGap
		fmt.Fprintf(&b, "%s%s%s\n", labels[i], strings.Repeat(" ", pad), bar)
	}
	return b.String()
}
