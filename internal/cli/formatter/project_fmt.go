package formatter

import (
	"fmt"
	"strings"

	"github.com/sitecrew/gantt/internal/dateonly"
	"github.com/sitecrew/gantt/internal/domain"
)

// FormatProjectList renders projects inside a bordered box.
func FormatProjectList(projects []*domain.Project, today dateonly.Date) string {
	headers := []string{"ID", "NAME", "START", ""}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		id := p.ShortID
		if strings.TrimSpace(id) == "" {
			id = TruncID(p.ID)
		}
		rows = append(rows, []string{
			id,
			Bold(p.Name),
			DateCell(p.StartDate),
			Dim(RelativeDays(p.StartDate, today)),
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProject renders a one-line project summary.
func FormatProject(p *domain.Project) string {
	return fmt.Sprintf("%s %s  %s %s",
		StyleHeader.Render(p.DisplayID()), Bold(p.Name),
		Dim("starts"), HumanDate(p.StartDate))
}
