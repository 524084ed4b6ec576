package importer

import (
	"fmt"
	"strings"

	"github.com/sitecrew/gantt/internal/dateonly"
	"github.com/sitecrew/gantt/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error
	errs = append(errs, validateProject(&schema.Project)...)
	errs = append(errs, validateTasks(schema.Tasks)...)
	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error

	if p.ShortID == "" {
		errs = append(errs, fmt.Errorf("project.short_id is required"))
	} else {
		proj := domain.Project{ShortID: strings.ToUpper(p.ShortID)}
		if err := proj.ValidateShortID(); err != nil {
			errs = append(errs, fmt.Errorf("project.short_id: %w", err))
		}
	}
	if p.Name == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}
	if p.StartDate == "" {
		errs = append(errs, fmt.Errorf("project.start_date is required"))
	} else if _, err := dateonly.Parse(p.StartDate); err != nil {
		errs = append(errs, fmt.Errorf("project.start_date: %w", err))
	}

	return errs
}

func validateTasks(tasks []TaskImport) []error {
	var errs []error

	keys := make(map[string]int)
	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)
		if t.HierarchyNumber == "" {
			continue
		}
		if _, ok := domain.ParseHierarchy(t.HierarchyNumber); !ok {
			errs = append(errs, fmt.Errorf("%s.hierarchy_number: %q is not a dotted number", prefix, t.HierarchyNumber))
			continue
		}
		key := domain.NormalizeHierarchy(t.HierarchyNumber)
		if first, dup := keys[key]; dup {
			errs = append(errs, fmt.Errorf("%s.hierarchy_number: duplicate %q (first used by tasks[%d])", prefix, t.HierarchyNumber, first))
			continue
		}
		keys[key] = i
	}

	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)

		if strings.TrimSpace(t.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}

		start, startErr := validateDate(prefix+".start_date", t.StartDate, true)
		if startErr != nil {
			errs = append(errs, startErr)
		}
		end, endErr := validateDate(prefix+".end_date", t.EndDate, false)
		if endErr != nil {
			errs = append(errs, endErr)
		}
		if startErr == nil && endErr == nil && !end.IsZero() && end.Before(start) {
			errs = append(errs, fmt.Errorf("%s.end_date %q must not be before start_date %q", prefix, t.EndDate, t.StartDate))
		}

		if t.Duration != nil && *t.Duration < 0 {
			errs = append(errs, fmt.Errorf("%s.duration must not be negative", prefix))
		}
		if t.Progress != nil && (*t.Progress < 0 || *t.Progress > 100) {
			errs = append(errs, fmt.Errorf("%s.progress must be between 0 and 100", prefix))
		}

		if t.Predecessor != "" {
			p, err := domain.ParsePredecessor(t.Predecessor)
			switch {
			case err != nil:
				errs = append(errs, fmt.Errorf("%s.predecessor: %w", prefix, err))
			case p.Key == domain.NormalizeHierarchy(t.HierarchyNumber):
				errs = append(errs, fmt.Errorf("%s.predecessor: task references itself", prefix))
			default:
				if _, ok := keys[p.Key]; !ok {
					errs = append(errs, fmt.Errorf("%s.predecessor: no task has hierarchy_number %q", prefix, p.Key))
				}
			}
		}
	}

	return errs
}

func validateDate(field, s string, required bool) (dateonly.Date, error) {
	if s == "" {
		if required {
			return dateonly.Date{}, fmt.Errorf("%s is required", field)
		}
		return dateonly.Date{}, nil
	}
	d, err := dateonly.Parse(s)
	if err != nil {
		return dateonly.Date{}, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}
