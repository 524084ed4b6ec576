package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveProjectID accepts a short ID (any case), a full UUID or a unique
// UUID prefix.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range projects {
		if strings.EqualFold(p.ShortID, input) {
			return p.ID, nil
		}
	}
	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTaskID accepts a full task UUID or a hierarchy number within the
// project.
func resolveTaskID(ctx context.Context, app *App, projectID, input string) (string, error) {
	if projectID == "" {
		return input, nil
	}
	tasks, err := app.Tasks.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}
	for _, t := range tasks {
		if t.HierarchyNumber == input || t.ID == input {
			return t.ID, nil
		}
	}
	return "", fmt.Errorf("task %q not found in project", input)
}
