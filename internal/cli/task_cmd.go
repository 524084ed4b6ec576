package cli

import (
	"fmt"

	"github.com/sitecrew/gantt/internal/cli/formatter"
	"github.com/sitecrew/gantt/internal/dateonly"
	"github.com/sitecrew/gantt/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage schedule tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var projectFlag, name, predecessor, key, resources string
	var duration, progress int
	var start, end dateonly.Date

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to a project schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, projectFlag)
			if err != nil {
				return err
			}

			t := &domain.ScheduleTask{
				ProjectID:       projectID,
				Name:            name,
				StartDate:       start,
				EndDate:         end,
				Duration:        duration,
				Progress:        progress,
				Predecessor:     predecessor,
				HierarchyNumber: key,
				Resources:       resources,
			}
			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s to %s, %d days)\n",
				t.HierarchyNumber, t.Name, t.StartDate, t.EndDate, t.Duration)
			return nil
		},
	}

	clk := app.clockOrSystem()
	cmd.Flags().StringVarP(&projectFlag, "project", "p", "", "Project ID")
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().Var(newDateFlag(&start, clk), "start", "Start date (YYYY-MM-DD)")
	cmd.Flags().Var(newDateFlag(&end, clk), "end", "End date (default: start)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in business days (default: span)")
	cmd.Flags().IntVar(&progress, "progress", 0, "Percent complete")
	cmd.Flags().StringVar(&predecessor, "predecessor", "", `Predecessor reference, e.g. "1.2" or "1.2FS"`)
	cmd.Flags().StringVar(&key, "key", "", `Hierarchy number, e.g. "2.1"`)
	cmd.Flags().StringVar(&resources, "resources", "", "Assigned crew or trade")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var timeline bool
	var width int

	cmd := &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
				return nil
			}
			if timeline {
				fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTimeline(tasks, width))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks))
			return nil
		},
	}

	cmd.Flags().BoolVar(&timeline, "timeline", false, "Draw bars instead of a table")
	cmd.Flags().IntVar(&width, "width", 60, "Timeline width in columns")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	var projectFlag string

	cmd := &cobra.Command{
		Use:   "remove TASK",
		Short: "Delete a task by hierarchy number or ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var projectID string
			if projectFlag != "" {
				var err error
				if projectID, err = resolveProjectID(ctx, app, projectFlag); err != nil {
					return err
				}
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, taskID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectFlag, "project", "p", "", "Project ID (needed to remove by hierarchy number)")

	return cmd
}
