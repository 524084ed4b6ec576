package cli

import (
	"fmt"

	"github.com/sitecrew/gantt/internal/cli/formatter"
	"github.com/sitecrew/gantt/internal/dateonly"
	"github.com/sitecrew/gantt/internal/service"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Copy, shift and repair schedules",
	}

	cmd.AddCommand(
		newScheduleCopyCmd(app),
		newScheduleShiftCmd(app),
		newScheduleRepairCmd(app),
	)

	return cmd
}

func newScheduleCopyCmd(app *App) *cobra.Command {
	var from, to string
	var anchor dateonly.Date
	strip := app.CopyDefaults.StripResources
	honor := app.CopyDefaults.HonorRelationships

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy one project's schedule onto another, starting at an anchor date",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sourceID, err := resolveProjectID(ctx, app, from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			targetID, err := resolveProjectID(ctx, app, to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			res, err := app.Schedule.CopySchedule(ctx, service.CopyRequest{
				SourceProjectID:    sourceID,
				TargetProjectID:    targetID,
				Anchor:             anchor,
				StripResources:     strip,
				HonorRelationships: honor,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCopyResult(res))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source project ID")
	cmd.Flags().StringVar(&to, "to", "", "Target project ID")
	cmd.Flags().Var(newDateFlag(&anchor, app.clockOrSystem()), "anchor", "New start for the earliest task (default today)")
	cmd.Flags().BoolVar(&strip, "strip-resources", strip, "Clear resource assignments on the copies")
	cmd.Flags().BoolVar(&honor, "honor-relationships", honor, "Apply SS/FF/SF predecessor types instead of treating all as FS")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newScheduleShiftCmd(app *App) *cobra.Command {
	var anchor dateonly.Date
	honor := app.CopyDefaults.HonorRelationships

	cmd := &cobra.Command{
		Use:   "shift PROJECT",
		Short: "Move a project's schedule so it starts on an anchor date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			res, err := app.Schedule.ShiftSchedule(ctx, service.ShiftRequest{
				ProjectID:          projectID,
				Anchor:             anchor,
				HonorRelationships: honor,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatShiftResult(res))
			return nil
		},
	}

	cmd.Flags().Var(newDateFlag(&anchor, app.clockOrSystem()), "anchor", "New start for the earliest task (default today)")
	cmd.Flags().BoolVar(&honor, "honor-relationships", honor, "Apply SS/FF/SF predecessor types instead of treating all as FS")

	return cmd
}

func newScheduleRepairCmd(app *App) *cobra.Command {
	var deleteOrphans, dryRun, yes bool

	cmd := &cobra.Command{
		Use:   "repair PROJECT",
		Short: "Replace placeholder hierarchy numbers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			req := service.RepairRequest{ProjectID: projectID, DeleteOrphans: deleteOrphans, DryRun: dryRun}

			if dryRun {
				res, err := app.Repair.RepairHierarchy(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, formatter.FormatRepairPlan(res.Plan))
				return nil
			}

			if deleteOrphans && !yes {
				preview, err := app.Repair.RepairHierarchy(ctx, service.RepairRequest{
					ProjectID: projectID, DeleteOrphans: true, DryRun: true,
				})
				if err != nil {
					return err
				}
				if n := len(preview.Plan.Orphans); n > 0 {
					fmt.Fprintln(out, formatter.FormatRepairPlan(preview.Plan))
					ok, err := confirmOrYes(app, false,
						fmt.Sprintf("Delete %d orphan tasks?", n),
						"Orphans have a placeholder name and no real hierarchy number.")
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(out, "Aborted.")
						return nil
					}
				}
			}

			res, err := app.Repair.RepairHierarchy(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.FormatRepairResult(res))
			return nil
		},
	}

	cmd.Flags().BoolVar(&deleteOrphans, "delete-orphans", false, "Delete unnamed tasks left on placeholder numbers")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the plan without writing")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
