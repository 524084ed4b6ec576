package cli

import (
	"github.com/sitecrew/gantt/internal/clock"
	"github.com/sitecrew/gantt/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Tasks    service.TaskService
	Schedule service.ScheduleService
	Repair   service.RepairService
	Import   service.ImportService

	Clock clock.Clock

	// CopyDefaults seeds the schedule copy flags.
	CopyDefaults CopyDefaults

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil uses a huh form.
	Confirm func(title, description string) (bool, error)
}

type CopyDefaults struct {
	StripResources     bool
	HonorRelationships bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) clockOrSystem() clock.Clock {
	if a.Clock == nil {
		return clock.System{}
	}
	return a.Clock
}

// NewRootCmd creates the top-level "gantt" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	if app.Confirm == nil {
		app.Confirm = huhConfirm
	}

	root := &cobra.Command{
		Use:           "gantt",
		Short:         "Business-day construction schedules",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newTaskCmd(app),
		newImportCmd(app),
		newScheduleCmd(app),
		newDateCmd(app),
		newViewCmd(app),
	)

	return root
}
