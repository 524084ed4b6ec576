package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sitecrew/gantt/internal/cli/formatter"
	"github.com/sitecrew/gantt/internal/domain"
	"github.com/spf13/cobra"
)

func newViewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "view PROJECT",
		Short: "Browse a project's schedule interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}

			if !app.interactive() {
				tasks, err := app.Tasks.ListByProject(ctx, projectID)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProject(p))
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks))
				return nil
			}

			_, err = tea.NewProgram(newScheduleView(app, p), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
}

type scheduleLoadedMsg struct {
	tasks []domain.ScheduleTask
	err   error
}

type viewKeys struct {
	Up, Down, Timeline, Refresh, Quit key.Binding
}

var scheduleViewKeys = viewKeys{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Timeline: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "timeline")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// scheduleView shows one project's tasks as a scrollable table, with a
// timeline of the selected task underneath.
type scheduleView struct {
	app      *App
	project  *domain.Project
	tasks    []domain.ScheduleTask
	table    table.Model
	timeline bool
	loading  bool
	err      error
	width    int
}

func newScheduleView(app *App, p *domain.Project) *scheduleView {
	t := table.New(
		table.WithColumns(scheduleColumns()),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(formatter.ColorHeader).Bold(true).
		BorderStyle(lipgloss.NormalBorder()).BorderForeground(formatter.ColorDim).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(formatter.ColorFg).Background(formatter.ColorHeader)
	t.SetStyles(styles)

	return &scheduleView{app: app, project: p, table: t, loading: true, width: 80}
}

func scheduleColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 7},
		{Title: "Task", Width: 32},
		{Title: "Start", Width: 10},
		{Title: "End", Width: 10},
		{Title: "Days", Width: 4},
		{Title: "Pred", Width: 8},
		{Title: "%", Width: 4},
	}
}

func (v *scheduleView) Init() tea.Cmd {
	return v.load()
}

func (v *scheduleView) load() tea.Cmd {
	app, projectID := v.app, v.project.ID
	return func() tea.Msg {
		tasks, err := app.Tasks.ListByProject(context.Background(), projectID)
		return scheduleLoadedMsg{tasks: tasks, err: err}
	}
}

func (v *scheduleView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scheduleLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.tasks = msg.tasks
			v.table.SetRows(scheduleRows(msg.tasks))
		}
		return v, nil

	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.table.SetHeight(max(5, msg.Height-12))
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, scheduleViewKeys.Quit):
			return v, tea.Quit
		case key.Matches(msg, scheduleViewKeys.Timeline):
			v.timeline = !v.timeline
			return v, nil
		case key.Matches(msg, scheduleViewKeys.Refresh):
			v.loading = true
			return v, v.load()
		}
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

func scheduleRows(tasks []domain.ScheduleTask) []table.Row {
	rows := make([]table.Row, len(tasks))
	for i, t := range tasks {
		rows[i] = table.Row{
			t.HierarchyNumber,
			strings.Repeat("  ", max(0, domain.HierarchyDepth(t.HierarchyNumber)-1)) + t.Name,
			t.StartDate.String(),
			t.EndDate.String(),
			fmt.Sprintf("%d", t.Duration),
			t.Predecessor,
			fmt.Sprintf("%d", t.Progress),
		}
	}
	return rows
}

func (v *scheduleView) View() string {
	var b strings.Builder
	b.WriteString(formatter.FormatProject(v.project) + "\n\n")

	switch {
	case v.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n")
	case v.loading:
		b.WriteString(formatter.Dim("Loading...") + "\n")
	case len(v.tasks) == 0:
		b.WriteString(formatter.Dim("No tasks.") + "\n")
	case v.timeline:
		b.WriteString(formatter.RenderTimeline(v.tasks, max(20, v.width-40)))
	default:
		b.WriteString(v.table.View() + "\n")
		if i := v.table.Cursor(); i >= 0 && i < len(v.tasks) {
			t := v.tasks[i]
			b.WriteString("\n" + formatter.HumanDate(t.StartDate) + formatter.Dim(" → ") +
				formatter.HumanDate(t.EndDate) + "  " + formatter.RenderProgress(t.Progress, 20) + "\n")
			if t.Resources != "" {
				b.WriteString(formatter.Dim(t.Resources) + "\n")
			}
		}
	}

	k := scheduleViewKeys
	help := make([]string, 0, 5)
	for _, bnd := range []key.Binding{k.Up, k.Down, k.Timeline, k.Refresh, k.Quit} {
		help = append(help, bnd.Help().Key+" "+formatter.Dim(bnd.Help().Desc))
	}
	b.WriteString("\n" + strings.Join(help, "  "))
	return b.String()
}
