package cli

import (
	"fmt"
	"strconv"

	"github.com/sitecrew/gantt/internal/dateonly"
	"github.com/spf13/cobra"
)

func newDateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "date",
		Short: "Business-day calendar arithmetic",
	}

	cmd.AddCommand(
		newDateUnaryCmd(app, "next DATE", "First business day after DATE", dateonly.NextBusinessDay),
		newDateUnaryCmd(app, "prev DATE", "Last business day before DATE", dateonly.PreviousBusinessDay),
		newDateUnaryCmd(app, "ensure DATE", "DATE, or the next business day if it falls on a weekend", dateonly.EnsureBusinessDay),
		newDateAddCmd(app),
		newDateBetweenCmd(app),
	)

	return cmd
}

func newDateUnaryCmd(app *App, use, short string, fn func(dateonly.Date) dateonly.Date) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDateArg(app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), fn(d))
			return nil
		},
	}
}

func newDateAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add DATE N",
		Short: "Move N business days from DATE (negative N moves back)",
		Args:  cobra.ExactArgs(2),

		// Negative counts would otherwise parse as shorthand flags.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDateArg(app, args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid day count %q", args[1])
			}
			if n < 0 {
				fmt.Fprintln(cmd.OutOrStdout(), dateonly.SubtractBusinessDays(d, -n))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), dateonly.AddBusinessDays(d, n))
			return nil
		},
	}
}

func newDateBetweenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "between START END",
		Short: "Count business and calendar days in [START, END]",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDateArg(app, args[0])
			if err != nil {
				return err
			}
			end, err := parseDateArg(app, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d business days, %d calendar days\n",
				dateonly.BusinessDaysBetween(start, end), dateonly.CalendarDaysBetween(start, end))
			return nil
		},
	}
}
