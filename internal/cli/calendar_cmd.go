package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/allot/internal/app"
	"github.com/alexanderramin/allot/internal/cli/formatter"
	"github.com/alexanderramin/allot/internal/domain"
	"github.com/alexanderramin/allot/internal/utilization"
	"github.com/alexanderramin/allot/internal/viewmodel"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	var project, resource string
	var month monthValue
	var tui bool

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show per-day utilization for a project month",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			filter := utilization.AllResources
			if resource != "" && resource != utilization.AllResources {
				id, err := resolveResourceID(ctx, app, resource)
				if err != nil {
					return err
				}
				filter = id
			}
			params := viewmodel.Params{
				Project:        project,
				Month:          month.Or(domain.MonthOf(app.now())),
				ResourceFilter: filter,
			}

			if tui {
				view := newCalendarView(ctx, app.calendarUseCase(), app.FetchTimeout, params)
				_, err := tea.NewProgram(view, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
				return err
			}

			fetchCtx, cancel := app.fetchContext(ctx)
			defer cancel()

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Loading "+params.Month.Title())
			}
			resp, err := app.calendarUseCase().Calendar(fetchCtx, params.CalendarRequest())
			stop()
			if err != nil {
				return calendarCmdError(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCalendar(resp.Project, resp.Calendar))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project short ID or ID")
	cmd.Flags().Var(&month, "month", "Month to show (default: current month)")
	cmd.Flags().StringVar(&resource, "resource", utilization.AllResources, "Resource ID or name, or \"all\"")
	cmd.Flags().BoolVar(&tui, "tui", false, "Open the interactive calendar")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// calendarCmdError drops the error code prefix for terminal output.
func calendarCmdError(err error) error {
	var calErr *app.CalendarError
	if !errors.As(err, &calErr) {
		return err
	}
	if calErr.Err != nil {
		return fmt.Errorf("%s: %w", calErr.Message, calErr.Err)
	}
	return fmt.Errorf("%s", calErr.Message)
}
