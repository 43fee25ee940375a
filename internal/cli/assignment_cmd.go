package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/allot/internal/cli/formatter"
	"github.com/alexanderramin/allot/internal/validation"
	"github.com/spf13/cobra"
)

func newAssignmentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assignment",
		Aliases: []string{"assign"},
		Short:   "Manage resource assignments",
	}

	cmd.AddCommand(
		newAssignmentAddCmd(app),
		newAssignmentListCmd(app),
		newAssignmentDeactivateCmd(app),
		newAssignmentRemoveCmd(app),
	)

	return cmd
}

func newAssignmentAddCmd(app *App) *cobra.Command {
	var draft assignmentDraft
	var project string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Assign a resource to a project for a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			if draft.incomplete() {
				if !app.interactive() {
					return fmt.Errorf("--resource, --start, --end and --pct are required")
				}
				resources, err := app.Resources.List(ctx)
				if err != nil {
					return err
				}
				if len(resources) == 0 {
					return fmt.Errorf("no resources yet (use `allot resource add`)")
				}
				if err := assignmentForm(resources, &draft).RunWithContext(ctx); err != nil {
					return err
				}
			}

			resourceID, err := resolveResourceID(ctx, app, draft.Resource)
			if err != nil {
				return err
			}
			in, err := draft.input(projectID, resourceID)
			if err != nil {
				return err
			}

			a, err := app.Assignments.Add(ctx, in)
			if err != nil {
				return describeInputError("assignment", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Assigned %s at %s for %s (%s)\n",
				draft.Resource, formatter.FormatPercent(a.AllocationPercentage),
				formatter.DateSpan(a.StartDate, a.EndDate), a.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project short ID or ID")
	cmd.Flags().StringVar(&draft.Resource, "resource", "", "Resource ID or name")
	cmd.Flags().StringVar(&draft.Title, "title", "", "What the resource works on")
	cmd.Flags().StringVar(&draft.Start, "start", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&draft.End, "end", "", "Last day, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&draft.Pct, "pct", "", "Allocation percentage (0-100)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newAssignmentListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}
			assignments, err := app.Assignments.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(assignments) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No assignments in %s.\n", p.DisplayID())
				return nil
			}

			resources, err := app.Resources.List(ctx)
			if err != nil {
				return err
			}
			names := make(map[string]string, len(resources))
			for _, r := range resources {
				names[r.ID] = r.Name
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAssignmentList(p, assignments, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project short ID or ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newAssignmentDeactivateCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "deactivate ID",
		Short: "Stop counting an assignment toward utilization, keeping it for history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveAssignmentID(ctx, app, project, args[0])
			if err != nil {
				return err
			}
			if err := app.Assignments.Deactivate(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deactivated assignment %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project to match an ID prefix against")

	return cmd
}

func newAssignmentRemoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete an assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveAssignmentID(ctx, app, project, args[0])
			if err != nil {
				return err
			}
			if err := app.Assignments.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed assignment %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project to match an ID prefix against")

	return cmd
}

// resolveAssignmentID passes full IDs through. With a project, a unique ID
// prefix among that project's assignments is accepted too.
func resolveAssignmentID(ctx context.Context, app *App, project, input string) (string, error) {
	if project == "" {
		return input, nil
	}
	projectID, err := resolveProjectID(ctx, app, project)
	if err != nil {
		return "", err
	}
	assignments, err := app.Assignments.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, a := range assignments {
		if a.ID == input {
			return a.ID, nil
		}
		if strings.HasPrefix(a.ID, input) {
			matches = append(matches, a.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("assignment not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("assignment ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// describeInputError turns validator failures into one readable error with
// a line per field. Other errors pass through.
func describeInputError(what string, err error) error {
	if validation.FieldErrors(err) == nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "invalid %s:", what)
	for _, fe := range validation.Describe("", err) {
		b.WriteString("\n  " + fe.Error())
	}
	return errors.New(b.String())
}
