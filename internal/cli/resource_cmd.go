package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/allot/internal/cli/formatter"
	"github.com/alexanderramin/allot/internal/domain"
	"github.com/spf13/cobra"
)

// resolveResourceID accepts a full ID, a name (any case) or an unambiguous
// ID prefix.
func resolveResourceID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("resource is required (use --resource)")
	}

	resources, err := app.Resources.List(ctx)
	if err != nil {
		return "", err
	}

	for _, r := range resources {
		if r.ID == input || strings.EqualFold(r.Name, input) {
			return r.ID, nil
		}
	}

	var matches []string
	for _, r := range resources {
		if strings.HasPrefix(r.ID, input) {
			matches = append(matches, r.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("resource not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("resource ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newResourceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Manage people and other schedulable resources",
	}

	cmd.AddCommand(
		newResourceAddCmd(app),
		newResourceListCmd(app),
		newResourceRemoveCmd(app),
	)

	return cmd
}

func newResourceAddCmd(app *App) *cobra.Command {
	var name, role string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &domain.Resource{Name: name, Role: role}
			if err := app.Resources.Create(cmd.Context(), r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added resource %s (%s)\n", r.Name, r.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Resource name")
	cmd.Flags().StringVar(&role, "role", "", "Role, e.g. Engineer")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newResourceListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			resources, err := app.Resources.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(resources) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No resources found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatResourceList(resources))
			return nil
		},
	}
}

func newResourceRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID|NAME",
		Short: "Remove a resource and all of its assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveResourceID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Resources.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed resource %s\n", args[0])
			return nil
		},
	}
}
