package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a project's resources and assignments from YAML or JSON",
		Long: `Import loads one project, its resources and their assignments in a
single transaction. An existing project with the same short ID is extended,
and resources whose names already exist are reused.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.importUseCase().Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			verb := "Updated"
			if result.ProjectCreated {
				verb = "Imported"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s project %s [%s]: %d resources added, %d reused, %d assignments\n",
				verb, result.Project.Name, result.Project.ShortID,
				result.ResourcesCreated, result.ResourcesReused, result.AssignmentCount)
			return nil
		},
	}
}
