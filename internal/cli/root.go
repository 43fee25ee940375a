package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/allot/internal/app"
	"github.com/alexanderramin/allot/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects    service.ProjectService
	Resources   service.ResourceService
	Assignments service.AssignmentService
	Calendar    service.CalendarService
	Import      service.ImportService

	// Use-case overrides; nil falls back to the services above.
	CalendarLoader app.CalendarUseCase
	ImportData     app.ImportUseCase

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	Logger   *slog.Logger
	HTTPAddr string
	// FetchTimeout bounds a single calendar load. Zero means no limit.
	FetchTimeout time.Duration
	// Now supplies "today" for default months.
	Now func() time.Time
}

// NewRootCmd creates the top-level "allot" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "allot",
		Short:         "Resource allocation calendar",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newResourceCmd(app),
		newAssignmentCmd(app),
		newImportCmd(app),
		newCalendarCmd(app),
		newServeCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// fetchContext applies FetchTimeout to ctx.
func (a *App) fetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.FetchTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.FetchTimeout)
}
