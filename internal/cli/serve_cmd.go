package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/alexanderramin/allot/internal/httpapi"
	"github.com/m-mizutani/ctxlog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve calendars and assignments over a JSON HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = app.HTTPAddr
			}

			server := httpapi.NewServer(ctx, addr, httpapi.Services{
				Projects:    app.Projects,
				Resources:   app.Resources,
				Assignments: app.Assignments,
				Calendar:    app.Calendar,
			})

			errCh := make(chan error, 1)
			go func() {
				ctxlog.From(ctx).Info("starting http server", "addr", addr)
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			ctxlog.From(ctx).Info("shutting down http server")
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from ALLOT_HTTP_ADDR)")

	return cmd
}
