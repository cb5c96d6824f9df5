package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/quest/internal/httpapi"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API for the browser extension",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = app.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			router := httpapi.NewRouter(httpapi.Deps{
				Projects:       app.Projects,
				Questions:      app.Questions,
				Notes:          app.Notes,
				URLs:           app.URLs,
				Reports:        app.Reports,
				Logger:         app.logger(),
				AllowedOrigins: app.Server.AllowedOrigins,
			})
			return httpapi.Serve(ctx, addr, router, app.logger())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")

	return cmd
}
