package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hightemp/countrydata/internal/config"
	"github.com/hightemp/countrydata/internal/server"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve flags, countries and currencies over HTTP",
	Long: `Starts a read-only HTTP API once the reference data is loaded.

Endpoints:
  GET /healthz
  GET /flags/{identifier}
  GET /flags?id=fr&id=de
  GET /countries
  GET /countries/{identifier}
  GET /currencies
  GET /metrics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := mustLoadApp()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		handler := server.NewRouter(server.New(a.dir, a.logger), a.registry, a.logger)
		return server.ListenAndServe(ctx, listenAddr, handler, a.logger)
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", config.DefaultListenAddr, "listen address")
}
