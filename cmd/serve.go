package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"cardpress/feature/serve"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve reconciled card images over HTTP",
	Long: `Starts a read-only HTTP server over the artifact store, using the same key
layout the pipeline writes. Intended to sit behind a CDN or local client.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps()
		if err != nil {
			return err
		}
		defer d.log.Sync()

		app := serve.NewApp(d.store, d.log)

		// Graceful shutdown on SIGINT/SIGTERM.
		go func() {
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit
			d.log.Info("shutting down asset server")
			_ = app.Shutdown()
		}()

		d.log.Info("asset server listening", zap.String("port", d.cfg.Server.Port))
		return app.Listen(":" + d.cfg.Server.Port)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
