package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/malusev998/currency-converter/logger"
	"github.com/malusev998/currency-converter/server"
)

const shutdownTimeout = 30 * time.Second

func serve(opts *options) *cobra.Command {
	var addr string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the conversion HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := opts.deps
			log := deps.log

			if addr == "" {
				addr = deps.config.HTTPAddr
			}

			srv := server.NewServer(deps.service, deps.fetcher, log, deps.registry)
			errs := make(chan error, 1)

			go func() {
				log.Info("Starting server", logger.StringField("addr", addr))

				if err := srv.Run(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errs <- err
				}

				close(errs)
			}()

			select {
			case err := <-errs:
				if err != nil {
					log.Error("Server failed", logger.ErrorField("error", err))
				}

				return err
			case <-cmd.Context().Done():
			}

			log.Info("Shutting down server...")

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Server shutdown failed", logger.ErrorField("error", err))
				return err
			}

			log.Info("Server exited properly")

			return nil
		},
	}

	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides http.addr")

	return serveCmd
}
