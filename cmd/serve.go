package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/comparison-cli/internal/api"
	"github.com/sells-group/comparison-cli/internal/fetcher"
	"github.com/sells-group/comparison-cli/internal/report"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the comparison API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		cfg.Server.Port = port
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		// Without a data API only POST /v1/reports and the run routes work.
		var src fetcher.Source
		if cfg.API.BaseURL != "" {
			client, closeSrc, err := initSource(ctx)
			if err != nil {
				return err
			}
			defer closeSrc()
			src = client
		} else {
			zap.L().Warn("api.base_url not set; section reports are disabled")
		}

		srv := &http.Server{
			Addr: fmt.Sprintf(":%d", port),
			Handler: api.NewRouter(api.Deps{
				Source:         src,
				Store:          st,
				Builder:        report.NewBuilder(&cfg.Scoring.Weights),
				AllowedOrigins: cfg.Server.AllowedOrigins,
			}),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				zap.L().Warn("server shutdown", zap.Error(err))
			}
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
