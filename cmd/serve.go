package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cris-labs/cris/internal/api"
	"github.com/cris-labs/cris/internal/intake"
	"github.com/cris-labs/cris/internal/scorecache"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}

		cache, err := e.openCache(ctx)
		if err != nil {
			return eris.Wrap(err, "open score cache")
		}
		e.Cache = cache
		defer e.Close()

		scorer := scorecache.NewScorer(
			e.Predictor,
			cache,
			time.Duration(cfg.ScoreCache.TTLHours)*time.Hour,
			cfg.ScoreCache.Concurrency,
		)
		svc := intake.NewService(e.Store, e.Predictor, time.Duration(cfg.Predictor.TimeoutSecs)*time.Second)

		server := api.NewServer(e.Store, svc, scorer, e.Avatars)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: server.Router(cfg.Server.CORSOrigins),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
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
