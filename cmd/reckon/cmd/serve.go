package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gnomonic/reckon/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the evaluation service",
	Long: `Starts the HTTP evaluation service.

Endpoints:
  GET  /health      liveness probe
  POST /v1/eval     one-shot evaluation
  GET  /v1/session  WebSocket calculator session

Traces are exported over OTLP when OTEL_EXPORTER_OTLP_ENDPOINT is set.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides the config file)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr := cfg.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	degrees := cfg.Degrees
	if radians {
		degrees = false
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("config log_level: %w", err)
	}
	var logger zerolog.Logger
	if cfg.Format == "json" {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	logger = logger.With().Timestamp().Str("service", "reckon").Logger().Level(level)

	logger.Info().Str("version", Version).Str("commit", GitCommit).Msg("starting")

	shutdown, err := server.InitTracer(context.Background(), "reckon", Version)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			logger.Warn().Err(err).Msg("tracer shutdown")
		}
	}()

	srv := server.NewServer(addr, degrees, logger)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
