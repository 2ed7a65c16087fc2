package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/rl1809/storefront/internal/app"
	"github.com/rl1809/storefront/internal/config"
	"github.com/rl1809/storefront/internal/logging"
)

func main() {
	var configPath string
	cmd := &cobra.Command{
		Use:          "server",
		Short:        "Serve the storefront over HTTP and gRPC",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			serve(configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "optional config file (yaml, json or env)")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(configPath string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		logging.Default().Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		a.Close()
		logger.Fatal().Err(err).Msg("failed to build storefront")
	}

	if err := run(ctx, cfg, a, logger); err != nil {
		logger.Error().Err(err).Msg("server error")
	}

	if err := a.Close(); err != nil {
		logger.Error().Err(err).Msg("failed to close backends")
	}
	logger.Info().Msg("connections closed")
}

func run(ctx context.Context, cfg *config.Config, a *app.App, logger zerolog.Logger) error {
	// gRPC server
	grpcServer := grpc.NewServer()
	a.RegisterGRPC(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return err
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info().Str("addr", cfg.GRPCAddr).Msg("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- err
		}
	}()

	// HTTP server
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           a.HTTPHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	logger.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP shutdown")
	}
	logger.Info().Msg("HTTP server stopped")

	grpcServer.GracefulStop()
	logger.Info().Msg("gRPC server stopped")

	return serveErr
}
