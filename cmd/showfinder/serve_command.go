package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/client"
	"github.com/Belphemur/ShowFinder/internal/config"
	grpcserver "github.com/Belphemur/ShowFinder/internal/grpc"
	"github.com/Belphemur/ShowFinder/internal/metrics"
	"github.com/Belphemur/ShowFinder/internal/render"
	"github.com/Belphemur/ShowFinder/internal/services"
	"github.com/Belphemur/ShowFinder/internal/session"
	"github.com/Belphemur/ShowFinder/internal/store"
	"github.com/Belphemur/ShowFinder/internal/web"
)

// shutdownTimeout bounds the graceful shutdown of the HTTP servers.
const shutdownTimeout = 10 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the web UI, the JSON API and the gRPC service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(sigCtx, ctx.configValue())
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger := config.GetLogger()

	logger.Info().
		Str("tvmaze_base_url", cfg.TVMazeBaseURL).
		Str("proxy_connection_string", cfg.ProxyConnectionString).
		Int("server_port", cfg.Server.Port).
		Str("server_address", cfg.Server.Address).
		Str("session_provider", cfg.Session.Provider).
		Str("summary_mode", cfg.Render.SummaryMode).
		Msg("Application started with configuration")

	if err := apperrors.InitReporting(cfg.Sentry.DSN, cfg.Sentry.Environment); err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize error reporting, continuing without it")
	}
	defer apperrors.FlushReporting(2 * time.Second)

	upstream := client.NewClient(cfg)
	defer upstream.Close()

	sessionTTL := config.ParseDuration("session.ttl", cfg.Session.TTL, 30*time.Minute)
	sessionStore, err := store.New(cfg.Session.Provider, store.ProviderConfig{
		Size:          cfg.Session.Size,
		TTL:           sessionTTL,
		RedisAddress:  cfg.Session.RedisAddress,
		RedisPassword: cfg.Session.RedisPassword,
		RedisDB:       cfg.Session.RedisDB,
		Group:         "sessions",
	})
	if err != nil {
		return fmt.Errorf("create session store: %w", err)
	}
	defer func() {
		if err := sessionStore.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close session store")
		}
	}()

	renderer, err := render.New(cfg.Render.SummaryMode)
	if err != nil {
		return err
	}

	sessions := session.NewManager(sessionStore, sessionTTL)
	browser := services.NewShowBrowser(upstream, sessions)
	handler := web.NewHandler(browser, upstream, renderer, sessions)
	webServer := web.NewHTTPServer(cfg.Server.Address, cfg.Server.Port, handler.Router())

	// Bind the gRPC port before starting anything so a busy port fails fast.
	var (
		grpcServer   *grpc.Server
		grpcListener net.Listener
	)
	if cfg.GRPC.Enabled {
		address := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.GRPC.Port)
		grpcListener, err = net.Listen("tcp", address)
		if err != nil {
			return fmt.Errorf("listen gRPC on %s: %w", address, err)
		}
		grpcServer = grpcserver.NewGRPCServer(upstream)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("address", webServer.Addr).Msg("Starting web server")
		if err := webServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return shutdownHTTP(webServer)
	})

	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		g.Go(func() error {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve metrics: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			return shutdownHTTP(metricsServer)
		})
	}

	if grpcServer != nil {
		g.Go(func() error {
			logger.Info().Str("address", grpcListener.Addr().String()).Msg("Starting gRPC server")
			if err := grpcServer.Serve(grpcListener); err != nil {
				return fmt.Errorf("serve gRPC: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			grpcServer.GracefulStop()
			return nil
		})
	}

	err = g.Wait()
	logger.Info().Msg("Server stopped gracefully")
	return err
}

func shutdownHTTP(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown %s: %w", srv.Addr, err)
	}
	return nil
}
