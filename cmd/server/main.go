package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/akeren/waitlist-api/config"
	"github.com/akeren/waitlist-api/domain"
	"github.com/akeren/waitlist-api/internal/log"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := log.NewLoggerWithJSONOutput()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, logger, os.Args[1:])
	stop()

	if err != nil {
		logger.Error("Waitlist API server stopped", "error", err)
		os.Exit(1)
	}
}

// autoMigrateRequested reports whether --auto-migrate or -m was passed.
func autoMigrateRequested(args []string) bool {
	return slices.ContainsFunc(args, func(arg string) bool {
		arg = strings.ToLower(strings.TrimSpace(arg))
		return arg == "--auto-migrate" || arg == "-m"
	})
}

// run serves the waitlist API until ctx is cancelled or the listener fails.
func run(ctx context.Context, logger *log.Logger, args []string) error {
	logger.Info("Waitlist API server initializing")

	appConfig, err := config.LoadApplicationConfiguration(logger, autoMigrateRequested(args))
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	defer appConfig.Cleanup()

	domain.SetupCoreDomain(appConfig)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- appConfig.RouterService.RunHTTPServer()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("Shutdown signal received, draining requests", "timeout", shutdownTimeout.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := appConfig.RouterService.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	logger.Info("Waitlist API server stopped cleanly")
	return nil
}
