package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/tui"
	"github.com/akeren/waitlist-api/pkg/client"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configFile := os.Getenv("WAITLIST_CONFIG_FILE")

	cfg, err := client.LoadConfig(configFile)
	if err != nil {
		return err
	}
	c, err := client.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	// The program owns the terminal, so nothing may log to stdout.
	model := tui.New(client.NewSubmitter(c), tui.Options{
		Logger:  log.NewDiscardLogger(),
		Context: ctx,
	})

	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}
