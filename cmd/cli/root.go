package main

import (
	"os"

	"github.com/akeren/waitlist-api/config"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the cli command tree. Each call returns a fresh tree
// so tests can run commands in isolation.
func NewRootCommand() *cobra.Command {
	// stdout belongs to command output.
	logger := log.NewLogger(os.Stderr, log.ParseLevel(os.Getenv("LOG_LEVEL")))

	root := &cobra.Command{
		Use:           "cli",
		Short:         "Waitlist API operations",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(*cobra.Command, []string) {
			config.InitializeEnvFile(logger)
		},
	}

	root.AddCommand(newMigrateCommand(logger))
	root.AddCommand(newSubmitCommand())
	return root
}
