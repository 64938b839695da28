package main

import (
	"errors"
	"fmt"

	"github.com/akeren/waitlist-api/internal/intake"
	"github.com/akeren/waitlist-api/pkg/client"
	"github.com/spf13/cobra"
)

var errNotJoined = errors.New("submission was not accepted")

func newSubmitCommand() *cobra.Command {
	var (
		name, email, phone string
		configFile         string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Join the waitlist without the interactive form",
		Long: `Runs the three intake steps with the given values against the API at
WAITLIST_API_URL. Exits non-zero if any step fails validation or the API
refuses the submission.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := client.LoadConfig(configFile)
			if err != nil {
				return err
			}
			c, err := client.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			ctrl := intake.NewController(client.NewSubmitter(c), intake.WithManualReset())
			for _, value := range []string{name, email, phone} {
				ctrl.SetCurrent(value)
				switch ctrl.Advance(cmd.Context()) {
				case intake.OutcomeAdvanced:
					continue
				case intake.OutcomeJoined:
					fmt.Fprintln(cmd.OutOrStdout(), ctrl.State().Message.Text)
					return nil
				default:
					fmt.Fprintln(cmd.ErrOrStderr(), ctrl.State().Message.Text)
					return errNotJoined
				}
			}
			return errNotJoined
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "your name")
	cmd.Flags().StringVar(&email, "email", "", "your email address")
	cmd.Flags().StringVar(&phone, "phone", "", "your phone number, 7 to 15 digits")
	cmd.Flags().StringVar(&configFile, "config", ".env", "file to read WAITLIST_API_URL from when it is not in the environment")
	return cmd
}
