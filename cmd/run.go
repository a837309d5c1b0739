package cmd

import (
	"fmt"
	"github.com/Halsjsko/BobTheBot/bob"
	"github.com/spf13/cobra"
)

var (
	runCmd = &cobra.Command{
		Use:   "run [flags]",
		Short: "Starts the bot, the API and (optionally) the webhook server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			b, err := bob.New(cfg)
			if err != nil {
				return fmt.Errorf("error creating bot: %w", err)
			}

			if err = b.Run(ctx); err != nil {
				return fmt.Errorf("error running bot: %w", err)
			}
			return nil
		},
	}
)

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(runCmd)
}
