package main

import (
	"context"
	"os"
	"time"

	"github.com/aretw0/brochure/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Initialize the data service, load the configured brochure once and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		seedPath, _ := cmd.Flags().GetString("seed")
		ctx := cmd.Context()

		b := openBackend(cfg)
		defer b.close()
		if err := b.seedFrom(ctx, seedPath); err != nil {
			return err
		}

		client, err := newClient(b.service)
		if err != nil {
			return err
		}
		defer client.Close()

		client.Start(ctx)
		printer := tui.NewPrinter(os.Stdout)
		if state, err := client.WaitReady(ctx); err != nil {
			// Trigger anyway: the display then shows the not-ready status.
			printer.State(state, err)
		}

		outcome := <-client.Trigger()

		displayCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		title, price, err := client.Display(displayCtx)
		if err != nil {
			return err
		}
		if err := printer.Outcome(outcome, title, price); err != nil {
			return err
		}
		return outcomeError(outcome)
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().String("seed", "", "YAML seed file written to the data service before loading")
}
