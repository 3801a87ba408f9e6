package main

import (
	"os"

	"github.com/aretw0/brochure/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Run the data service initialization only and report the connection state",
	RunE: func(cmd *cobra.Command, args []string) error {
		b := openBackend(cfg)
		defer b.close()

		client, err := newClient(b.service)
		if err != nil {
			return err
		}
		defer client.Close()

		client.Start(cmd.Context())
		state, err := client.WaitReady(cmd.Context())
		if perr := tui.NewPrinter(os.Stdout).State(state, err); perr != nil {
			return perr
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
