package main

import (
	"fmt"

	"github.com/aretw0/brochure/internal/config"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed FILE",
	Short: "Write the brochures from a YAML seed file to the data service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Backend == config.BackendMemory {
			return fmt.Errorf("seed needs a persistent backend, got %q", cfg.Backend)
		}

		b := openBackend(cfg)
		defer b.close()

		if _, err := b.service.CheckDependencies(cmd.Context()); err != nil {
			return err
		}
		return b.seedFrom(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
