package main

import (
	"fmt"

	"github.com/aretw0/brochure"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of brochure",
	// Needs no config.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("brochure version %s\n", brochure.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
