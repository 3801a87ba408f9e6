package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/brochure/internal/config"
	"github.com/aretw0/brochure/internal/logging"
	"github.com/spf13/cobra"
)

// Settings shared by every subcommand, resolved in PersistentPreRunE.
var (
	v       = config.New()
	cfg     *config.Config
	logger  *slog.Logger
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:   "brochure",
	Short: "brochure fetches a brochure record and shows its title and price",
	Long: `brochure connects to a remote key-value service (Redis), waits for it to be ready,
then loads brochures/<identifier> and shows the title and price fields.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(v, cfgPath)
		if err != nil {
			return err
		}
		logger = logging.New(logging.ParseLevel(cfg.Log.Level))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "config file (default: ./brochure.yaml if present)")
	flags.StringP("id", "i", "", "record identifier to load (brochures/<id>)")
	flags.String("backend", "", "data service backend: redis or memory")
	flags.String("redis-addr", "", "redis address (host:port)")
	flags.String("log-level", "", "log level: debug, info, warn, error")

	for key, name := range map[string]string{
		config.KeyIdentifier:   "id",
		config.KeyBackend:      "backend",
		config.KeyRedisAddress: "redis-addr",
		config.KeyLogLevel:     "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}
