package commands

import (
	"delivery-risk/internal/config"
	"delivery-risk/internal/logging"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose  bool
	dataPath string
	cfg      *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "delivery-risk",
	Short: "Delivery risk analytics over order, driver and missing-item data",
	Long: `Analyses delivery orders for missing items and reports risk per driver, product,
region and delivery hour together with headline KPIs.

Without a subcommand the binary serves the analytics as MCP tools over stdio.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Init(verbose); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Error().Err(err).Msg("Failed to load configuration")
			return err
		}
		if dataPath != "" {
			cfg.DataPath = dataPath
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("dataPath", cfg.DataPath).
			Msg("delivery-risk starting")
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data-path", "", "directory holding the source files (overrides DELIVERY_DATA_PATH)")
}
