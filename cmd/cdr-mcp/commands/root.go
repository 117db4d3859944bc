package commands

import (
	"cdr-mcp/internal/config"
	"cdr-mcp/internal/dataset"
	"cdr-mcp/internal/logging"
	"cdr-mcp/internal/mcp"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	store *dataset.Store
)

var rootCmd = &cobra.Command{
	Use:   "cdr-mcp",
	Short: "CDR-MCP is a behavioral-indicator MCP server for phone metadata",
	Long: `A specialized MCP server that computes grouped behavioral indicators
(call durations, contact entropy, nocturnal activity, spatial spread) over
per-user mobile phone interaction records.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		// Load configuration
		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		// Load dataset snapshots
		store = dataset.NewStore(cfg.DataPath)
		if err := store.LoadAll(); err != nil {
			log.Fatal().Err(err).Msg("Failed to load datasets")
		}
		for _, u := range store.Users() {
			cfg.ApplyTo(u)
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Int("users", len(store.UserIDs())).
			Msg("CDR-MCP starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		log.Info().Msg("MCP Server starting Stdio loop")
		server := mcp.NewServer(cfg, store)
		if err := server.Serve(); err != nil {
			log.Fatal().Err(err).Msg("Server loop failed")
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
