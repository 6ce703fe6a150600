package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medilink/supply-service/config"
	"github.com/medilink/supply-service/internal/catalog"
	"github.com/medilink/supply-service/internal/collab"
	"github.com/medilink/supply-service/internal/discovery"
	"github.com/medilink/supply-service/internal/pricing"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *zerolog.Logger

	store  *catalog.Store
	board  *pricing.BoardStore
	engine *discovery.Engine
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "supply-service",
	Short: "Supply Service CLI - Medicine discovery and pricing tool",
	Long: `A CLI tool for querying the medicine discovery engine, the pharmacy
directory and the derived price board over the built-in catalog, with an
optional live collaborator inventory.`,
	PersistentPreRunE: persistentPreRun,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml or ./config.yaml)")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}
}

// persistentPreRun runs before each command and initializes dependencies
func persistentPreRun(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}

	logger = initLogger()

	store = catalog.NewStore(catalog.DefaultSeed())

	opts := pricing.DefaultFoldOptions()
	discoveryCfg := discovery.DefaultConfig()
	var inventory discovery.InventorySource
	if cfg != nil {
		opts = pricing.FoldOptions{
			DefaultCity:          cfg.Pricing.DefaultCity,
			FallbackPharmacyName: cfg.Pricing.FallbackPharmacyName,
			DisplayRating:        cfg.Pricing.DisplayRating,
		}
		discoveryCfg = discovery.Config{
			DefaultQuantity: cfg.Discovery.DefaultQuantity,
			MaxConcurrency:  cfg.Discovery.MaxConcurrency,
			CheckTimeout:    cfg.Discovery.CheckTimeout,
		}
		if cfg.Collaborator.BaseURL != "" {
			inventory = collab.NewClient(
				cfg.Collaborator.BaseURL,
				cfg.Collaborator.APIKey,
				cfg.Collaborator.Timeout,
				collab.DefaultRetryConfig(),
			)
		}
	}

	board = pricing.NewBoardStore(store, opts)
	engine = discovery.NewEngine(inventory, store, discoveryCfg)

	return nil
}

func initLogger() *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.WarnLevel
	if cfg != nil && cfg.Logging.Level != "" {
		if parsedLevel, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
			level = parsedLevel
		}
	}

	// Always use console format for CLI
	var output io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, NoColor: cfg != nil && cfg.Logging.NoColor}

	log := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &log
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
