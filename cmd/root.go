package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/holocron/config"
	"github.com/s0up4200/holocron/logging"
	"github.com/s0up4200/holocron/swapi"
)

var (
	cfgFile     string
	cfg         *config.Config
	logger      zerolog.Logger
	swapiClient swapiService

	// Persistent overrides
	swapiURL string
	logLevel string

	appVersion   = "dev"
	appBuildTime = "unknown"
)

// swapiService is what the commands need from a SWAPI client
type swapiService interface {
	swapi.API
	swapi.Collector
	BaseURL() string
	TestConnection(ctx context.Context) error
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "holocron",
	Short: "Consistency checks and browsing for the Star Wars API",
	Long: `holocron talks to a SWAPI instance. The run command walks films, planets,
species and starships and checks that their references hold together. The
browse commands list and look up entities directly.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion records build information shown by the version command
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
	rootCmd.Version = version
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&swapiURL, "url", "", "SWAPI base URL (overrides swapi.url)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp loads the configuration and builds the logger and client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if swapiURL != "" {
		cfg.SWAPI.URL = swapiURL
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger = logging.New(cfg.Logging, cmd.ErrOrStderr())

	client, err := swapi.NewClient(cfg.SWAPI.URL, logger,
		swapi.WithTimeout(cfg.SWAPI.Timeout),
		swapi.WithMaxRetries(cfg.SWAPI.Retries),
		swapi.WithUserAgent(cfg.SWAPI.UserAgent),
		swapi.WithLenientStatus(cfg.SWAPI.LenientStatus),
		swapi.WithConcurrency(cfg.Scenario.Concurrency),
	)
	if err != nil {
		return fmt.Errorf("failed to create SWAPI client: %w", err)
	}
	swapiClient = client

	logger.Debug().
		Str("url", swapiClient.BaseURL()).
		Dur("timeout", cfg.SWAPI.Timeout).
		Int("retries", cfg.SWAPI.Retries).
		Msg("SWAPI client ready")

	return nil
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to SWAPI",
	Long:  `Test the connection to the configured SWAPI and show how many entities each category holds.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	fmt.Fprintf(out, "Testing connection to SWAPI at %s...\n", swapiClient.BaseURL())

	if err := swapiClient.TestConnection(ctx); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	fmt.Fprintln(out, "✓ Connection successful!")

	root, err := swapiClient.Root(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nSWAPI Statistics:\n")
	for _, category := range swapi.Categories(root) {
		page, err := swapiClient.Page(ctx, category)
		if err != nil {
			logger.Warn().Err(err).Str("category", category).Msg("Failed to count entities")
			fmt.Fprintf(out, "- %s: unavailable\n", category)
			continue
		}
		fmt.Fprintf(out, "- %s: %d\n", category, page.Count)
	}

	return nil
}

// versionCmd prints build information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// No config or client needed
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "holocron %s (built %s)\n", appVersion, appBuildTime)
	},
}
