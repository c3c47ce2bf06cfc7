package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/s0up4200/holocron/scenario"
)

var (
	runFilm          string
	runPlanet        string
	runStarship      string
	runSpeciesFilter string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the SWAPI consistency scenario",
	Long: `Run the five scenario steps against SWAPI:

1. list all entity categories
2. list all films and describe the chosen film
3. list all planets and describe every planet of the film
4. list the film's species native to the chosen planet
5. describe every pilot of the chosen starship

The command exits non-zero as soon as a step fails.`,
	RunE: runScenario,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFilm, "film", "", "film title (overrides scenario.film)")
	runCmd.Flags().StringVar(&runPlanet, "planet", "", "planet name (overrides scenario.planet)")
	runCmd.Flags().StringVar(&runStarship, "starship", "", "starship name (overrides scenario.starship)")
	runCmd.Flags().StringVar(&runSpeciesFilter, "species-filter", "", "expr predicate selecting species (overrides scenario.species_filter)")
}

func runScenario(cmd *cobra.Command, args []string) error {
	opts := scenario.Options{
		Film:          firstNonEmpty(runFilm, cfg.Scenario.Film),
		Planet:        firstNonEmpty(runPlanet, cfg.Scenario.Planet),
		Starship:      firstNonEmpty(runStarship, cfg.Scenario.Starship),
		SpeciesFilter: firstNonEmpty(runSpeciesFilter, cfg.Scenario.SpeciesFilter),
	}

	driver, err := scenario.NewDriver(swapiClient, logger, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := driver.Run(ctx)
	if err != nil {
		if ctx.Err() == context.Canceled {
			logger.Warn().Str("run_id", report.RunID).Msg("Scenario interrupted")
		}
		return fmt.Errorf("scenario failed: %w", err)
	}

	logger.Info().
		Str("run_id", report.RunID).
		Int("steps", len(report.Completed)).
		Msg("Scenario passed")

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
