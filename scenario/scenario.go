// Package scenario drives the five-step SWAPI consistency check.
//
// Each step fetches fresh data, logs what it found and asserts one
// relationship between films, planets, species, starships and pilots. The
// first failing step halts the run.
package scenario

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/s0up4200/holocron/filter"
	"github.com/s0up4200/holocron/swapi"
)

// DefaultSpeciesFilter keeps species whose homeworld is the chosen planet
const DefaultSpeciesFilter = "homeworld == planetURL"

// Options selects the entities the scenario checks
type Options struct {
	Film     string
	Planet   string
	Starship string

	// SpeciesFilter is an expr predicate over a species entity. planetURL
	// and planet are bound to the planet found by name.
	SpeciesFilter string
}

// Report summarizes a run, complete or not
type Report struct {
	RunID       string
	Categories  []string
	Films       []string
	Film        string
	Planets     []string
	FilmPlanets []string
	Species     []string
	Pilots      []string
	Completed   []string
}

// Driver runs the scenario against a SWAPI
type Driver struct {
	api           swapi.API
	logger        zerolog.Logger
	describer     *Describer
	opts          Options
	speciesFilter filter.CompiledFilter
}

// NewDriver validates the options and compiles the species filter.
// api must be a usable client; it is not checked for nil.
func NewDriver(api swapi.API, logger zerolog.Logger, opts Options) (*Driver, error) {
	if opts.Film == "" || opts.Planet == "" || opts.Starship == "" {
		return nil, errors.New("scenario: film, planet and starship are required")
	}
	if opts.SpeciesFilter == "" {
		opts.SpeciesFilter = DefaultSpeciesFilter
	}

	speciesFilter, err := filter.CompileFilter(opts.SpeciesFilter)
	if err != nil {
		return nil, fmt.Errorf("scenario: species filter: %w", err)
	}

	return &Driver{
		api:           api,
		logger:        logger,
		describer:     NewDescriber(logger),
		opts:          opts,
		speciesFilter: speciesFilter,
	}, nil
}

type step struct {
	name string
	run  func(ctx context.Context, st *state) error
}

// state carries values between steps of one run
type state struct {
	report *Report
	film   swapi.Entity
}

func (d *Driver) steps() []step {
	return []step{
		{"categories", d.stepCategories},
		{"films", d.stepFilms},
		{"planets", d.stepPlanets},
		{"species", d.stepSpecies},
		{"pilots", d.stepPilots},
	}
}

// Run executes all steps in order. On failure the partial report is
// returned together with a *StepError.
func (d *Driver) Run(ctx context.Context) (*Report, error) {
	st := &state{report: &Report{RunID: uuid.NewString()}}

	d.logger.Debug().
		Str("run_id", st.report.RunID).
		Str("film", d.opts.Film).
		Str("planet", d.opts.Planet).
		Str("starship", d.opts.Starship).
		Msg("Starting SWAPI scenario")

	for i, s := range d.steps() {
		if err := ctx.Err(); err != nil {
			return st.report, &StepError{Step: i + 1, Name: s.name, Err: err}
		}

		d.logger.Debug().Int("step", i+1).Str("name", s.name).Msg("Running step")

		if err := s.run(ctx, st); err != nil {
			d.logger.Error().
				Err(err).
				Str("run_id", st.report.RunID).
				Int("step", i+1).
				Str("name", s.name).
				Msg("Scenario step failed")
			return st.report, &StepError{Step: i + 1, Name: s.name, Err: err}
		}

		st.report.Completed = append(st.report.Completed, s.name)
	}

	d.logger.Debug().Str("run_id", st.report.RunID).Msg("All scenario steps passed")
	return st.report, nil
}

// FilterSpecies keeps the species the configured filter accepts for planet
func (d *Driver) FilterSpecies(ctx context.Context, species []swapi.Entity, planet swapi.Entity) ([]swapi.Entity, error) {
	vars := map[string]any{
		"planetURL": planet.URL(),
		"planet":    map[string]any(planet),
	}
	return filter.Apply(ctx, d.speciesFilter, species, vars)
}
