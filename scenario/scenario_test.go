package scenario

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/holocron/config"
	"github.com/s0up4200/holocron/filter"
	"github.com/s0up4200/holocron/logging"
	"github.com/s0up4200/holocron/swapi"
	"github.com/s0up4200/holocron/swapi/swapitest"
)

func defaultOptions() Options {
	return Options{
		Film:     "A New Hope",
		Planet:   "Tatooine",
		Starship: "X-wing",
	}
}

func newDriver(t *testing.T, api swapi.API, logger zerolog.Logger, opts Options) *Driver {
	t.Helper()
	d, err := NewDriver(api, logger, opts)
	require.NoError(t, err)
	return d
}

func newClient(t *testing.T, srv *swapitest.Server, opts ...swapi.Option) *swapi.Client {
	t.Helper()
	client, err := swapi.NewClient(srv.BaseURL(), zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func TestRun_EndToEnd(t *testing.T) {
	srv := swapitest.NewServer(t)

	var logs bytes.Buffer
	logger := logging.New(config.LoggingConfig{Level: "info", Format: "console", Color: "never"}, &logs)

	d := newDriver(t, newClient(t, srv), logger, defaultOptions())

	report, err := d.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"categories", "films", "planets", "species", "pilots"}, report.Completed)
	assert.NotEmpty(t, report.RunID)
	assert.Contains(t, report.Categories, "films")
	assert.Equal(t, []string{"A New Hope", "The Empire Strikes Back"}, report.Films)
	assert.Equal(t, "A New Hope", report.Film)
	assert.Equal(t, []string{"Tatooine", "Alderaan", "Yavin IV"}, report.FilmPlanets)
	assert.Equal(t, []string{"Jawa"}, report.Species)
	assert.Equal(t, []string{"Luke Skywalker", "Biggs Darklighter", "Wedge Antilles"}, report.Pilots)

	out := logs.String()
	assert.Contains(t, out, "List of all SWAPI entities: [films people planets species starships vehicles]")
	assert.Contains(t, out, "List of all films: [A New Hope The Empire Strikes Back]")
	assert.Contains(t, out, `Description of "A New Hope":`)
	assert.Contains(t, out, "title: A New Hope")
	assert.Contains(t, out, `Planets of "A New Hope":`)
	assert.Contains(t, out, `Species of "Tatooine":`)
	assert.Contains(t, out, "[Jawa]")
	assert.Contains(t, out, `Pilots of the starship "X-wing":`)
	assert.Equal(t, 6, strings.Count(out, Separator), "three planets and three pilots")
}

func TestRun_ConcurrentResolveKeepsOrder(t *testing.T) {
	srv := swapitest.NewServer(t)
	d := newDriver(t, newClient(t, srv, swapi.WithConcurrency(4)), zerolog.Nop(), defaultOptions())

	report, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Tatooine", "Alderaan", "Yavin IV"}, report.FilmPlanets)
	assert.Equal(t, []string{"Luke Skywalker", "Biggs Darklighter", "Wedge Antilles"}, report.Pilots)
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name     string
		opts     func(*Options)
		setup    func(*swapitest.Server)
		wantStep int
		wantErr  error
	}{
		{
			name:     "film not found",
			opts:     func(o *Options) { o.Film = "The Phantom Menace" },
			wantStep: 2,
			wantErr:  swapi.ErrNotFound,
		},
		{
			name:     "planet without native species",
			opts:     func(o *Options) { o.Planet = "Alderaan" },
			wantStep: 4,
			wantErr:  ErrAssertion,
		},
		{
			name:     "planet not found",
			opts:     func(o *Options) { o.Planet = "Dagobah" },
			wantStep: 4,
			wantErr:  swapi.ErrNotFound,
		},
		{
			name:     "starship not found",
			opts:     func(o *Options) { o.Starship = "Death Star" },
			wantStep: 5,
			wantErr:  swapi.ErrNotFound,
		},
		{
			name:     "root unavailable",
			setup:    func(s *swapitest.Server) { s.FailWith("/api/", http.StatusInternalServerError) },
			wantStep: 1,
		},
		{
			name:     "planets collection unavailable",
			setup:    func(s *swapitest.Server) { s.FailWith("/api/planets/", http.StatusServiceUnavailable) },
			wantStep: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := swapitest.NewServer(t)
			if tt.setup != nil {
				tt.setup(srv)
			}

			opts := defaultOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}

			d := newDriver(t, newClient(t, srv), zerolog.Nop(), opts)
			report, err := d.Run(context.Background())
			require.Error(t, err)

			var stepErr *StepError
			require.True(t, errors.As(err, &stepErr))
			assert.Equal(t, tt.wantStep, stepErr.Step)
			assert.Len(t, report.Completed, tt.wantStep-1)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				var apiErr *swapi.APIError
				assert.ErrorAs(t, err, &apiErr)
			}
		})
	}
}

// stubAPI rewrites entities coming back from a real client
type stubAPI struct {
	swapi.API
	onFind    func(category string, e swapi.Entity)
	onResolve func(entities []swapi.Entity)
}

func (a stubAPI) Find(ctx context.Context, category, term string) (swapi.Entity, error) {
	e, err := a.API.Find(ctx, category, term)
	if err == nil && a.onFind != nil {
		a.onFind(category, e)
	}
	return e, err
}

func (a stubAPI) Resolve(ctx context.Context, refs []string) ([]swapi.Entity, error) {
	entities, err := a.API.Resolve(ctx, refs)
	if err == nil && a.onResolve != nil {
		a.onResolve(entities)
	}
	return entities, err
}

func TestRun_EntityEdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		opts      func(*Options)
		onFind    func(category string, e swapi.Entity)
		onResolve func(entities []swapi.Entity)
		wantStep  int
		wantErr   error
		wantMsg   string
	}{
		{
			name: "film without planets",
			onFind: func(category string, e swapi.Entity) {
				if category == swapi.CategoryFilms {
					delete(e, "planets")
				}
			},
			wantStep: 3,
			wantErr:  ErrAssertion,
			wantMsg:  "references no planets",
		},
		{
			name: "planet without name",
			onResolve: func(entities []swapi.Entity) {
				for _, e := range entities {
					if e.Has("climate") {
						delete(e, "name")
					}
				}
			},
			wantStep: 3,
			wantErr:  ErrAssertion,
			wantMsg:  "has no name",
		},
		{
			name:     "species filter yields no boolean",
			opts:     func(o *Options) { o.SpeciesFilter = "homeworld" },
			wantStep: 4,
			wantErr:  filter.ErrNotBool,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := swapitest.NewServer(t)
			api := stubAPI{API: newClient(t, srv), onFind: tt.onFind, onResolve: tt.onResolve}

			opts := defaultOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}

			report, err := newDriver(t, api, zerolog.Nop(), opts).Run(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var stepErr *StepError
			require.ErrorAs(t, err, &stepErr)
			assert.Equal(t, tt.wantStep, stepErr.Step)
			assert.Len(t, report.Completed, tt.wantStep-1)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestRun_StarshipWithoutPilots(t *testing.T) {
	srv := swapitest.NewServer(t)
	api := stubAPI{
		API: newClient(t, srv),
		onFind: func(category string, e swapi.Entity) {
			if category == swapi.CategoryStarships {
				delete(e, "pilots")
			}
		},
	}

	var logs bytes.Buffer
	logger := logging.New(config.LoggingConfig{Level: "info", Format: "console", Color: "never"}, &logs)

	report, err := newDriver(t, api, logger, defaultOptions()).Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, report.Completed, 5)
	assert.Empty(t, report.Pilots)
	assert.Contains(t, logs.String(), `Starship "X-wing" has no pilots`)
	assert.Contains(t, logs.String(), "WARNING")
}

func TestRun_Cancelled(t *testing.T) {
	srv := swapitest.NewServer(t)
	d := newDriver(t, newClient(t, srv), zerolog.Nop(), defaultOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFilterSpecies(t *testing.T) {
	srv := swapitest.NewServer(t)
	client := newClient(t, srv)
	ctx := context.Background()

	planet, err := client.Find(ctx, swapi.CategoryPlanets, "Tatooine")
	require.NoError(t, err)
	species, err := client.Resolve(ctx, []string{
		srv.Ref(swapi.CategorySpecies, 1),
		srv.Ref(swapi.CategorySpecies, 2),
		srv.Ref(swapi.CategorySpecies, 3),
	})
	require.NoError(t, err)

	t.Run("homeworld filter is idempotent", func(t *testing.T) {
		d := newDriver(t, client, zerolog.Nop(), defaultOptions())

		first, err := d.FilterSpecies(ctx, species, planet)
		require.NoError(t, err)
		second, err := d.FilterSpecies(ctx, species, planet)
		require.NoError(t, err)

		assert.Equal(t, []string{"Jawa"}, swapi.Names(first))
		assert.Equal(t, first, second)
	})

	t.Run("custom filter", func(t *testing.T) {
		opts := defaultOptions()
		opts.SpeciesFilter = `classification == "artificial" or homeworld == planet.url`
		d := newDriver(t, client, zerolog.Nop(), opts)

		matched, err := d.FilterSpecies(ctx, species, planet)
		require.NoError(t, err)
		assert.Equal(t, []string{"Droid", "Jawa"}, swapi.Names(matched))
	})
}

func TestNewDriver(t *testing.T) {
	srv := swapitest.NewServer(t)
	client := newClient(t, srv)

	opts := defaultOptions()
	opts.Starship = ""
	_, err := NewDriver(client, zerolog.Nop(), opts)
	assert.Error(t, err)

	opts = defaultOptions()
	opts.SpeciesFilter = "homeworld =="
	_, err = NewDriver(client, zerolog.Nop(), opts)
	assert.Error(t, err)

	d, err := NewDriver(client, zerolog.Nop(), defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, DefaultSpeciesFilter, d.speciesFilter.Expression())
}
