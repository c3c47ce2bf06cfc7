package scenario

import (
	"context"
	"fmt"

	"github.com/s0up4200/holocron/swapi"
)

// stepCategories fetches the root listing
func (d *Driver) stepCategories(ctx context.Context, st *state) error {
	raw, err := d.api.FetchEndpoint(ctx, "")
	if err != nil {
		return err
	}

	list, err := swapi.ListEntities(raw, false)
	if err != nil {
		return err
	}
	if err := check(len(list) > 0, "root lists no categories"); err != nil {
		return err
	}

	categories := make([]string, 0, len(list))
	for _, item := range list {
		categories = append(categories, fmt.Sprint(item))
	}
	st.report.Categories = categories

	d.logger.Info().Msgf("List of all SWAPI entities: %v", categories)
	return nil
}

// stepFilms lists film titles and describes the chosen film
func (d *Driver) stepFilms(ctx context.Context, st *state) error {
	page, err := d.api.Page(ctx, swapi.CategoryFilms)
	if err != nil {
		return err
	}

	titles := swapi.Field(swapi.Results(page), "title")
	if err := check(len(titles) > 0, "films collection is empty"); err != nil {
		return err
	}
	st.report.Films = titles
	d.logger.Info().Msgf("List of all films: %v", titles)

	film, err := d.api.Find(ctx, swapi.CategoryFilms, d.opts.Film)
	if err != nil {
		return err
	}
	if err := check(len(film) > 0, "film %q not found", d.opts.Film); err != nil {
		return err
	}

	st.film = film
	st.report.Film = film.Name()

	d.logger.Info().Msgf("Description of %q:", d.opts.Film)
	d.describer.Describe(film)
	return nil
}

// stepPlanets lists planet names and describes each planet of the film
func (d *Driver) stepPlanets(ctx context.Context, st *state) error {
	page, err := d.api.Page(ctx, swapi.CategoryPlanets)
	if err != nil {
		return err
	}

	names := swapi.Field(swapi.Results(page), "name")
	if err := check(len(names) > 0, "planets collection is empty"); err != nil {
		return err
	}
	st.report.Planets = names
	d.logger.Info().Msgf("List of all planets: %v", names)

	refs := st.film.Strings("planets")
	if err := check(len(refs) > 0, "film %q references no planets", d.opts.Film); err != nil {
		return err
	}

	planets, err := d.api.Resolve(ctx, refs)
	if err != nil {
		return err
	}

	d.logger.Info().Msgf("Planets of %q:", d.opts.Film)
	d.describer.DescribeAll(planets)

	for i, planet := range planets {
		if err := check(planet.Has("name"), "planet %s has no name", refs[i]); err != nil {
			return err
		}
	}
	st.report.FilmPlanets = swapi.Names(planets)
	return nil
}

// stepSpecies keeps the film's species native to the configured planet
func (d *Driver) stepSpecies(ctx context.Context, st *state) error {
	d.logger.Info().Msgf("Species of %q:", d.opts.Planet)

	planet, err := d.api.Find(ctx, swapi.CategoryPlanets, d.opts.Planet)
	if err != nil {
		return err
	}

	species, err := d.api.Resolve(ctx, st.film.Strings("species"))
	if err != nil {
		return err
	}

	matched, err := d.FilterSpecies(ctx, species, planet)
	if err != nil {
		return err
	}
	if err := check(len(matched) > 0, "no species of %q matches planet %q (%s)",
		d.opts.Film, d.opts.Planet, planet.URL()); err != nil {
		return err
	}

	names := swapi.Names(matched)
	st.report.Species = names
	d.logger.Info().Msgf("%v", names)
	return nil
}

// stepPilots describes every pilot of the configured starship
func (d *Driver) stepPilots(ctx context.Context, st *state) error {
	d.logger.Info().Msgf("Pilots of the starship %q:", d.opts.Starship)

	ship, err := d.api.Find(ctx, swapi.CategoryStarships, d.opts.Starship)
	if err != nil {
		return err
	}

	pilots, err := d.api.Resolve(ctx, ship.Strings("pilots"))
	if err != nil {
		return err
	}
	if len(pilots) == 0 {
		d.logger.Warn().Msgf("Starship %q has no pilots", d.opts.Starship)
	}

	d.describer.DescribeAll(pilots)
	st.report.Pilots = swapi.Names(pilots)
	return nil
}
