package swapitest

import (
	"fmt"

	"github.com/s0up4200/holocron/swapi"
)

// snapshot builds the recorded data set with every URL rooted at base
func snapshot(base string) map[string][]swapi.Entity {
	ref := func(category string, id int) string {
		return fmt.Sprintf("%s%s/%d/", base, category, id)
	}
	refs := func(category string, ids ...int) []any {
		out := make([]any, len(ids))
		for i, id := range ids {
			out[i] = ref(category, id)
		}
		return out
	}

	return map[string][]swapi.Entity{
		swapi.CategoryFilms: {
			{
				"title":        "A New Hope",
				"episode_id":   4,
				"director":     "George Lucas",
				"producer":     "Gary Kurtz, Rick McCallum",
				"release_date": "1977-05-25",
				"characters":   refs(swapi.CategoryPeople, 1, 9, 13, 14, 18),
				"planets":      refs(swapi.CategoryPlanets, 1, 2, 3),
				"starships":    refs(swapi.CategoryStarships, 10, 12),
				"species":      refs(swapi.CategorySpecies, 1, 2, 3),
				"url":          ref(swapi.CategoryFilms, 1),
			},
			{
				"title":        "The Empire Strikes Back",
				"episode_id":   5,
				"director":     "Irvin Kershner",
				"producer":     "Gary Kurtz, Rick McCallum",
				"release_date": "1980-05-17",
				"characters":   refs(swapi.CategoryPeople, 1, 13, 14),
				"planets":      refs(swapi.CategoryPlanets, 4),
				"starships":    refs(swapi.CategoryStarships, 10),
				"species":      refs(swapi.CategorySpecies, 1, 2),
				"url":          ref(swapi.CategoryFilms, 2),
			},
		},
		swapi.CategoryPlanets: {
			{
				"name":       "Tatooine",
				"climate":    "arid",
				"terrain":    "desert",
				"population": "200000",
				"residents":  refs(swapi.CategoryPeople, 1, 9),
				"films":      refs(swapi.CategoryFilms, 1),
				"url":        ref(swapi.CategoryPlanets, 1),
			},
			{
				"name":       "Alderaan",
				"climate":    "temperate",
				"terrain":    "grasslands, mountains",
				"population": "2000000000",
				"residents":  []any{},
				"films":      refs(swapi.CategoryFilms, 1),
				"url":        ref(swapi.CategoryPlanets, 2),
			},
			{
				"name":       "Yavin IV",
				"climate":    "temperate, tropical",
				"terrain":    "jungle, rainforests",
				"population": "1000",
				"residents":  []any{},
				"films":      refs(swapi.CategoryFilms, 1),
				"url":        ref(swapi.CategoryPlanets, 3),
			},
			{
				"name":       "Hoth",
				"climate":    "frozen",
				"terrain":    "tundra, ice caves, mountain ranges",
				"population": "unknown",
				"residents":  []any{},
				"films":      refs(swapi.CategoryFilms, 2),
				"url":        ref(swapi.CategoryPlanets, 4),
			},
		},
		swapi.CategorySpecies: {
			{
				"name":           "Human",
				"classification": "mammal",
				"language":       "Galactic Basic",
				"homeworld":      ref(swapi.CategoryPlanets, 9),
				"films":          refs(swapi.CategoryFilms, 1, 2),
				"url":            ref(swapi.CategorySpecies, 1),
			},
			{
				"name":           "Droid",
				"classification": "artificial",
				"language":       "n/a",
				"homeworld":      nil,
				"films":          refs(swapi.CategoryFilms, 1, 2),
				"url":            ref(swapi.CategorySpecies, 2),
			},
			{
				"name":           "Jawa",
				"classification": "mammal",
				"language":       "Jawese",
				"homeworld":      ref(swapi.CategoryPlanets, 1),
				"films":          refs(swapi.CategoryFilms, 1),
				"url":            ref(swapi.CategorySpecies, 3),
			},
		},
		swapi.CategoryPeople: {
			person(ref, refs, 1, "Luke Skywalker", 1, 12),
			person(ref, refs, 9, "Biggs Darklighter", 1, 12),
			person(ref, refs, 13, "Chewbacca", 14, 10),
			person(ref, refs, 14, "Han Solo", 22, 10),
			person(ref, refs, 18, "Wedge Antilles", 22, 12),
		},
		swapi.CategoryStarships: {
			{
				"name":           "Millennium Falcon",
				"model":          "YT-1300 light freighter",
				"starship_class": "Light freighter",
				"pilots":         refs(swapi.CategoryPeople, 13, 14),
				"films":          refs(swapi.CategoryFilms, 1, 2),
				"url":            ref(swapi.CategoryStarships, 10),
			},
			{
				"name":           "X-wing",
				"model":          "T-65 X-wing",
				"starship_class": "Starfighter",
				"pilots":         refs(swapi.CategoryPeople, 1, 9, 18),
				"films":          refs(swapi.CategoryFilms, 1),
				"url":            ref(swapi.CategoryStarships, 12),
			},
		},
		swapi.CategoryVehicles: {},
	}
}

func person(
	ref func(string, int) string,
	refs func(string, ...int) []any,
	id int,
	name string,
	homeworld int,
	starship int,
) swapi.Entity {
	return swapi.Entity{
		"name":      name,
		"homeworld": ref(swapi.CategoryPlanets, homeworld),
		"starships": refs(swapi.CategoryStarships, starship),
		"url":       ref(swapi.CategoryPeople, id),
	}
}
