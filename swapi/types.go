package swapi

// Category names exposed by the SWAPI root resource
const (
	CategoryFilms     = "films"
	CategoryPeople    = "people"
	CategoryPlanets   = "planets"
	CategorySpecies   = "species"
	CategoryStarships = "starships"
	CategoryVehicles  = "vehicles"
)

// Entity is a single SWAPI record (film, planet, species, starship or person)
// decoded from its JSON object.
type Entity map[string]any

// String returns a string field, or "" if the field is missing or not a string
func (e Entity) String(field string) string {
	if s, ok := e[field].(string); ok {
		return s
	}
	return ""
}

// Strings returns the string items of a list field such as "planets" or "pilots"
func (e Entity) Strings(field string) []string {
	list, ok := e[field].([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Has reports whether the entity carries the field at all
func (e Entity) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Name returns the display name. Films carry a title instead of a name.
func (e Entity) Name() string {
	if name := e.String("name"); name != "" {
		return name
	}
	return e.String("title")
}

// URL returns the canonical resource URL of the entity
func (e Entity) URL() string {
	return e.String("url")
}

// Root is the root resource: category name -> category URL
type Root map[string]string

// Page is one page of a paginated collection
type Page struct {
	Count    int      `json:"count"`
	Next     *string  `json:"next"`
	Previous *string  `json:"previous"`
	Results  []Entity `json:"results"`
}

// HasNext reports whether another page follows this one
func (p *Page) HasNext() bool {
	return p.Next != nil && *p.Next != ""
}
