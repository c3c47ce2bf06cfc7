package swapi

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
)

// ListEntities returns the entities held by a raw response. For a paginated
// collection that is exactly the "results" list; otherwise it is the
// top-level key names, sorted.
func ListEntities(raw json.RawMessage, paginated bool) ([]any, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if paginated {
		results, ok := obj["results"]
		if !ok {
			return nil, fmt.Errorf("%w: response has no results", ErrInvalidResponse)
		}

		var list []any
		if err := json.Unmarshal(results, &list); err != nil {
			return nil, fmt.Errorf("%w: results: %v", ErrInvalidResponse, err)
		}
		return list, nil
	}

	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]any, len(keys))
	for i, key := range keys {
		out[i] = key
	}
	return out, nil
}

// Categories returns the category names of the root resource, sorted
func Categories(root Root) []string {
	names := make([]string, 0, len(root))
	for name := range root {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Results returns the entities of a page unmodified
func Results(page *Page) []Entity {
	if page == nil {
		return nil
	}
	return page.Results
}

// Field extracts one string column from a list of entities, skipping
// entities that lack it.
func Field(entities []Entity, field string) []string {
	values := make([]string, 0, len(entities))
	for _, e := range entities {
		if v := e.String(field); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// Names extracts the display names of a list of entities
func Names(entities []Entity) []string {
	names := make([]string, 0, len(entities))
	for _, e := range entities {
		names = append(names, e.Name())
	}
	return names
}
