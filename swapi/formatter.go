package swapi

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats for rendering an entity outside the log stream
const (
	FormatLog  = "log"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// SortedKeys returns the field names of an entity in a stable order
func SortedKeys(e Entity) []string {
	keys := make([]string, 0, len(e))
	for key := range e {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// FormatValue renders a field value the way it is shown in descriptions
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case string:
		return val
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = FormatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(val)
	}
}

// Marshal renders entities as JSON or YAML
func Marshal(entities []Entity, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(entities, "", "  ")
	case FormatYAML:
		return yaml.Marshal(entities)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
