package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Simplici0/lavender/internal/input"
)

// BuiltinFormDefaults are the values the calculator starts with. The custom price has no default.
func BuiltinFormDefaults() map[string]string {
	return map[string]string{
		input.FieldCostPerUnit:       "0.3",
		input.FieldShippingMaterials: "20",
		input.FieldNumUnits:          "100",
		input.FieldTimeHours:         "4",
		input.FieldHourlyRate:        "25",
		input.FieldDesignHours:       "1.0",
		input.FieldCommsHours:        "1",
		input.FieldShippingHours:     "0.5",
		input.FieldCustomPrice:       "",
	}
}

// LoadFormDefaults reads a YAML mapping of field name to default value and lays it over
// BuiltinFormDefaults. An empty path returns the built-in defaults.
func LoadFormDefaults(path string) (map[string]string, error) {
	defaults := BuiltinFormDefaults()
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading defaults file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing defaults YAML: %w", err)
	}

	for field, value := range raw {
		if !input.IsField(field) {
			return nil, fmt.Errorf("defaults file: unknown field %q", field)
		}
		text, err := scalarText(value)
		if err != nil {
			return nil, fmt.Errorf("defaults file: field %q: %w", field, err)
		}
		defaults[field] = text
	}

	return defaults, nil
}

func scalarText(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("expected a number, got %T", value)
	}
}
