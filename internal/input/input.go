// Package input turns raw form text into the numeric inputs of the pricing engine.
//
// Every field is coerced: empty, unparsable or non-finite text becomes 0, and the unit
// count is floored to a non-negative integer. Nothing here ever fails.
package input

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Simplici0/lavender/internal/pricing"
)

// Field names, shared by HTML forms, query strings, CLI flags and stored defaults.
const (
	FieldCostPerUnit       = "costPerUnit"
	FieldShippingMaterials = "shippingMaterials"
	FieldNumUnits          = "numUnits"
	FieldTimeHours         = "timeHours"
	FieldHourlyRate        = "hourlyRate"
	FieldDesignHours       = "designHours"
	FieldCommsHours        = "commsHours"
	FieldShippingHours     = "shippingHours"
	FieldCustomPrice       = "customPrice"
)

// Fields lists every input field in form order.
var Fields = []string{
	FieldCostPerUnit,
	FieldShippingMaterials,
	FieldNumUnits,
	FieldTimeHours,
	FieldHourlyRate,
	FieldDesignHours,
	FieldCommsHours,
	FieldShippingHours,
	FieldCustomPrice,
}

// MaxMagnitude bounds every parsed number so that costs and revenues stay finite.
const MaxMagnitude = 1e12

// Longest leading decimal literal; trailing text is ignored.
var numberPrefix = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?`)

// Getter is satisfied by url.Values and anything else keyed by field name.
type Getter interface {
	Get(key string) string
}

// Form is a normalized set of inputs plus the raw text they were parsed from.
type Form struct {
	Inputs      pricing.CostInputs
	CustomPrice float64
	Raw         map[string]string
}

// ParseNumber reads the leading decimal number of raw, so "12abc" is 12 and "1,5" is 1.
// Text without a leading number, or a number that overflows, is 0. Results are clamped
// to ±MaxMagnitude.
func ParseNumber(raw string) float64 {
	literal := numberPrefix.FindString(strings.TrimSpace(raw))
	if literal == "" {
		return 0
	}
	value, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return math.Max(-MaxMagnitude, math.Min(MaxMagnitude, value))
}

// ParseUnits reads a unit count, flooring it to a non-negative integer.
func ParseUnits(raw string) int {
	value := math.Floor(ParseNumber(raw))
	if value <= 0 {
		return 0
	}
	return int(value)
}

// Parse reads all fields from values.
func Parse(values Getter) Form {
	raw := make(map[string]string, len(Fields))
	for _, field := range Fields {
		raw[field] = strings.TrimSpace(values.Get(field))
	}
	return fromRaw(raw)
}

// Blank returns the form with every field cleared.
func Blank() Form {
	raw := make(map[string]string, len(Fields))
	for _, field := range Fields {
		raw[field] = ""
	}
	return fromRaw(raw)
}

// Merge fills every blank field of f from defaults and re-normalizes.
func (f Form) Merge(defaults map[string]string) Form {
	raw := make(map[string]string, len(Fields))
	for _, field := range Fields {
		raw[field] = f.Raw[field]
		if raw[field] == "" {
			raw[field] = strings.TrimSpace(defaults[field])
		}
	}
	return fromRaw(raw)
}

// Set changes one field and re-normalizes. Unknown fields are reported with ok=false.
func (f Form) Set(field, value string) (Form, bool) {
	if !IsField(field) {
		return f, false
	}
	raw := make(map[string]string, len(Fields))
	for _, name := range Fields {
		raw[name] = f.Raw[name]
	}
	raw[field] = strings.TrimSpace(value)
	return fromRaw(raw), true
}

// Empty reports whether no field carries any text.
func (f Form) Empty() bool {
	for _, field := range Fields {
		if f.Raw[field] != "" {
			return false
		}
	}
	return true
}

// Quote runs the pricing engine over the form.
func (f Form) Quote() pricing.Quote {
	return pricing.NewQuote(f.Inputs, f.CustomPrice)
}

// IsField reports whether name is one of Fields.
func IsField(name string) bool {
	for _, field := range Fields {
		if field == name {
			return true
		}
	}
	return false
}

func fromRaw(raw map[string]string) Form {
	return Form{
		Inputs: pricing.CostInputs{
			CostPerUnit:       ParseNumber(raw[FieldCostPerUnit]),
			ShippingMaterials: ParseNumber(raw[FieldShippingMaterials]),
			NumUnits:          ParseUnits(raw[FieldNumUnits]),
			TimeHours:         ParseNumber(raw[FieldTimeHours]),
			HourlyRate:        ParseNumber(raw[FieldHourlyRate]),
			DesignHours:       ParseNumber(raw[FieldDesignHours]),
			CommsHours:        ParseNumber(raw[FieldCommsHours]),
			ShippingHours:     ParseNumber(raw[FieldShippingHours]),
		},
		CustomPrice: ParseNumber(raw[FieldCustomPrice]),
		Raw:         raw,
	}
}
