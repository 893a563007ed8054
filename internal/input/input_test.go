package input

import (
	"math"
	"net/url"
	"testing"
)

func TestParseNumber(t *testing.T) {
	cases := map[string]float64{
		"":         0,
		"  ":       0,
		"abc":      0,
		"12abc":    12,
		"1,5":      1,
		"-3e2x":    -300,
		".5":       0.5,
		"5.":       5,
		"1e":       1,
		"0x10":     0,
		"NaN":      0,
		"Inf":      0,
		"-Inf":     0,
		"Infinity": 0,
		"1e400":    0,
		"1e308":    MaxMagnitude,
		"-1e308":   -MaxMagnitude,
		"0.3":      0.3,
		" 25 ":     25,
		"-4.5":     -4.5,
		"1e3":      1000,
		"100":      100,
		"0.10":     0.1,
	}

	for raw, want := range cases {
		if got := ParseNumber(raw); got != want {
			t.Fatalf("ParseNumber(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestParseUnits(t *testing.T) {
	cases := map[string]int{
		"":      0,
		"x":     0,
		"-3":    0,
		"0.9":   0,
		"12.7":  12,
		"100":   100,
		"7 pcs": 7,
		"1e300": int(MaxMagnitude),
	}

	for raw, want := range cases {
		if got := ParseUnits(raw); got != want {
			t.Fatalf("ParseUnits(%q) = %d, want %d", raw, got, want)
		}
	}
}

func TestParse_HugeInputsKeepQuoteFinite(t *testing.T) {
	values := url.Values{}
	for _, field := range Fields {
		values.Set(field, "1e308")
	}

	q := Parse(values).Quote()

	if math.IsInf(q.Costs.TotalCost, 0) || math.IsNaN(q.Costs.TotalCost) {
		t.Fatalf("total cost is not finite: %v", q.Costs.TotalCost)
	}
	for _, tier := range q.Tiers {
		if math.IsInf(tier.PriceTTC, 0) || math.IsInf(tier.Meta.TotalRevenue, 0) || tier.PriceHT == 0 {
			t.Fatalf("tier %s not priced from finite inputs: %+v", tier.ID, tier)
		}
	}
}

func TestParse_ReadsAllFields(t *testing.T) {
	values := url.Values{}
	values.Set(FieldCostPerUnit, "0.3")
	values.Set(FieldShippingMaterials, "20")
	values.Set(FieldNumUnits, "100.8")
	values.Set(FieldTimeHours, "4")
	values.Set(FieldHourlyRate, "25")
	values.Set(FieldDesignHours, "1.0")
	values.Set(FieldCommsHours, "1")
	values.Set(FieldShippingHours, "0.5")
	values.Set(FieldCustomPrice, "oops")

	form := Parse(values)

	in := form.Inputs
	if in.CostPerUnit != 0.3 || in.ShippingMaterials != 20 || in.NumUnits != 100 {
		t.Fatalf("unexpected material inputs: %+v", in)
	}
	if in.TimeHours != 4 || in.HourlyRate != 25 || in.DesignHours != 1 || in.CommsHours != 1 || in.ShippingHours != 0.5 {
		t.Fatalf("unexpected labour inputs: %+v", in)
	}
	if form.CustomPrice != 0 {
		t.Fatalf("expected invalid custom price to coerce to 0, got %v", form.CustomPrice)
	}
	if form.Raw[FieldCustomPrice] != "oops" {
		t.Fatalf("expected raw text to be preserved, got %q", form.Raw[FieldCustomPrice])
	}
}

func TestForm_MergeFillsOnlyBlankFields(t *testing.T) {
	values := url.Values{}
	values.Set(FieldNumUnits, "10")

	form := Parse(values).Merge(map[string]string{
		FieldNumUnits:    "100",
		FieldHourlyRate:  "25",
		FieldCustomPrice: "",
	})

	if form.Inputs.NumUnits != 10 {
		t.Fatalf("expected user value to win, got %d", form.Inputs.NumUnits)
	}
	if form.Inputs.HourlyRate != 25 {
		t.Fatalf("expected default hourly rate, got %v", form.Inputs.HourlyRate)
	}
	if form.Raw[FieldCustomPrice] != "" {
		t.Fatalf("expected custom price to stay blank, got %q", form.Raw[FieldCustomPrice])
	}
}

func TestForm_SetAndBlank(t *testing.T) {
	form, ok := Blank().Set(FieldHourlyRate, "30")
	if !ok {
		t.Fatalf("expected hourlyRate to be a known field")
	}
	if form.Inputs.HourlyRate != 30 || form.Empty() {
		t.Fatalf("unexpected form after Set: %+v", form)
	}

	if _, ok := form.Set("discount", "5"); ok {
		t.Fatalf("expected unknown field to be rejected")
	}

	if !Blank().Empty() {
		t.Fatalf("expected blank form to be empty")
	}
}

func TestForm_QuoteUsesNormalizedInputs(t *testing.T) {
	values := url.Values{}
	values.Set(FieldCostPerUnit, "2")
	values.Set(FieldNumUnits, "-5")

	q := Parse(values).Quote()

	if q.Costs.CostPerUnitOut != 0 {
		t.Fatalf("expected zero cost per unit for negative unit count, got %v", q.Costs.CostPerUnitOut)
	}
	if len(q.Tiers) != 5 {
		t.Fatalf("expected 5 tiers, got %d", len(q.Tiers))
	}
}
