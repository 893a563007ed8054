package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var sampleFlags = []string{
	"--costPerUnit", "0.3",
	"--shippingMaterials", "20",
	"--numUnits", "100",
	"--timeHours", "4",
	"--hourlyRate", "25",
	"--designHours", "1",
	"--commsHours", "1",
	"--shippingHours", "0.5",
}

func execute(t *testing.T, stdin string, args ...string) string {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v\nstderr: %s", args, err, errOut.String())
	}
	return out.String()
}

func TestQuotePrintsTable(t *testing.T) {
	out := execute(t, "", append([]string{"quote"}, sampleFlags...)...)

	for _, want := range []string{"€212.50", "€2.13", "TTC: €2.60", "Premium (100% margin)", "Margin: ~-100%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestQuoteFormatsForLocale(t *testing.T) {
	out := execute(t, "", append([]string{"quote", "--locale", "fr"}, sampleFlags...)...)

	if !strings.Contains(out, "212,50 €") {
		t.Fatalf("expected French amounts, got:\n%s", out)
	}
}

func TestQuoteJSON(t *testing.T) {
	out := execute(t, "", append([]string{"quote", "--json", "--customPrice", "3"}, sampleFlags...)...)

	var result struct {
		Quote struct {
			Tiers []struct {
				ID                   string  `json:"id"`
				PriceTTC             float64 `json:"price_ttc"`
				DerivedMarginPercent float64 `json:"derived_margin_percent"`
			} `json:"tiers"`
		} `json:"quote"`
		View struct {
			TotalCost string `json:"total_cost"`
		} `json:"view"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}

	if len(result.Quote.Tiers) != 5 {
		t.Fatalf("expected 5 tiers, got %d", len(result.Quote.Tiers))
	}
	if result.Quote.Tiers[0].PriceTTC != 2.6 {
		t.Fatalf("expected break-even TTC 2.6, got %v", result.Quote.Tiers[0].PriceTTC)
	}
	if custom := result.Quote.Tiers[4]; custom.ID != "Custom" || custom.DerivedMarginPercent != 41 {
		t.Fatalf("unexpected custom tier %+v", custom)
	}
	if result.View.TotalCost != "€212.50" {
		t.Fatalf("unexpected formatted total %q", result.View.TotalCost)
	}
}

func TestQuoteWithoutFlagsIsZero(t *testing.T) {
	out := execute(t, "", "quote")

	if !strings.Contains(out, "€0.00") {
		t.Fatalf("expected zero quote, got:\n%s", out)
	}
}

func TestQuoteFillUsesDefaultsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	if err := os.WriteFile(path, []byte("hourlyRate: 0\n"), 0o600); err != nil {
		t.Fatalf("write defaults file: %v", err)
	}

	out := execute(t, "", "quote", "--fill", "--defaults-file", path, "--numUnits", "50")

	// 0.3 * 50 + 20 of materials, no labour.
	if !strings.Contains(out, "€35.00") {
		t.Fatalf("expected total of €35.00, got:\n%s", out)
	}
}

func TestQuoteWritesCharts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	execute(t, "", append([]string{"quote", "--charts-dir", dir}, sampleFlags...)...)

	for _, name := range []string{"strategies.json", "breakdown.json"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if !json.Valid(data) {
			t.Fatalf("%s is not valid JSON", name)
		}
	}
}

func TestInteractiveRepricesOnEveryLine(t *testing.T) {
	dir := t.TempDir()
	stdin := strings.Join([]string{
		"customPrice=3",
		"bogus=1",
		"no equals sign",
		"reset",
		"quit",
		"hourlyRate=99",
	}, "\n")

	out := execute(t, stdin, "interactive", "--charts-dir", dir)

	// Initial render, customPrice and reset.
	if got := strings.Count(out, "Break-even"); got != 3 {
		t.Fatalf("expected 3 renders, got %d:\n%s", got, out)
	}
	for _, want := range []string{"Margin: ~41%", `unknown field "bogus"`, "expected field=value", "€0.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "€99.00") {
		t.Fatalf("lines after quit must be ignored")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read charts dir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected one file per chart slot, got %d", len(entries))
	}
}

func TestDefaultsPrintsYAMLInFieldOrder(t *testing.T) {
	out := execute(t, "", "defaults")

	if !strings.HasPrefix(out, "costPerUnit: 0.3\n") {
		t.Fatalf("expected costPerUnit first, got:\n%s", out)
	}
	for _, want := range []string{"hourlyRate: 25\n", `customPrice: ""`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestDefaultsRejectsUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	if err := os.WriteFile(path, []byte("discount: 5\n"), 0o600); err != nil {
		t.Fatalf("write defaults file: %v", err)
	}

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"defaults", "--defaults-file", path})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error for an unknown field")
	}
}
