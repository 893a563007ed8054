package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFormDefaults_EmptyPathReturnsBuiltins(t *testing.T) {
	defaults, err := LoadFormDefaults("")
	if err != nil {
		t.Fatalf("LoadFormDefaults: %v", err)
	}
	if defaults["costPerUnit"] != "0.3" || defaults["numUnits"] != "100" || defaults["customPrice"] != "" {
		t.Fatalf("unexpected builtin defaults: %v", defaults)
	}
}

func TestLoadFormDefaults_OverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	content := []byte(`
hourlyRate: 32.5
numUnits: 40
customPrice: "4.90"
designHours:
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write defaults: %v", err)
	}

	defaults, err := LoadFormDefaults(path)
	if err != nil {
		t.Fatalf("LoadFormDefaults: %v", err)
	}

	want := map[string]string{
		"hourlyRate":  "32.5",
		"numUnits":    "40",
		"customPrice": "4.90",
		"designHours": "",
		"costPerUnit": "0.3",
	}
	for field, value := range want {
		if defaults[field] != value {
			t.Fatalf("%s=%q, want %q", field, defaults[field], value)
		}
	}
}

func TestLoadFormDefaults_RejectsUnknownFieldsAndNonScalars(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"unknown.yaml": "discount: 5\n",
		"list.yaml":    "hourlyRate: [1, 2]\n",
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		if _, err := LoadFormDefaults(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadFormDefaults_MissingFile(t *testing.T) {
	if _, err := LoadFormDefaults(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
