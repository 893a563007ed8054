package defaults

import (
	"context"
	"database/sql"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/Simplici0/lavender/internal/db"
	"github.com/Simplici0/lavender/internal/migrations"
)

func newStoreTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "defaults-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func TestStore_GetOnEmptyTableReturnsBlankFields(t *testing.T) {
	store := NewStore(newStoreTestDB(t))

	values, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(values) != 9 {
		t.Fatalf("expected 9 fields, got %d", len(values))
	}
	for field, value := range values {
		if value != "" {
			t.Fatalf("expected %s to be blank, got %q", field, value)
		}
	}
}

func TestStore_UpdateThenGet(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newStoreTestDB(t))

	if err := store.Update(ctx, map[string]string{"hourlyRate": "25", "numUnits": "100"}); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if err := store.Update(ctx, map[string]string{"hourlyRate": "30", "numUnits": "100", "discount": "5"}); err != nil {
		t.Fatalf("second update: %v", err)
	}

	values, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if values["hourlyRate"] != "30" || values["numUnits"] != "100" || values["costPerUnit"] != "" {
		t.Fatalf("unexpected values: %v", values)
	}
	if _, ok := values["discount"]; ok {
		t.Fatalf("unknown field should not be stored: %v", values)
	}
}

func TestValidate(t *testing.T) {
	ok := url.Values{}
	ok.Set("hourlyRate", " 25 ")
	ok.Set("numUnits", "100")
	cleaned, err := Validate(ok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cleaned["hourlyRate"] != "25" || cleaned["customPrice"] != "" {
		t.Fatalf("unexpected cleaned values: %v", cleaned)
	}

	for field, raw := range map[string]string{
		"costPerUnit":   "abc",
		"hourlyRate":    "-1",
		"numUnits":      "2.5",
		"timeHours":     "NaN",
		"shippingHours": "1e308",
	} {
		bad := url.Values{}
		bad.Set(field, raw)
		if _, err := Validate(bad); err == nil {
			t.Fatalf("expected validation error for %s=%q", field, raw)
		}
	}
}
