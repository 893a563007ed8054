// Package defaults stores the default form values shown when the calculator first loads.
package defaults

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Simplici0/lavender/internal/input"
)

// Store reads and writes the form_defaults table.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store over db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get returns the stored default for every field; fields without a row are blank.
func (s *Store) Get(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT field, value FROM form_defaults`)
	if err != nil {
		return nil, fmt.Errorf("query form defaults: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string, len(input.Fields))
	for _, field := range input.Fields {
		values[field] = ""
	}
	for rows.Next() {
		var field, value string
		if err := rows.Scan(&field, &value); err != nil {
			return nil, fmt.Errorf("scan form default: %w", err)
		}
		if input.IsField(field) {
			values[field] = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate form defaults: %w", err)
	}

	return values, nil
}

// Update replaces the defaults of every known field in one transaction.
func (s *Store) Update(ctx context.Context, values map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin form defaults transaction: %w", err)
	}

	for _, field := range input.Fields {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO form_defaults (field, value, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(field) DO UPDATE SET
				value = excluded.value,
				updated_at = CURRENT_TIMESTAMP
		`, field, values[field]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert form default %s: %w", field, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit form defaults: %w", err)
	}
	return nil
}

// Validate checks admin-entered defaults: each field is blank or a non-negative number
// no larger than input.MaxMagnitude, and the unit count is a whole number. It returns the
// trimmed values.
func Validate(values input.Getter) (map[string]string, error) {
	cleaned := make(map[string]string, len(input.Fields))
	for _, field := range input.Fields {
		raw := strings.TrimSpace(values.Get(field))
		cleaned[field] = raw
		if raw == "" {
			continue
		}

		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return cleaned, fmt.Errorf("%s must be a number", field)
		}
		if value < 0 {
			return cleaned, fmt.Errorf("%s must be greater than or equal to 0", field)
		}
		if value > input.MaxMagnitude {
			return cleaned, fmt.Errorf("%s must be at most %g", field, input.MaxMagnitude)
		}
		if field == input.FieldNumUnits && value != math.Trunc(value) {
			return cleaned, fmt.Errorf("%s must be a whole number", field)
		}
	}
	return cleaned, nil
}
