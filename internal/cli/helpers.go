package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/emiliopalmerini/feedwise/internal/domain"
)

// parseFieldValues turns repeated name=value flags into form values. Values for
// rating fields are parsed as integers within the field's scale.
func parseFieldValues(pairs []string, fields []domain.Field) (domain.FormValues, error) {
	byName := make(map[string]domain.Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}

	values := domain.FormValues{}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid field %q: expected name=value", pair)
		}
		if f, ok := byName[name]; ok && f.Type() == domain.FieldRating {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("field %q expects a number: %w", name, err)
			}
			if n < 1 || n > f.MaxRating() {
				return nil, fmt.Errorf("field %q expects a rating between 1 and %d, got %d", name, f.MaxRating(), n)
			}
			values.SetRating(name, n)
			continue
		}
		values.SetText(name, value)
	}
	return values, nil
}

// loadFields reads a form definition written by "form init", or returns the seeded fields.
func loadFields(path string) ([]domain.Field, error) {
	if path == "" {
		return domain.SeedFields(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fields file: %w", err)
	}
	var list domain.FieldList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse fields file: %w", err)
	}
	return list.Fields(), nil
}
